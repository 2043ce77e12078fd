package domain

import (
	"errors"
	"time"
)

var (
	// ErrWagerNotFound indicates that the wager does not exist.
	ErrWagerNotFound = errors.New("wager not found")
	// ErrWagerClosed indicates an entry attempt on a wager that is not open.
	ErrWagerClosed = errors.New("wager closed for entries")
	// ErrWagerFull indicates that the wager reached its participant capacity.
	ErrWagerFull = errors.New("wager at capacity")
	// ErrDuplicateEntry indicates that the account already entered the wager.
	ErrDuplicateEntry = errors.New("account already entered")
	// ErrAlreadySettled indicates a second settle with a new correlation id.
	ErrAlreadySettled = errors.New("wager already settled")
	// ErrCannotVoid indicates a void attempt after the wager was locked.
	ErrCannotVoid = errors.New("wager cannot be voided")
	// ErrNotLocked indicates a settle attempt before the wager was locked.
	ErrNotLocked = errors.New("wager not locked")
	// ErrInvalidRanking indicates a ranking that does not match the entrants.
	ErrInvalidRanking = errors.New("invalid ranking")
)

// WagerState is the lifecycle state of a wager or pooled competition.
type WagerState string

// Wager lifecycle: OPEN -> LOCKED -> SETTLED, or OPEN -> VOID.
const (
	WagerOpen    WagerState = "OPEN"
	WagerLocked  WagerState = "LOCKED"
	WagerSettled WagerState = "SETTLED"
	WagerVoid    WagerState = "VOID"
)

// PoolRule decides how the net pool is divided among finishers.
type PoolRule string

// Supported pool rules.
const (
	// HeadToHead is a two-party wager where the winner takes the full net pool.
	HeadToHead PoolRule = "HEAD_TO_HEAD"
	// TopPercentile splits the net pool among the top-ranked fraction.
	TopPercentile PoolRule = "TOP_PERCENTILE"
)

// HeadToHeadParticipants is the fixed entrant count of a HEAD_TO_HEAD wager.
const HeadToHeadParticipants = 2

// Wager is a bounded two-party wager or a pooled competition.
type Wager struct {
	ID              string     `json:"id"`
	Category        Category   `json:"category"`
	Stake           int64      `json:"stake"`
	MaxParticipants int32      `json:"max_participants"`
	Participants    int32      `json:"participants"`
	PoolRule        PoolRule   `json:"pool_rule"`
	TopPercent      int32      `json:"top_percent,omitempty"`
	State           WagerState `json:"state"`
	CorrelationID   string     `json:"correlation_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Payout is one winner's share of a settled wager.
type Payout struct {
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
}

// SettleResult is the outcome of settling a wager.
type SettleResult struct {
	WagerID     string   `json:"wager_id"`
	Payouts     []Payout `json:"payouts"`
	PlatformFee int64    `json:"platform_fee"`
}
