package domain

import (
	"errors"
	"time"
)

var (
	// ErrCorrelationExists indicates that the correlation id has already
	// been committed; the caller should reconstruct the original result
	// instead of applying again.
	ErrCorrelationExists = errors.New("correlation id already applied")
	// ErrEmptyEntryGroup indicates an apply call without entries.
	ErrEmptyEntryGroup = errors.New("empty entry group")
	// ErrMixedCorrelation indicates that one apply call mixed correlation ids.
	ErrMixedCorrelation = errors.New("entries mix correlation ids")
	// ErrUnbalancedEntries indicates that an entry group would create or
	// destroy money. Detecting it aborts the operation before anything is
	// persisted.
	ErrUnbalancedEntries = errors.New("entry group does not balance")
)

// EntryKind classifies a ledger entry.
type EntryKind string

// All ledger entry kinds.
const (
	EntryStakeHold    EntryKind = "STAKE_HOLD"
	EntryStakeRelease EntryKind = "STAKE_RELEASE"
	EntryWagerPayout  EntryKind = "WAGER_PAYOUT"
	EntryWagerFee     EntryKind = "WAGER_FEE"
	EntryTaskReward   EntryKind = "TASK_REWARD"
	EntrySaleProceeds EntryKind = "SALE_PROCEEDS"
	EntryPlatformFee  EntryKind = "PLATFORM_FEE"
)

// Entry is one immutable ledger record. It is written once, before the
// producing operation reports success, and never mutated or deleted.
//
// Available and Held are signed minor-unit deltas, so a single STAKE_HOLD
// entry moves funds between the two balances of one account.
type Entry struct {
	ID            int64     `json:"id"`
	AccountID     string    `json:"account_id"`
	Available     int64     `json:"available"`
	Held          int64     `json:"held"`
	Kind          EntryKind `json:"kind"`
	CorrelationID string    `json:"correlation_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Amount returns the signed net effect of the entry on the account.
func (e Entry) Amount() int64 {
	return e.Available + e.Held
}

// GroupBalanced reports whether the entry group conserves money: every
// settlement only moves funds between accounts and balances, so the signed
// deltas of one correlation group always sum to zero.
func GroupBalanced(entries []Entry) bool {
	var sum int64
	for _, e := range entries {
		sum += e.Amount()
	}

	return sum == 0
}

// GroupMatches reports whether the committed entries are exactly the group
// the caller intended to write, comparing account, deltas and kind. A
// correlation id may only be honored as a replay after this check passes;
// a key committed by an unrelated settlement must not be mistaken for one.
func GroupMatches(committed, intended []Entry) bool {
	if len(committed) != len(intended) {
		return false
	}

	type effect struct {
		accountID string
		available int64
		held      int64
		kind      EntryKind
	}

	counts := make(map[effect]int, len(committed))
	for _, e := range committed {
		counts[effect{e.AccountID, e.Available, e.Held, e.Kind}]++
	}

	for _, e := range intended {
		k := effect{e.AccountID, e.Available, e.Held, e.Kind}
		if counts[k] == 0 {
			return false
		}

		counts[k]--
	}

	return true
}
