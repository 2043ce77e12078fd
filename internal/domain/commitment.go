package domain

import (
	"errors"
	"time"
)

var (
	// ErrCommitmentNotFound indicates that the commitment does not exist.
	ErrCommitmentNotFound = errors.New("commitment not found")
	// ErrAlreadyResolved indicates a second resolve on the same commitment.
	ErrAlreadyResolved = errors.New("commitment already resolved")
	// ErrAlreadyReleased indicates a second release with a new correlation id.
	ErrAlreadyReleased = errors.New("commitment already released")
	// ErrNotResolved indicates a release before the outcome was reported.
	ErrNotResolved = errors.New("commitment not resolved")
)

// CommitmentState is the lifecycle state of a staked commitment.
type CommitmentState string

// Commitment lifecycle: HELD -> SUCCEEDED or FAILED -> RELEASED.
// RELEASED is terminal. No transition skips a state.
const (
	CommitmentHeld      CommitmentState = "HELD"
	CommitmentSucceeded CommitmentState = "SUCCEEDED"
	CommitmentFailed    CommitmentState = "FAILED"
	CommitmentReleased  CommitmentState = "RELEASED"
)

// Outcome is the externally supplied result of a commitment.
type Outcome string

// Commitment outcomes reported by the habit-verification collaborator.
const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
)

// Commitment is a staked habit challenge owned by the escrow manager.
//
// HoldCorrelationID and ReleaseCorrelationID record the idempotency keys
// of the stake and release settlements so replays can return the original
// result instead of double-applying.
type Commitment struct {
	ID                   string          `json:"id"`
	Owner                string          `json:"owner"`
	Amount               int64           `json:"amount"`
	CriteriaRef          string          `json:"criteria_ref"`
	State                CommitmentState `json:"state"`
	Outcome              Outcome         `json:"outcome,omitempty"`
	HoldCorrelationID    string          `json:"hold_correlation_id"`
	ReleaseCorrelationID string          `json:"release_correlation_id,omitempty"`
	Payout               int64           `json:"payout"`
	CreatedAt            time.Time       `json:"created_at"`
	ResolvedAt           *time.Time      `json:"resolved_at,omitempty"`
}

// ReleaseResult is the outcome of releasing a commitment.
type ReleaseResult struct {
	CommitmentID string   `json:"commitment_id"`
	Outcome      Outcome  `json:"outcome"`
	Category     Category `json:"category"`
	Payout       int64    `json:"payout"`
}
