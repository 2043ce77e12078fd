package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/payday-kr/settlement-core/internal/domain"
)

// Commitments is an in-memory commitments repository.
type Commitments struct {
	mu     sync.Mutex
	items  map[string]*domain.Commitment
	byHold map[string]string
}

// NewCommitments returns an empty in-memory commitments repository.
func NewCommitments() *Commitments {
	return &Commitments{
		items:  make(map[string]*domain.Commitment),
		byHold: make(map[string]string),
	}
}

// Create stores a new commitment in state HELD.
func (r *Commitments) Create(ctx context.Context, c domain.Commitment) (domain.Commitment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.State = domain.CommitmentHeld
	c.CreatedAt = time.Now().UTC()
	r.items[c.ID] = &c
	r.byHold[c.HoldCorrelationID] = c.ID

	return c, nil
}

// Get returns the commitment with the given id.
func (r *Commitments) Get(ctx context.Context, id string) (domain.Commitment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return domain.Commitment{}, domain.ErrCommitmentNotFound
	}

	return *c, nil
}

// GetByHoldCorrelation returns the commitment created under the given
// stake correlation id.
func (r *Commitments) GetByHoldCorrelation(ctx context.Context, correlationID string) (domain.Commitment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byHold[correlationID]
	if !ok {
		return domain.Commitment{}, domain.ErrCommitmentNotFound
	}

	return *r.items[id], nil
}

// SetOutcome transitions HELD to SUCCEEDED or FAILED exactly once.
func (r *Commitments) SetOutcome(ctx context.Context, id string, state domain.CommitmentState, outcome domain.Outcome) (domain.Commitment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return domain.Commitment{}, domain.ErrCommitmentNotFound
	}

	if c.State != domain.CommitmentHeld {
		return domain.Commitment{}, domain.ErrAlreadyResolved
	}

	now := time.Now().UTC()
	c.State = state
	c.Outcome = outcome
	c.ResolvedAt = &now

	return *c, nil
}

// SetReleased transitions a resolved commitment to RELEASED, recording the
// release correlation id and payout for replay reconstruction.
func (r *Commitments) SetReleased(ctx context.Context, id, correlationID string, payout int64) (domain.Commitment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return domain.Commitment{}, domain.ErrCommitmentNotFound
	}

	switch c.State {
	case domain.CommitmentSucceeded, domain.CommitmentFailed:
	case domain.CommitmentReleased:
		return domain.Commitment{}, domain.ErrAlreadyReleased
	default:
		return domain.Commitment{}, domain.ErrNotResolved
	}

	c.State = domain.CommitmentReleased
	c.ReleaseCorrelationID = correlationID
	c.Payout = payout

	return *c, nil
}
