// Package escrowservice manages the lifecycle of staked habit commitments.
package escrowservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/internal/feepolicy"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by the escrow service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package escrowservice
type Repo interface {
	Create(ctx context.Context, c domain.Commitment) (domain.Commitment, error)
	Get(ctx context.Context, id string) (domain.Commitment, error)
	GetByHoldCorrelation(ctx context.Context, correlationID string) (domain.Commitment, error)
	SetOutcome(ctx context.Context, id string, state domain.CommitmentState, outcome domain.Outcome) (domain.Commitment, error)
	SetReleased(ctx context.Context, id, correlationID string, payout int64) (domain.Commitment, error)
}

// Ledger provides the ledger store interface needed by the escrow service layer.
type Ledger interface {
	Apply(ctx context.Context, entries []domain.Entry) ([]domain.Entry, error)
	ListByCorrelation(ctx context.Context, correlationID string) ([]domain.Entry, error)
}

// Service owns the commitment state machine. No other component mutates
// commitment state.
type Service struct {
	repo   Repo
	ledger Ledger
	policy *feepolicy.Policy
}

// New returns an escrow service struct to manage commitment business logic.
func New(r Repo, l Ledger, p *feepolicy.Policy) *Service {
	return &Service{
		repo:   r,
		ledger: l,
		policy: p,
	}
}

// Stake holds the amount from the owner's available balance and creates a
// commitment in state HELD. The fee itself is deferred to release; only
// the habit-category bounds are enforced here.
//
// The correlation id is the caller's idempotency key: a replay returns the
// commitment created by the original call.
func (s *Service) Stake(ctx context.Context, owner string, amount int64, criteriaRef, correlationID string) (domain.Commitment, error) {
	l := zerolog.Ctx(ctx)

	if err := s.policy.CheckBounds(domain.CategoryHabitStake, amount); err != nil {
		return domain.Commitment{}, err
	}

	hold := []domain.Entry{{
		AccountID:     owner,
		Available:     -amount,
		Held:          amount,
		Kind:          domain.EntryStakeHold,
		CorrelationID: correlationID,
	}}

	if _, err := s.ledger.Apply(ctx, hold); err != nil {
		if err != domain.ErrCorrelationExists {
			return domain.Commitment{}, err
		}

		existing, getErr := s.repo.GetByHoldCorrelation(ctx, correlationID)
		if getErr == nil {
			return existing, nil
		}

		if getErr != domain.ErrCommitmentNotFound {
			return domain.Commitment{}, getErr
		}

		committed, listErr := s.ledger.ListByCorrelation(ctx, correlationID)
		if listErr != nil {
			return domain.Commitment{}, listErr
		}

		// Recovery may only run when the committed group is this exact
		// hold; a key taken by an unrelated settlement would otherwise
		// create a commitment backed by no held funds.
		if !domain.GroupMatches(committed, hold) {
			return domain.Commitment{}, domain.ErrCorrelationExists
		}

		// The hold committed on an earlier attempt that crashed before
		// creating the commitment; recover by creating it now.
		l.Warn().Str("correlation_id", correlationID).Msg("recovering commitment for committed stake hold")
	}

	c := domain.Commitment{
		ID:                uuid.NewString(),
		Owner:             owner,
		Amount:            amount,
		CriteriaRef:       criteriaRef,
		HoldCorrelationID: correlationID,
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		if err == domain.ErrCorrelationExists {
			return s.repo.GetByHoldCorrelation(ctx, correlationID)
		}

		return domain.Commitment{}, err
	}

	return created, nil
}

// Resolve transitions the commitment to SUCCEEDED or FAILED according to
// the externally supplied outcome. Callable exactly once per commitment.
func (s *Service) Resolve(ctx context.Context, commitmentID string, outcome domain.Outcome) (domain.Commitment, error) {
	state := domain.CommitmentFailed
	if outcome == domain.OutcomeSuccess {
		state = domain.CommitmentSucceeded
	}

	return s.repo.SetOutcome(ctx, commitmentID, state, outcome)
}

// Release writes the payout or refund entries and transitions the
// commitment to RELEASED.
//
// On SUCCEEDED the owner is credited the full stake plus the configured
// success bonus, funded by the platform account. On FAILED the owner is
// credited the configured partial refund and the platform keeps the
// forfeited remainder. A replay with the original correlation id returns
// the prior result without new entries.
func (s *Service) Release(ctx context.Context, commitmentID, correlationID string) (domain.ReleaseResult, error) {
	c, err := s.repo.Get(ctx, commitmentID)
	if err != nil {
		return domain.ReleaseResult{}, err
	}

	switch c.State {
	case domain.CommitmentHeld:
		return domain.ReleaseResult{}, domain.ErrNotResolved
	case domain.CommitmentReleased:
		if c.ReleaseCorrelationID == correlationID {
			return releaseResult(c), nil
		}

		return domain.ReleaseResult{}, domain.ErrAlreadyReleased
	}

	var (
		payout  int64
		entries []domain.Entry
	)

	if c.State == domain.CommitmentSucceeded {
		payout = s.policy.SuccessPayout(c.Amount)
		bonus := payout - c.Amount

		entries = []domain.Entry{{
			AccountID:     c.Owner,
			Available:     payout,
			Held:          -c.Amount,
			Kind:          domain.EntryStakeRelease,
			CorrelationID: correlationID,
		}}

		if bonus > 0 {
			entries = append(entries, domain.Entry{
				AccountID:     domain.PlatformAccountID,
				Available:     -bonus,
				Kind:          domain.EntryStakeRelease,
				CorrelationID: correlationID,
			})
		}
	} else {
		payout = s.policy.FailRefundAmount(c.Amount)
		forfeit := c.Amount - payout

		entries = []domain.Entry{{
			AccountID:     c.Owner,
			Available:     payout,
			Held:          -c.Amount,
			Kind:          domain.EntryStakeRelease,
			CorrelationID: correlationID,
		}}

		if forfeit > 0 {
			entries = append(entries, domain.Entry{
				AccountID:     domain.PlatformAccountID,
				Available:     forfeit,
				Kind:          domain.EntryPlatformFee,
				CorrelationID: correlationID,
			})
		}
	}

	if !domain.GroupBalanced(entries) {
		return domain.ReleaseResult{}, domain.ErrUnbalancedEntries
	}

	if _, err := s.ledger.Apply(ctx, entries); err != nil {
		if err != domain.ErrCorrelationExists {
			return domain.ReleaseResult{}, err
		}

		committed, listErr := s.ledger.ListByCorrelation(ctx, correlationID)
		if listErr != nil {
			return domain.ReleaseResult{}, listErr
		}

		if !domain.GroupMatches(committed, entries) {
			return domain.ReleaseResult{}, domain.ErrCorrelationExists
		}
	}

	released, err := s.repo.SetReleased(ctx, commitmentID, correlationID, payout)
	if err != nil {
		if err == domain.ErrAlreadyReleased {
			// Lost a race against a concurrent release with the same key.
			current, getErr := s.repo.Get(ctx, commitmentID)
			if getErr == nil && current.ReleaseCorrelationID == correlationID {
				return releaseResult(current), nil
			}
		}

		return domain.ReleaseResult{}, err
	}

	return releaseResult(released), nil
}

func releaseResult(c domain.Commitment) domain.ReleaseResult {
	return domain.ReleaseResult{
		CommitmentID: c.ID,
		Outcome:      c.Outcome,
		Category:     domain.CategoryHabitStake,
		Payout:       c.Payout,
	}
}
