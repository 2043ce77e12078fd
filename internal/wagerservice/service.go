// Package wagerservice resolves bounded wagers and pooled competitions into payouts.
package wagerservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/internal/feepolicy"
	"github.com/payday-kr/settlement-core/pkg/moneypkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by the wager service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package wagerservice
type Repo interface {
	Create(ctx context.Context, w domain.Wager) (domain.Wager, error)
	Get(ctx context.Context, id string) (domain.Wager, error)
	Participants(ctx context.Context, id string) ([]string, error)
	AddParticipant(ctx context.Context, id, accountID, correlationID string) (string, error)
	RemoveParticipant(ctx context.Context, id, accountID string) error
	SetState(ctx context.Context, id string, from, to domain.WagerState, correlationID string) (domain.Wager, error)
}

// Ledger provides the ledger store interface needed by the wager service layer.
type Ledger interface {
	Apply(ctx context.Context, entries []domain.Entry) ([]domain.Entry, error)
	ListByCorrelation(ctx context.Context, correlationID string) ([]domain.Entry, error)
}

// Service facilitates wager service layer logic.
type Service struct {
	repo   Repo
	ledger Ledger
	policy *feepolicy.Policy
}

// New returns a wager service struct to manage wager business logic.
func New(r Repo, l Ledger, p *feepolicy.Policy) *Service {
	return &Service{
		repo:   r,
		ledger: l,
		policy: p,
	}
}

// Open creates a wager in state OPEN. The per-participant stake must be
// inside the category bounds.
func (s *Service) Open(ctx context.Context, category domain.Category, stake int64, maxParticipants int32, poolRule domain.PoolRule, topPercent int32) (domain.Wager, error) {
	if err := s.policy.CheckBounds(category, stake); err != nil {
		return domain.Wager{}, err
	}

	switch poolRule {
	case domain.HeadToHead:
		maxParticipants = domain.HeadToHeadParticipants
		topPercent = 0
	case domain.TopPercentile:
		if topPercent <= 0 || topPercent > 100 || maxParticipants < 2 {
			return domain.Wager{}, domain.ErrInvalidRanking
		}
	default:
		return domain.Wager{}, domain.ErrInvalidRanking
	}

	w := domain.Wager{
		ID:              uuid.NewString(),
		Category:        category,
		Stake:           stake,
		MaxParticipants: maxParticipants,
		PoolRule:        poolRule,
		TopPercent:      topPercent,
	}

	return s.repo.Create(ctx, w)
}

// Enter holds the stake from the account and registers it as an entrant.
// Only valid while the wager is OPEN and under capacity.
func (s *Service) Enter(ctx context.Context, wagerID, accountID, correlationID string) error {
	l := zerolog.Ctx(ctx)

	w, err := s.repo.Get(ctx, wagerID)
	if err != nil {
		return err
	}

	hold := []domain.Entry{{
		AccountID:     accountID,
		Available:     -w.Stake,
		Held:          w.Stake,
		Kind:          domain.EntryStakeHold,
		CorrelationID: correlationID,
	}}

	if storedCorr, err := s.repo.AddParticipant(ctx, wagerID, accountID, correlationID); err != nil {
		if err != domain.ErrDuplicateEntry || storedCorr != correlationID {
			return err
		}

		committed, listErr := s.ledger.ListByCorrelation(ctx, correlationID)
		if listErr != nil {
			return listErr
		}

		if len(committed) > 0 {
			if domain.GroupMatches(committed, hold) {
				return nil
			}

			// The key was committed by an unrelated settlement; honoring
			// it as a replay would seat an entrant without a funded hold.
			return domain.ErrCorrelationExists
		}

		// The seat was claimed by an earlier attempt that crashed before
		// the hold committed; retry the hold under the same key.
		l.Warn().Str("wager_id", wagerID).Str("correlation_id", correlationID).
			Msg("retrying hold for seated entrant")
	}

	if _, err := s.ledger.Apply(ctx, hold); err != nil {
		if err == domain.ErrCorrelationExists {
			committed, listErr := s.ledger.ListByCorrelation(ctx, correlationID)
			if listErr == nil && domain.GroupMatches(committed, hold) {
				return nil
			}
		}

		// The seat was claimed but the stake could not be held; give the
		// seat back so the wager does not count an unfunded entrant.
		if rmErr := s.repo.RemoveParticipant(ctx, wagerID, accountID); rmErr != nil {
			l.Error().Err(rmErr).Str("wager_id", wagerID).Msg("cannot withdraw unfunded entrant")
		}

		return err
	}

	return nil
}

// Lock transitions the wager from OPEN to LOCKED. After this, Enter fails
// with ErrWagerClosed and Void is no longer possible.
func (s *Service) Lock(ctx context.Context, wagerID string) (domain.Wager, error) {
	return s.repo.SetState(ctx, wagerID, domain.WagerOpen, domain.WagerLocked, "")
}

// Settle divides the gross pool into payouts and the platform fee,
// transitioning LOCKED to SETTLED exactly once.
//
// The ranking lists entrants best first. For HEAD_TO_HEAD the single
// winner receives the full net pool; for TOP_PERCENTILE the net pool is
// divided among the top-ranked fraction by integer division, with any
// remainder credited to the platform. A replay with the original
// correlation id reconstructs the committed result.
func (s *Service) Settle(ctx context.Context, wagerID string, ranking []string, correlationID string) (domain.SettleResult, error) {
	w, err := s.repo.Get(ctx, wagerID)
	if err != nil {
		return domain.SettleResult{}, err
	}

	switch w.State {
	case domain.WagerSettled:
		if w.CorrelationID == correlationID {
			return s.rebuildSettle(ctx, w)
		}

		return domain.SettleResult{}, domain.ErrAlreadySettled
	case domain.WagerLocked:
	default:
		return domain.SettleResult{}, domain.ErrNotLocked
	}

	participants, err := s.repo.Participants(ctx, wagerID)
	if err != nil {
		return domain.SettleResult{}, err
	}

	winners, err := pickWinners(w, participants, ranking)
	if err != nil {
		return domain.SettleResult{}, err
	}

	pool, err := moneypkg.Mul64(w.Stake, int64(len(participants)))
	if err != nil {
		return domain.SettleResult{}, err
	}

	split, err := s.policy.SplitPool(w.Category, pool)
	if err != nil {
		return domain.SettleResult{}, err
	}

	share := split.Net / int64(len(winners))
	remainder := split.Net - share*int64(len(winners))
	platformCredit := split.PlatformFee + remainder

	entries := make([]domain.Entry, 0, len(participants)+1)
	payouts := make([]domain.Payout, 0, len(winners))
	winnerSet := make(map[string]bool, len(winners))

	for _, a := range winners {
		winnerSet[a] = true
	}

	for _, p := range participants {
		e := domain.Entry{
			AccountID:     p,
			Held:          -w.Stake,
			Kind:          domain.EntryWagerPayout,
			CorrelationID: correlationID,
		}

		if winnerSet[p] {
			e.Available = share
			payouts = append(payouts, domain.Payout{AccountID: p, Amount: share})
		}

		entries = append(entries, e)
	}

	if platformCredit > 0 {
		entries = append(entries, domain.Entry{
			AccountID:     domain.PlatformAccountID,
			Available:     platformCredit,
			Kind:          domain.EntryWagerFee,
			CorrelationID: correlationID,
		})
	}

	if !domain.GroupBalanced(entries) {
		return domain.SettleResult{}, domain.ErrUnbalancedEntries
	}

	if _, err := s.ledger.Apply(ctx, entries); err != nil {
		if err != domain.ErrCorrelationExists {
			return domain.SettleResult{}, err
		}

		committed, listErr := s.ledger.ListByCorrelation(ctx, correlationID)
		if listErr != nil {
			return domain.SettleResult{}, listErr
		}

		if !domain.GroupMatches(committed, entries) {
			return domain.SettleResult{}, domain.ErrCorrelationExists
		}
	}

	if _, err := s.repo.SetState(ctx, wagerID, domain.WagerLocked, domain.WagerSettled, correlationID); err != nil {
		if err == domain.ErrAlreadySettled {
			current, getErr := s.repo.Get(ctx, wagerID)
			if getErr == nil && current.CorrelationID == correlationID {
				return s.rebuildSettle(ctx, current)
			}
		}

		return domain.SettleResult{}, err
	}

	return domain.SettleResult{
		WagerID:     wagerID,
		Payouts:     payouts,
		PlatformFee: platformCredit,
	}, nil
}

// Void refunds every entrant's held stake in full, transitioning OPEN to
// VOID. No fee is charged. Locked or settled wagers cannot be voided.
func (s *Service) Void(ctx context.Context, wagerID, correlationID string) error {
	w, err := s.repo.Get(ctx, wagerID)
	if err != nil {
		return err
	}

	switch w.State {
	case domain.WagerVoid:
		if w.CorrelationID == correlationID {
			return nil
		}

		return domain.ErrCannotVoid
	case domain.WagerOpen:
	default:
		return domain.ErrCannotVoid
	}

	participants, err := s.repo.Participants(ctx, wagerID)
	if err != nil {
		return err
	}

	entries := make([]domain.Entry, 0, len(participants))
	for _, p := range participants {
		entries = append(entries, domain.Entry{
			AccountID:     p,
			Available:     w.Stake,
			Held:          -w.Stake,
			Kind:          domain.EntryStakeRelease,
			CorrelationID: correlationID,
		})
	}

	if len(entries) > 0 {
		if _, err := s.ledger.Apply(ctx, entries); err != nil {
			if err != domain.ErrCorrelationExists {
				return err
			}

			committed, listErr := s.ledger.ListByCorrelation(ctx, correlationID)
			if listErr != nil {
				return listErr
			}

			if !domain.GroupMatches(committed, entries) {
				return domain.ErrCorrelationExists
			}
		}
	}

	if _, err := s.repo.SetState(ctx, wagerID, domain.WagerOpen, domain.WagerVoid, correlationID); err != nil {
		if err == domain.ErrCannotVoid {
			current, getErr := s.repo.Get(ctx, wagerID)
			if getErr == nil && current.State == domain.WagerVoid && current.CorrelationID == correlationID {
				return nil
			}
		}

		return err
	}

	return nil
}

func pickWinners(w domain.Wager, participants, ranking []string) ([]string, error) {
	if len(ranking) == 0 || len(participants) == 0 {
		return nil, domain.ErrInvalidRanking
	}

	entered := make(map[string]bool, len(participants))
	for _, p := range participants {
		entered[p] = true
	}

	seen := make(map[string]bool, len(ranking))
	for _, a := range ranking {
		if !entered[a] || seen[a] {
			return nil, domain.ErrInvalidRanking
		}

		seen[a] = true
	}

	if w.PoolRule == domain.HeadToHead {
		if len(participants) != domain.HeadToHeadParticipants {
			return nil, domain.ErrInvalidRanking
		}

		return ranking[:1], nil
	}

	count := int64(len(participants)) * int64(w.TopPercent) / 100
	if count < 1 {
		count = 1
	}

	if int(count) > len(ranking) {
		return nil, domain.ErrInvalidRanking
	}

	return ranking[:count], nil
}

func (s *Service) rebuildSettle(ctx context.Context, w domain.Wager) (domain.SettleResult, error) {
	committed, err := s.ledger.ListByCorrelation(ctx, w.CorrelationID)
	if err != nil {
		return domain.SettleResult{}, err
	}

	result := domain.SettleResult{WagerID: w.ID, Payouts: []domain.Payout{}}

	for _, e := range committed {
		switch e.Kind {
		case domain.EntryWagerPayout:
			if e.Available > 0 {
				result.Payouts = append(result.Payouts, domain.Payout{AccountID: e.AccountID, Amount: e.Available})
			}
		case domain.EntryWagerFee:
			result.PlatformFee = e.Available
		}
	}

	return result, nil
}
