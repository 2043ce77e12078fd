// Package settlementservice is the single entry point the API layer calls.
//
// It composes the fee policy, the ledger store, the escrow manager and the
// wager engine into the product-level settlement operations, and enforces
// the hard per-entry fee ceiling on top of the category bounds.
package settlementservice

import (
	"context"

	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/internal/feepolicy"
)

// Escrow provides the commitment operations needed by the facade.
//
//go:generate mockgen -source service.go -destination service_mock.go -package settlementservice
type Escrow interface {
	Stake(ctx context.Context, owner string, amount int64, criteriaRef, correlationID string) (domain.Commitment, error)
	Resolve(ctx context.Context, commitmentID string, outcome domain.Outcome) (domain.Commitment, error)
	Release(ctx context.Context, commitmentID, correlationID string) (domain.ReleaseResult, error)
}

// Wagers provides the wager operations needed by the facade.
type Wagers interface {
	Open(ctx context.Context, category domain.Category, stake int64, maxParticipants int32, poolRule domain.PoolRule, topPercent int32) (domain.Wager, error)
	Enter(ctx context.Context, wagerID, accountID, correlationID string) error
	Lock(ctx context.Context, wagerID string) (domain.Wager, error)
	Settle(ctx context.Context, wagerID string, ranking []string, correlationID string) (domain.SettleResult, error)
	Void(ctx context.Context, wagerID, correlationID string) error
}

// Ledger provides the ledger store interface needed by the facade.
type Ledger interface {
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	BalanceOf(ctx context.Context, id string) (domain.Balance, error)
	Apply(ctx context.Context, entries []domain.Entry) ([]domain.Entry, error)
	ListByCorrelation(ctx context.Context, correlationID string) ([]domain.Entry, error)
}

// Service facilitates the settlement facade logic.
type Service struct {
	escrow Escrow
	wagers Wagers
	ledger Ledger
	policy *feepolicy.Policy

	// ceiling caps any single wager or competition entry stake in minor
	// units, regardless of category-specific bounds.
	ceiling int64
}

// New returns a settlement facade.
func New(e Escrow, w Wagers, l Ledger, p *feepolicy.Policy, ceiling int64) *Service {
	return &Service{
		escrow:  e,
		wagers:  w,
		ledger:  l,
		policy:  p,
		ceiling: ceiling,
	}
}

// CreateAccount registers an account. The opening balance represents
// already-collected funds handed over by the payment layer.
func (s *Service) CreateAccount(ctx context.Context, id, currency string, opening int64) (domain.Account, error) {
	if opening < 0 {
		return domain.Account{}, domain.ErrOutOfBounds
	}

	return s.ledger.CreateAccount(ctx, domain.Account{
		ID:        id,
		Currency:  currency,
		Available: opening,
	})
}

// Balance returns the committed balances of the account.
func (s *Service) Balance(ctx context.Context, accountID string) (domain.Balance, error) {
	return s.ledger.BalanceOf(ctx, accountID)
}

// OpenWager creates a head-to-head wager or a pooled competition.
// Head-to-head wagers settle under the WAGER category; pooled competitions
// under COMPETITION_ENTRY.
func (s *Service) OpenWager(ctx context.Context, stake int64, maxParticipants int32, poolRule domain.PoolRule, topPercent int32) (domain.Wager, error) {
	if stake > s.ceiling {
		return domain.Wager{}, domain.ErrOutOfBounds
	}

	category := domain.CategoryWager
	if poolRule == domain.TopPercentile {
		category = domain.CategoryCompetitionEntry
	}

	return s.wagers.Open(ctx, category, stake, maxParticipants, poolRule, topPercent)
}

// EnterWager holds the entry stake from the account.
func (s *Service) EnterWager(ctx context.Context, wagerID, accountID, correlationID string) error {
	return s.wagers.Enter(ctx, wagerID, accountID, correlationID)
}

// LockWager closes the wager for entries.
func (s *Service) LockWager(ctx context.Context, wagerID string) (domain.Wager, error) {
	return s.wagers.Lock(ctx, wagerID)
}

// SettleWager resolves the wager into payouts and the platform fee.
func (s *Service) SettleWager(ctx context.Context, wagerID string, ranking []string, correlationID string) (domain.SettleResult, error) {
	return s.wagers.Settle(ctx, wagerID, ranking, correlationID)
}

// VoidWager cancels an open wager and refunds every held stake in full.
func (s *Service) VoidWager(ctx context.Context, wagerID, correlationID string) error {
	return s.wagers.Void(ctx, wagerID, correlationID)
}

// Stake escrows a habit-staking commitment.
func (s *Service) Stake(ctx context.Context, owner string, amount int64, criteriaRef, correlationID string) (domain.Commitment, error) {
	return s.escrow.Stake(ctx, owner, amount, criteriaRef, correlationID)
}

// ResolveCommitment records the externally supplied outcome of a commitment.
func (s *Service) ResolveCommitment(ctx context.Context, commitmentID string, outcome domain.Outcome) (domain.Commitment, error) {
	return s.escrow.Resolve(ctx, commitmentID, outcome)
}

// ReleaseCommitment pays out or refunds a resolved commitment.
func (s *Service) ReleaseCommitment(ctx context.Context, commitmentID, correlationID string) (domain.ReleaseResult, error) {
	return s.escrow.Release(ctx, commitmentID, correlationID)
}

// purchaseKinds maps a direct-payment category to its beneficiary entry kind.
var purchaseKinds = map[domain.Category]domain.EntryKind{
	domain.CategoryTaskReward:  domain.EntryTaskReward,
	domain.CategoryContentSale: domain.EntrySaleProceeds,
	domain.CategoryGoodsTrade:  domain.EntrySaleProceeds,
	domain.CategoryCrowdfund:   domain.EntrySaleProceeds,
}

// Purchase settles a direct payment from buyer to payee: a micro-task
// reward, a digital-goods sale or a crowdfunding contribution. The gross
// amount is split by the category's fee rate, and all three entries commit
// as one correlation group. A replay with the original correlation id
// reconstructs the committed result.
func (s *Service) Purchase(ctx context.Context, buyer, payee string, category domain.Category, amount int64, correlationID string) (domain.PurchaseResult, error) {
	kind, ok := purchaseKinds[category]
	if !ok {
		return domain.PurchaseResult{}, domain.ErrInvalidCategory
	}

	if buyer == payee {
		return domain.PurchaseResult{}, domain.ErrSelfPurchase
	}

	split, err := s.policy.ComputeSplit(category, amount)
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	entries := []domain.Entry{
		{
			AccountID:     buyer,
			Available:     -amount,
			Kind:          kind,
			CorrelationID: correlationID,
		},
		{
			AccountID:     payee,
			Available:     split.Net,
			Kind:          kind,
			CorrelationID: correlationID,
		},
	}

	if split.PlatformFee > 0 {
		entries = append(entries, domain.Entry{
			AccountID:     domain.PlatformAccountID,
			Available:     split.PlatformFee,
			Kind:          domain.EntryPlatformFee,
			CorrelationID: correlationID,
		})
	}

	if !domain.GroupBalanced(entries) {
		return domain.PurchaseResult{}, domain.ErrUnbalancedEntries
	}

	if _, err := s.ledger.Apply(ctx, entries); err != nil {
		if err != domain.ErrCorrelationExists {
			return domain.PurchaseResult{}, err
		}

		// A true replay wrote exactly this group on the original call, so
		// the recomputed result matches the committed one. Any other group
		// under the key belongs to an unrelated settlement.
		committed, listErr := s.ledger.ListByCorrelation(ctx, correlationID)
		if listErr != nil {
			return domain.PurchaseResult{}, listErr
		}

		if !domain.GroupMatches(committed, entries) {
			return domain.PurchaseResult{}, domain.ErrCorrelationExists
		}
	}

	return domain.PurchaseResult{
		Buyer:       buyer,
		Payee:       payee,
		Category:    category,
		Gross:       amount,
		Net:         split.Net,
		PlatformFee: split.PlatformFee,
	}, nil
}
