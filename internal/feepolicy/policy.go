// Package feepolicy maps transaction categories to fee splits and amount bounds.
//
// All computations are pure; a Policy is safe to share between goroutines
// without synchronization once built.
package feepolicy

import (
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryRule holds the fee rate and amount bounds of one category.
//
// Rate is the exact decimal fraction kept by the platform. Min and Max
// bound the amount of a single contribution in minor units.
type CategoryRule struct {
	Rate decimal.Decimal
	Min  int64
	Max  int64
}

// Policy is the declarative fee configuration queried by every settlement path.
type Policy struct {
	rules map[domain.Category]CategoryRule

	// SuccessBonus and FailRefund are fractions of a habit stake paid out
	// on release. The bonus is funded by the platform account; the
	// unrefunded remainder of a failed stake is forfeited to it.
	SuccessBonus decimal.Decimal
	FailRefund   decimal.Decimal
}

// Split is the exact division of a gross amount between platform and beneficiary.
type Split struct {
	PlatformFee int64
	Net         int64
}

// New returns a policy with the given per-category rules.
func New(rules map[domain.Category]CategoryRule, successBonus, failRefund decimal.Decimal) *Policy {
	return &Policy{
		rules:        rules,
		SuccessBonus: successBonus,
		FailRefund:   failRefund,
	}
}

// Default returns the production fee table. Amounts are KRW; rates follow
// the product's published cuts per category.
func Default() *Policy {
	return New(map[domain.Category]CategoryRule{
		domain.CategoryCompetitionEntry: {Rate: ratio(20), Min: 130, Max: 1_300},
		domain.CategoryHabitStake:       {Rate: decimal.Zero, Min: 1_300, Max: 13_000},
		domain.CategoryWager:            {Rate: ratio(20), Min: 130, Max: 1_300},
		domain.CategoryTaskReward:       {Rate: ratio(20), Min: 130, Max: 6_500},
		domain.CategoryContentSale:      {Rate: ratio(30), Min: 650, Max: 65_000},
		domain.CategoryGoodsTrade:       {Rate: ratio(10), Min: 130, Max: 13_000},
		domain.CategoryCrowdfund:        {Rate: ratio(8), Min: 1_300, Max: 130_000},
	}, ratio(50), ratio(50))
}

func ratio(percent int64) decimal.Decimal {
	return decimal.New(percent, -2)
}

// Rule returns the configured rule of the category.
func (p *Policy) Rule(category domain.Category) (CategoryRule, bool) {
	r, ok := p.rules[category]
	return r, ok
}

// CheckBounds fails with ErrOutOfBounds unless the amount is inside the
// category's configured [min, max] range. Boundary values are valid.
func (p *Policy) CheckBounds(category domain.Category, amount int64) error {
	r, ok := p.rules[category]
	if !ok {
		return domain.ErrOutOfBounds
	}

	if amount < r.Min || amount > r.Max {
		return domain.ErrOutOfBounds
	}

	return nil
}

// ComputeSplit validates the gross amount against the category bounds and
// divides it into platform fee and net amount.
func (p *Policy) ComputeSplit(category domain.Category, gross int64) (Split, error) {
	if err := p.CheckBounds(category, gross); err != nil {
		return Split{}, err
	}

	return p.SplitPool(category, gross)
}

// SplitPool divides a gross amount by the category rate without a bound
// check. Pooled settlements use it because bounds apply to single entries,
// not to the pool total.
//
// The net amount is truncated, so any sub-minor-unit remainder goes to the
// platform fee and PlatformFee + Net reconstructs gross exactly.
func (p *Policy) SplitPool(category domain.Category, gross int64) (Split, error) {
	r, ok := p.rules[category]
	if !ok {
		return Split{}, domain.ErrOutOfBounds
	}

	if gross < 0 {
		return Split{}, domain.ErrOutOfBounds
	}

	net := decimal.NewFromInt(gross).
		Mul(decimal.NewFromInt(1).Sub(r.Rate)).
		Floor().
		IntPart()

	return Split{PlatformFee: gross - net, Net: net}, nil
}

// SuccessPayout returns the full stake plus the configured success bonus.
func (p *Policy) SuccessPayout(stake int64) int64 {
	bonus := decimal.NewFromInt(stake).Mul(p.SuccessBonus).Floor().IntPart()
	return stake + bonus
}

// FailRefundAmount returns the configured partial refund of a failed stake.
// Truncation keeps the forfeited remainder with the platform.
func (p *Policy) FailRefundAmount(stake int64) int64 {
	return decimal.NewFromInt(stake).Mul(p.FailRefund).Floor().IntPart()
}
