package domain

import "errors"

// ErrOutOfBounds indicates an amount outside the configured category range.
var ErrOutOfBounds = errors.New("amount out of category bounds")

// Category is a transaction category with its own fee rate and amount bounds.
type Category string

// All settlement categories.
const (
	CategoryCompetitionEntry Category = "COMPETITION_ENTRY"
	CategoryHabitStake       Category = "HABIT_STAKE"
	CategoryWager            Category = "WAGER"
	CategoryTaskReward       Category = "TASK_REWARD"
	CategoryContentSale      Category = "CONTENT_SALE"
	CategoryGoodsTrade       Category = "GOODS_TRADE"
	CategoryCrowdfund        Category = "CROWDFUND_CONTRIBUTION"
)

// Categories holds every settlement category.
var Categories = []Category{
	CategoryCompetitionEntry,
	CategoryHabitStake,
	CategoryWager,
	CategoryTaskReward,
	CategoryContentSale,
	CategoryGoodsTrade,
	CategoryCrowdfund,
}

// IsValidCategory returns true if the category is known.
func IsValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}
