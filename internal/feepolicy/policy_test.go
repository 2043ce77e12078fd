package feepolicy

import (
	"testing"

	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/pkg/randompkg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestComputeSplitConservation(t *testing.T) {
	policy := Default()

	for _, category := range domain.Categories {
		category := category

		t.Run(string(category), func(t *testing.T) {
			rule, ok := policy.Rule(category)
			require.True(t, ok)

			for i := 0; i < 100; i++ {
				gross := randompkg.AmountBetween(rule.Min, rule.Max)

				split, err := policy.ComputeSplit(category, gross)
				require.NoError(t, err)

				require.Equal(t, gross, split.PlatformFee+split.Net,
					"fee %d + net %d must reconstruct gross %d", split.PlatformFee, split.Net, gross)
				require.GreaterOrEqual(t, split.PlatformFee, int64(0))
				require.GreaterOrEqual(t, split.Net, int64(0))
			}
		})
	}
}

func TestComputeSplitTruncatesTowardPlatform(t *testing.T) {
	// 30% of 651 is 195.3: the net is truncated to 455 and the fractional
	// remainder stays with the platform fee.
	policy := Default()

	split, err := policy.ComputeSplit(domain.CategoryContentSale, 651)
	require.NoError(t, err)
	require.Equal(t, int64(455), split.Net)
	require.Equal(t, int64(196), split.PlatformFee)
}

func TestCheckBounds(t *testing.T) {
	policy := Default()

	testCases := []struct {
		name     string
		category domain.Category
		amount   int64
		wantErr  error
	}{
		{name: "WagerExactMin", category: domain.CategoryWager, amount: 130},
		{name: "WagerExactMax", category: domain.CategoryWager, amount: 1_300},
		{name: "WagerBelowMin", category: domain.CategoryWager, amount: 129, wantErr: domain.ErrOutOfBounds},
		{name: "WagerAboveMax", category: domain.CategoryWager, amount: 1_301, wantErr: domain.ErrOutOfBounds},
		{name: "HabitExactMin", category: domain.CategoryHabitStake, amount: 1_300},
		{name: "HabitAboveMax", category: domain.CategoryHabitStake, amount: 13_001, wantErr: domain.ErrOutOfBounds},
		{name: "CrowdfundExactMax", category: domain.CategoryCrowdfund, amount: 130_000},
		{name: "UnknownCategory", category: "LOTTERY", amount: 100, wantErr: domain.ErrOutOfBounds},
		{name: "Negative", category: domain.CategoryTaskReward, amount: -1, wantErr: domain.ErrOutOfBounds},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			err := policy.CheckBounds(tc.category, tc.amount)

			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSplitPoolSkipsBounds(t *testing.T) {
	// Pool totals exceed the per-entry max; bounds apply to entries only.
	policy := Default()

	split, err := policy.SplitPool(domain.CategoryWager, 13_000)
	require.NoError(t, err)
	require.Equal(t, int64(2_600), split.PlatformFee)
	require.Equal(t, int64(10_400), split.Net)

	_, err = policy.SplitPool(domain.CategoryWager, -1)
	require.EqualError(t, err, domain.ErrOutOfBounds.Error())
}

func TestHabitPayouts(t *testing.T) {
	policy := New(map[domain.Category]CategoryRule{
		domain.CategoryHabitStake: {Rate: decimal.Zero, Min: 100, Max: 100_000},
	}, decimal.New(5, -1), decimal.New(2, -1)) // bonus 50%, refund 20%

	require.Equal(t, int64(1_500), policy.SuccessPayout(1_000))
	require.Equal(t, int64(200), policy.FailRefundAmount(1_000))

	// Truncation keeps the remainder with the platform.
	require.Equal(t, int64(20), policy.FailRefundAmount(101))
}
