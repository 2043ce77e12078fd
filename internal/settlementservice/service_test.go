package settlementservice

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/internal/escrowservice"
	"github.com/payday-kr/settlement-core/internal/feepolicy"
	"github.com/payday-kr/settlement-core/internal/memstore"
	"github.com/payday-kr/settlement-core/internal/wagerservice"
	"github.com/payday-kr/settlement-core/pkg/currencypkg"
	"github.com/payday-kr/settlement-core/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

const testCeiling = int64(1_300)

type fixture struct {
	service *Service
	store   *memstore.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := memstore.New()
	policy := feepolicy.Default()

	service := New(
		escrowservice.New(store.Commitments, store.Ledger, policy),
		wagerservice.New(store.Wagers, store.Ledger, policy),
		store.Ledger,
		policy,
		testCeiling,
	)

	_, err := service.CreateAccount(context.Background(), domain.PlatformAccountID, currencypkg.KRW, 10_000)
	require.NoError(t, err)

	return fixture{service: service, store: store}
}

func (f fixture) fundedAccount(t *testing.T, available int64) string {
	t.Helper()

	id := randompkg.AccountID()
	_, err := f.service.CreateAccount(context.Background(), id, currencypkg.KRW, available)
	require.NoError(t, err)

	return id
}

func (f fixture) balance(t *testing.T, accountID string) domain.Balance {
	t.Helper()

	b, err := f.service.Balance(context.Background(), accountID)
	require.NoError(t, err)

	return b
}

func krw(available, held int64) domain.Balance {
	return domain.Balance{Available: available, Held: held, Currency: currencypkg.KRW}
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := f.service.CreateAccount(ctx, "user-alice", currencypkg.KRW, 5_000)
	require.NoError(t, err)
	require.Equal(t, int64(5_000), account.Available)
	require.Equal(t, int64(0), account.Held)

	_, err = f.service.CreateAccount(ctx, "user-alice", currencypkg.KRW, 0)
	require.EqualError(t, err, domain.ErrAccountExists.Error())

	_, err = f.service.CreateAccount(ctx, "user-bob", currencypkg.KRW, -1)
	require.EqualError(t, err, domain.ErrOutOfBounds.Error())

	_, err = f.service.Balance(ctx, "user-ghost")
	require.EqualError(t, err, domain.ErrUnknownAccount.Error())
}

func TestOpenWager(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("HeadToHeadSettlesAsWager", func(t *testing.T) {
		w, err := f.service.OpenWager(ctx, 500, 2, domain.HeadToHead, 0)
		require.NoError(t, err)
		require.Equal(t, domain.CategoryWager, w.Category)
	})

	t.Run("PooledSettlesAsCompetitionEntry", func(t *testing.T) {
		w, err := f.service.OpenWager(ctx, 500, 10, domain.TopPercentile, 20)
		require.NoError(t, err)
		require.Equal(t, domain.CategoryCompetitionEntry, w.Category)
	})

	t.Run("StakeAboveCeiling", func(t *testing.T) {
		_, err := f.service.OpenWager(ctx, testCeiling+1, 2, domain.HeadToHead, 0)
		require.EqualError(t, err, domain.ErrOutOfBounds.Error())
	})
}

func TestHabitCommitmentFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	owner := f.fundedAccount(t, 5_000)

	c, err := f.service.Stake(ctx, owner, 2_000, "habit:read-30min", randompkg.CorrelationID())
	require.NoError(t, err)
	require.Equal(t, domain.CommitmentHeld, c.State)
	require.Equal(t, krw(3_000, 2_000), f.balance(t, owner))

	_, err = f.service.ResolveCommitment(ctx, c.ID, domain.OutcomeFailure)
	require.NoError(t, err)

	_, err = f.service.ResolveCommitment(ctx, c.ID, domain.OutcomeSuccess)
	require.EqualError(t, err, domain.ErrAlreadyResolved.Error())

	res, err := f.service.ReleaseCommitment(ctx, c.ID, randompkg.CorrelationID())
	require.NoError(t, err)

	// Default refund fraction is 50%; the forfeited half goes to the platform.
	require.Equal(t, int64(1_000), res.Payout)
	require.Equal(t, domain.OutcomeFailure, res.Outcome)
	require.Equal(t, krw(4_000, 0), f.balance(t, owner))
	require.Equal(t, krw(11_000, 0), f.balance(t, domain.PlatformAccountID))
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	buyer := f.fundedAccount(t, 10_000)
	payee := f.fundedAccount(t, 0)

	corr := randompkg.CorrelationID()

	res, err := f.service.Purchase(ctx, buyer, payee, domain.CategoryTaskReward, 1_000, corr)
	require.NoError(t, err)

	want := domain.PurchaseResult{
		Buyer:       buyer,
		Payee:       payee,
		Category:    domain.CategoryTaskReward,
		Gross:       1_000,
		Net:         800,
		PlatformFee: 200,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Purchase() mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, krw(9_000, 0), f.balance(t, buyer))
	require.Equal(t, krw(800, 0), f.balance(t, payee))
	require.Equal(t, krw(10_200, 0), f.balance(t, domain.PlatformAccountID))

	t.Run("ReplayReturnsSameResult", func(t *testing.T) {
		again, err := f.service.Purchase(ctx, buyer, payee, domain.CategoryTaskReward, 1_000, corr)
		require.NoError(t, err)

		if diff := cmp.Diff(want, again); diff != "" {
			t.Errorf("replayed Purchase() mismatch (-want +got):\n%s", diff)
		}

		// No new entries and no balance movement.
		committed, err := f.store.Ledger.ListByCorrelation(ctx, corr)
		require.NoError(t, err)
		require.Len(t, committed, 3)
		require.Equal(t, krw(9_000, 0), f.balance(t, buyer))
	})
}

func TestPurchaseErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	buyer := f.fundedAccount(t, 10_000)
	payee := f.fundedAccount(t, 0)

	testCases := []struct {
		name     string
		category domain.Category
		amount   int64
		wantErr  error
	}{
		{
			name:     "StakingCategoryRejected",
			category: domain.CategoryHabitStake,
			amount:   2_000,
			wantErr:  domain.ErrInvalidCategory,
		},
		{
			name:     "BelowCategoryMinimum",
			category: domain.CategoryContentSale,
			amount:   100,
			wantErr:  domain.ErrOutOfBounds,
		},
		{
			name:     "AboveCategoryMaximum",
			category: domain.CategoryTaskReward,
			amount:   7_000,
			wantErr:  domain.ErrOutOfBounds,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Purchase(ctx, buyer, payee, tc.category, tc.amount, randompkg.CorrelationID())
			require.EqualError(t, err, tc.wantErr.Error())
			require.Equal(t, krw(10_000, 0), f.balance(t, buyer))
		})
	}

	t.Run("BuyerCannotAfford", func(t *testing.T) {
		_, err := f.service.Purchase(ctx, payee, buyer, domain.CategoryGoodsTrade, 1_000, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
	})

	t.Run("BuyerIsPayee", func(t *testing.T) {
		_, err := f.service.Purchase(ctx, buyer, buyer, domain.CategoryTaskReward, 1_000, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrSelfPurchase.Error())
		require.Equal(t, krw(10_000, 0), f.balance(t, buyer))
	})

	t.Run("KeyTakenByUnrelatedSettlement", func(t *testing.T) {
		taken := randompkg.CorrelationID()
		_, err := f.service.Purchase(ctx, buyer, payee, domain.CategoryTaskReward, 1_000, taken)
		require.NoError(t, err)

		// The same key with different parameters is not a replay.
		_, err = f.service.Purchase(ctx, buyer, payee, domain.CategoryTaskReward, 2_000, taken)
		require.EqualError(t, err, domain.ErrCorrelationExists.Error())
		require.Equal(t, krw(9_000, 0), f.balance(t, buyer))
	})
}
