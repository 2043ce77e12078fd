package ledgerrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/pkg/configpkg"
	"github.com/payday-kr/settlement-core/pkg/currencypkg"
	"github.com/payday-kr/settlement-core/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

var testRepo *RepoPGS

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createTestAccount(t *testing.T, available int64) domain.Account {
	t.Helper()

	account, err := testRepo.CreateAccount(context.Background(), domain.Account{
		ID:        randompkg.AccountID(),
		Currency:  currencypkg.KRW,
		Available: available,
	})
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, available, account.Available)
	require.Equal(t, int64(0), account.Held)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestCreateAccount(t *testing.T) {
	account := createTestAccount(t, randompkg.AmountBetween(1_000, 10_000))

	_, err := testRepo.CreateAccount(context.Background(), account)
	require.EqualError(t, err, domain.ErrAccountExists.Error())
}

func TestGetAccount(t *testing.T) {
	want := createTestAccount(t, randompkg.AmountBetween(1_000, 10_000))

	got, err := testRepo.GetAccount(context.Background(), want.ID)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = testRepo.GetAccount(context.Background(), "ghost-"+randompkg.String(8))
	require.EqualError(t, err, domain.ErrUnknownAccount.Error())
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	account := createTestAccount(t, 1_000)

	corr := randompkg.CorrelationID()
	hold := []domain.Entry{{
		AccountID:     account.ID,
		Available:     -400,
		Held:          400,
		Kind:          domain.EntryStakeHold,
		CorrelationID: corr,
	}}

	committed, err := testRepo.Apply(ctx, hold)
	require.NoError(t, err)
	require.Len(t, committed, 1)
	require.NotZero(t, committed[0].ID)
	require.NotZero(t, committed[0].CreatedAt)

	balance, err := testRepo.BalanceOf(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Balance{Available: 600, Held: 400, Currency: currencypkg.KRW}, balance)

	t.Run("ReplayIsRejected", func(t *testing.T) {
		_, err := testRepo.Apply(ctx, hold)
		require.EqualError(t, err, domain.ErrCorrelationExists.Error())

		balance, err := testRepo.BalanceOf(ctx, account.ID)
		require.NoError(t, err)
		require.Equal(t, domain.Balance{Available: 600, Held: 400, Currency: currencypkg.KRW}, balance)
	})

	t.Run("ListByCorrelation", func(t *testing.T) {
		listed, err := testRepo.ListByCorrelation(ctx, corr)
		require.NoError(t, err)
		require.Equal(t, committed, listed)
	})
}

func TestApplyRollsBackOnOverdraw(t *testing.T) {
	ctx := context.Background()

	rich := createTestAccount(t, 1_000)
	poor := createTestAccount(t, 0)

	corr := randompkg.CorrelationID()
	group := []domain.Entry{
		{AccountID: rich.ID, Available: 500, Kind: domain.EntrySaleProceeds, CorrelationID: corr},
		{AccountID: poor.ID, Available: -500, Kind: domain.EntrySaleProceeds, CorrelationID: corr},
	}

	_, err := testRepo.Apply(ctx, group)
	require.EqualError(t, err, domain.ErrInsufficientFunds.Error())

	// Neither the entries nor the credit to the first account survive.
	balance, err := testRepo.BalanceOf(ctx, rich.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Balance{Available: 1_000, Held: 0, Currency: currencypkg.KRW}, balance)

	listed, err := testRepo.ListByCorrelation(ctx, corr)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestApplyValidation(t *testing.T) {
	ctx := context.Background()
	account := createTestAccount(t, 1_000)

	testCases := []struct {
		name    string
		entries []domain.Entry
		wantErr error
	}{
		{
			name:    "EmptyGroup",
			entries: nil,
			wantErr: domain.ErrEmptyEntryGroup,
		},
		{
			name: "MixedCorrelation",
			entries: []domain.Entry{
				{AccountID: account.ID, Available: 1, Kind: domain.EntrySaleProceeds, CorrelationID: randompkg.CorrelationID()},
				{AccountID: account.ID, Available: -1, Kind: domain.EntrySaleProceeds, CorrelationID: randompkg.CorrelationID()},
			},
			wantErr: domain.ErrMixedCorrelation,
		},
		{
			name: "UnknownAccount",
			entries: []domain.Entry{
				{AccountID: "ghost-" + randompkg.String(8), Available: 1, Kind: domain.EntrySaleProceeds, CorrelationID: randompkg.CorrelationID()},
			},
			wantErr: domain.ErrUnknownAccount,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			_, err := testRepo.Apply(ctx, tc.entries)
			require.EqualError(t, err, tc.wantErr.Error())
		})
	}
}
