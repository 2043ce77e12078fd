package wagerrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/internal/ledgerrepo"
	"github.com/payday-kr/settlement-core/pkg/configpkg"
	"github.com/payday-kr/settlement-core/pkg/currencypkg"
	"github.com/payday-kr/settlement-core/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

var (
	testRepo       *RepoPGS
	testLedgerRepo *ledgerrepo.RepoPGS
)

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
	testLedgerRepo = ledgerrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createTestAccount(t *testing.T) string {
	t.Helper()

	account, err := testLedgerRepo.CreateAccount(context.Background(), domain.Account{
		ID:        randompkg.AccountID(),
		Currency:  currencypkg.KRW,
		Available: randompkg.AmountBetween(1_000, 10_000),
	})
	require.NoError(t, err)

	return account.ID
}

func createTestWager(t *testing.T, maxParticipants int32) domain.Wager {
	t.Helper()

	w := domain.Wager{
		ID:              uuid.NewString(),
		Category:        domain.CategoryWager,
		Stake:           randompkg.AmountBetween(130, 1_300),
		MaxParticipants: maxParticipants,
		PoolRule:        domain.HeadToHead,
	}

	created, err := testRepo.Create(context.Background(), w)
	require.NoError(t, err)
	require.NotEmpty(t, created)

	require.Equal(t, w.ID, created.ID)
	require.Equal(t, w.Stake, created.Stake)
	require.Equal(t, domain.WagerOpen, created.State)
	require.Zero(t, created.Participants)
	require.Empty(t, created.CorrelationID)
	require.NotZero(t, created.CreatedAt)

	return created
}

func TestCreate(t *testing.T) {
	createTestWager(t, 2)
}

func TestGet(t *testing.T) {
	want := createTestWager(t, 2)

	got, err := testRepo.Get(context.Background(), want.ID)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = testRepo.Get(context.Background(), uuid.NewString())
	require.EqualError(t, err, domain.ErrWagerNotFound.Error())
}

func TestAddParticipant(t *testing.T) {
	ctx := context.Background()

	w := createTestWager(t, 2)
	a := createTestAccount(t)
	b := createTestAccount(t)
	corrA := randompkg.CorrelationID()

	_, err := testRepo.AddParticipant(ctx, w.ID, a, corrA)
	require.NoError(t, err)

	t.Run("DuplicateEntrant", func(t *testing.T) {
		stored, err := testRepo.AddParticipant(ctx, w.ID, a, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrDuplicateEntry.Error())
		require.Equal(t, corrA, stored)

		// The claimed seat rolled back with the insert.
		got, err := testRepo.Get(ctx, w.ID)
		require.NoError(t, err)
		require.Equal(t, int32(1), got.Participants)
	})

	_, err = testRepo.AddParticipant(ctx, w.ID, b, randompkg.CorrelationID())
	require.NoError(t, err)

	t.Run("FullWager", func(t *testing.T) {
		late := createTestAccount(t)
		_, err := testRepo.AddParticipant(ctx, w.ID, late, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrWagerFull.Error())
	})

	t.Run("Participants", func(t *testing.T) {
		got, err := testRepo.Participants(ctx, w.ID)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{a, b}, got)
	})

	t.Run("ClosedWager", func(t *testing.T) {
		locked := createTestWager(t, 2)

		_, err := testRepo.SetState(ctx, locked.ID, domain.WagerOpen, domain.WagerLocked, "")
		require.NoError(t, err)

		_, err = testRepo.AddParticipant(ctx, locked.ID, a, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrWagerClosed.Error())
	})

	t.Run("UnknownWager", func(t *testing.T) {
		_, err := testRepo.AddParticipant(ctx, uuid.NewString(), a, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrWagerNotFound.Error())
	})
}

func TestRemoveParticipant(t *testing.T) {
	ctx := context.Background()

	w := createTestWager(t, 2)
	a := createTestAccount(t)

	_, err := testRepo.AddParticipant(ctx, w.ID, a, randompkg.CorrelationID())
	require.NoError(t, err)
	require.NoError(t, testRepo.RemoveParticipant(ctx, w.ID, a))

	got, err := testRepo.Get(ctx, w.ID)
	require.NoError(t, err)
	require.Zero(t, got.Participants)

	err = testRepo.RemoveParticipant(ctx, w.ID, a)
	require.EqualError(t, err, domain.ErrUnknownAccount.Error())
}

func TestSetState(t *testing.T) {
	ctx := context.Background()

	w := createTestWager(t, 2)
	corr := randompkg.CorrelationID()

	locked, err := testRepo.SetState(ctx, w.ID, domain.WagerOpen, domain.WagerLocked, "")
	require.NoError(t, err)
	require.Equal(t, domain.WagerLocked, locked.State)
	require.Empty(t, locked.CorrelationID)

	settled, err := testRepo.SetState(ctx, w.ID, domain.WagerLocked, domain.WagerSettled, corr)
	require.NoError(t, err)
	require.Equal(t, domain.WagerSettled, settled.State)
	require.Equal(t, corr, settled.CorrelationID)

	t.Run("SecondSettle", func(t *testing.T) {
		_, err := testRepo.SetState(ctx, w.ID, domain.WagerLocked, domain.WagerSettled, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrAlreadySettled.Error())
	})

	t.Run("VoidAfterSettle", func(t *testing.T) {
		_, err := testRepo.SetState(ctx, w.ID, domain.WagerOpen, domain.WagerVoid, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrCannotVoid.Error())
	})

	t.Run("SettleUnlocked", func(t *testing.T) {
		open := createTestWager(t, 2)

		_, err := testRepo.SetState(ctx, open.ID, domain.WagerLocked, domain.WagerSettled, randompkg.CorrelationID())
		require.EqualError(t, err, domain.ErrNotLocked.Error())
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := testRepo.SetState(ctx, uuid.NewString(), domain.WagerOpen, domain.WagerLocked, "")
		require.EqualError(t, err, domain.ErrWagerNotFound.Error())
	})
}
