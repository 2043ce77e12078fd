// Package ledgerrepo manages the persistence layer of the settlement ledger.
package ledgerrepo

import (
	"context"
	"database/sql"
	"sort"

	"github.com/lib/pq"
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/pkg/dbpkg"
	"github.com/payday-kr/settlement-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns a ledger RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// NewRepoPGS returns a ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createAccountQuery = `
INSERT INTO
    accounts (id, currency, available, held)
VALUES
    ($1, $2, $3, 0)
RETURNING id, currency, available, held, created_at
`

// CreateAccount creates an account. The opening available balance
// represents already-collected funds handed over by the payment layer.
func (r *RepoPGS) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createAccountQuery, account.ID, account.Currency, account.Available)

	var a domain.Account

	err := row.Scan(&a.ID, &a.Currency, &a.Available, &a.Held, &a.CreatedAt)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_pkey" {
				return a, domain.ErrAccountExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getAccountQuery = `
SELECT
	id, currency, available, held, created_at
FROM accounts
WHERE id = $1
`

// GetAccount returns the account with the given id.
func (r *RepoPGS) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getAccountQuery, id)

	var a domain.Account

	err := row.Scan(&a.ID, &a.Currency, &a.Available, &a.Held, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrUnknownAccount
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

// BalanceOf returns the committed balances of the account.
func (r *RepoPGS) BalanceOf(ctx context.Context, id string) (domain.Balance, error) {
	a, err := r.GetAccount(ctx, id)
	if err != nil {
		return domain.Balance{}, err
	}

	return domain.Balance{Available: a.Available, Held: a.Held, Currency: a.Currency}, nil
}

const createEntryQuery = `
INSERT INTO
    entries (account_id, available, held, kind, correlation_id)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, account_id, available, held, kind, correlation_id, created_at
`

func (r *RepoPGS) createEntry(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createEntryQuery,
		e.AccountID, e.Available, e.Held, e.Kind, e.CorrelationID)

	var out domain.Entry

	err := row.Scan(
		&out.ID,
		&out.AccountID,
		&out.Available,
		&out.Held,
		&out.Kind,
		&out.CorrelationID,
		&out.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "entries_account_id_fkey":
				return out, domain.ErrUnknownAccount
			case "entries_correlation_account_kind_key":
				return out, domain.ErrCorrelationExists
			}
		}

		return out, errorspkg.ErrInternal
	}

	return out, nil
}

const addBalanceQuery = `
UPDATE accounts
SET available = available + $1, held = held + $2
WHERE id = $3
RETURNING id
`

func (r *RepoPGS) addBalance(ctx context.Context, accountID string, available, held int64) error {
	l := zerolog.Ctx(ctx)

	var id string

	err := r.db.QueryRowContext(ctx, addBalanceQuery, available, held, accountID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrUnknownAccount
		}

		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_available_check", "accounts_held_check":
				return domain.ErrInsufficientFunds
			}
		}

		return errorspkg.ErrInternal
	}

	return nil
}

const correlationExistsQuery = `
SELECT EXISTS (SELECT 1 FROM entries WHERE correlation_id = $1)
`

// Apply commits all entries of one correlation group within a single
// database transaction: the entry rows and every affected account balance,
// or nothing.
//
// A correlation id that already committed fails with ErrCorrelationExists,
// so replayed settlements can return the original result instead of
// double-applying.
func (r *RepoPGS) Apply(ctx context.Context, entries []domain.Entry) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	if len(entries) == 0 {
		return nil, domain.ErrEmptyEntryGroup
	}

	corr := entries[0].CorrelationID
	for _, e := range entries {
		if e.CorrelationID != corr {
			return nil, domain.ErrMixedCorrelation
		}
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	txRepo := NewTxRepoPGS(tx)

	var exists bool
	if err := tx.QueryRowContext(ctx, correlationExistsQuery, corr).Scan(&exists); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if exists {
		return nil, domain.ErrCorrelationExists
	}

	committed := make([]domain.Entry, 0, len(entries))

	for _, e := range entries {
		created, err := txRepo.createEntry(ctx, e)
		if err != nil {
			return nil, err
		}

		committed = append(committed, created)
	}

	// Aggregate deltas per account and update in consistent id order to
	// avoid deadlocks between concurrent groups.
	type delta struct{ available, held int64 }

	deltas := make(map[string]*delta)
	for _, e := range entries {
		d, ok := deltas[e.AccountID]
		if !ok {
			d = &delta{}
			deltas[e.AccountID] = d
		}

		d.available += e.Available
		d.held += e.Held
	}

	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		if err := txRepo.addBalance(ctx, id, deltas[id].available, deltas[id].held); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "40001" {
			return nil, domain.ErrConflict
		}

		return nil, errorspkg.ErrInternal
	}

	return committed, nil
}

const listByCorrelationQuery = `
SELECT
	id, account_id, available, held, kind, correlation_id, created_at
FROM entries
WHERE correlation_id = $1
ORDER BY id
`

// ListByCorrelation returns all committed entries of one correlation group.
func (r *RepoPGS) ListByCorrelation(ctx context.Context, correlationID string) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByCorrelationQuery, correlationID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID,
			&e.AccountID,
			&e.Available,
			&e.Held,
			&e.Kind,
			&e.CorrelationID,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
