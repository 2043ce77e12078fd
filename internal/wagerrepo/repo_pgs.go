// Package wagerrepo manages the persistence layer of wagers and their entrants.
package wagerrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/pkg/dbpkg"
	"github.com/payday-kr/settlement-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates wager repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns a wager RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const wagerColumns = `
id, category, stake, max_participants, participants, pool_rule, top_percent, state, correlation_id, created_at
`

const createQuery = `
INSERT INTO
    wagers (id, category, stake, max_participants, pool_rule, top_percent, state)
VALUES
    ($1, $2, $3, $4, $5, $6, 'OPEN')
RETURNING ` + wagerColumns

// Create creates the wager in state OPEN and then returns it.
func (r *RepoPGS) Create(ctx context.Context, w domain.Wager) (domain.Wager, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		w.ID, w.Category, w.Stake, w.MaxParticipants, w.PoolRule, w.TopPercent)

	out, err := scanWager(row)
	if err != nil {
		l.Error().Err(err).Send()
		return out, errorspkg.ErrInternal
	}

	return out, nil
}

const getQuery = `
SELECT ` + wagerColumns + `
FROM wagers
WHERE id = $1
`

// Get returns the wager with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Wager, error) {
	l := zerolog.Ctx(ctx)

	out, err := scanWager(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return out, domain.ErrWagerNotFound
		}

		l.Error().Err(err).Send()

		return out, errorspkg.ErrInternal
	}

	return out, nil
}

const listParticipantsQuery = `
SELECT account_id
FROM wager_participants
WHERE wager_id = $1
ORDER BY created_at, account_id
`

// Participants returns the account ids entered into the wager, in entry order.
func (r *RepoPGS) Participants(ctx context.Context, id string) ([]string, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listParticipantsQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []string{}

	for rows.Next() {
		var accountID string
		if err := rows.Scan(&accountID); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, accountID)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const insertParticipantQuery = `
INSERT INTO
    wager_participants (wager_id, account_id, correlation_id)
VALUES
    ($1, $2, $3)
`

const participantCorrelationQuery = `
SELECT correlation_id
FROM wager_participants
WHERE wager_id = $1 AND account_id = $2
`

const claimSeatQuery = `
UPDATE wagers
SET participants = participants + 1
WHERE id = $1 AND state = 'OPEN' AND participants < max_participants
RETURNING id
`

// AddParticipant registers an entrant while the wager is OPEN and under
// capacity, recording the correlation id of the entry's stake hold. The
// seat counter update and the participant row commit in one transaction,
// so concurrent entries cannot oversubscribe the wager. On a duplicate
// entrant the stored correlation id is returned alongside
// ErrDuplicateEntry.
func (r *RepoPGS) AddParticipant(ctx context.Context, id, accountID, correlationID string) (string, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return "", errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	var claimed string

	err = tx.QueryRowContext(ctx, claimSeatQuery, id).Scan(&claimed)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", r.seatError(ctx, id)
		}

		l.Error().Err(err).Send()

		return "", errorspkg.ErrInternal
	}

	if _, err := tx.ExecContext(ctx, insertParticipantQuery, id, accountID, correlationID); err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "wager_participants_pkey":
				return r.participantCorrelation(ctx, id, accountID)
			case "wager_participants_account_id_fkey":
				return "", domain.ErrUnknownAccount
			}
		}

		return "", errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return "", errorspkg.ErrInternal
	}

	return correlationID, nil
}

func (r *RepoPGS) participantCorrelation(ctx context.Context, id, accountID string) (string, error) {
	l := zerolog.Ctx(ctx)

	var stored string
	if err := r.db.QueryRowContext(ctx, participantCorrelationQuery, id, accountID).Scan(&stored); err != nil {
		l.Error().Err(err).Send()
		return "", errorspkg.ErrInternal
	}

	return stored, domain.ErrDuplicateEntry
}

func (r *RepoPGS) seatError(ctx context.Context, id string) error {
	w, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if w.State != domain.WagerOpen {
		return domain.ErrWagerClosed
	}

	return domain.ErrWagerFull
}

const removeParticipantQuery = `
DELETE FROM wager_participants
WHERE wager_id = $1 AND account_id = $2
`

const releaseSeatQuery = `
UPDATE wagers
SET participants = participants - 1
WHERE id = $1
`

// RemoveParticipant withdraws an entrant whose stake hold failed to apply.
func (r *RepoPGS) RemoveParticipant(ctx context.Context, id, accountID string) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	res, err := tx.ExecContext(ctx, removeParticipantQuery, id, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return domain.ErrUnknownAccount
	}

	if _, err := tx.ExecContext(ctx, releaseSeatQuery, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const setStateQuery = `
UPDATE wagers
SET state = $3, correlation_id = COALESCE(NULLIF($4, ''), correlation_id)
WHERE id = $1 AND state = $2
RETURNING ` + wagerColumns

// SetState transitions the wager from one state to another exactly once,
// recording the settlement correlation id when one applies.
func (r *RepoPGS) SetState(ctx context.Context, id string, from, to domain.WagerState, correlationID string) (domain.Wager, error) {
	l := zerolog.Ctx(ctx)

	out, err := scanWager(r.db.QueryRowContext(ctx, setStateQuery, id, from, to, correlationID))
	if err != nil {
		if err == sql.ErrNoRows {
			current, getErr := r.Get(ctx, id)
			if getErr != nil {
				return out, getErr
			}

			return out, stateError(current.State, to)
		}

		l.Error().Err(err).Send()

		return out, errorspkg.ErrInternal
	}

	return out, nil
}

func stateError(current, requested domain.WagerState) error {
	switch requested {
	case domain.WagerSettled:
		if current == domain.WagerSettled {
			return domain.ErrAlreadySettled
		}

		return domain.ErrNotLocked
	case domain.WagerVoid:
		return domain.ErrCannotVoid
	default:
		return domain.ErrWagerClosed
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWager(row rowScanner) (domain.Wager, error) {
	var (
		w    domain.Wager
		corr sql.NullString
	)

	err := row.Scan(
		&w.ID,
		&w.Category,
		&w.Stake,
		&w.MaxParticipants,
		&w.Participants,
		&w.PoolRule,
		&w.TopPercent,
		&w.State,
		&corr,
		&w.CreatedAt,
	)
	if err != nil {
		return w, err
	}

	if corr.Valid {
		w.CorrelationID = corr.String
	}

	return w, nil
}
