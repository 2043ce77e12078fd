// Package commitmentrepo manages the persistence layer of staked commitments.
package commitmentrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/payday-kr/settlement-core/internal/domain"
	"github.com/payday-kr/settlement-core/pkg/dbpkg"
	"github.com/payday-kr/settlement-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates commitment repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns a commitment RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const commitmentColumns = `
id, owner_id, amount, criteria_ref, state, outcome,
hold_correlation_id, release_correlation_id, payout, created_at, resolved_at
`

const createQuery = `
INSERT INTO
    commitments (id, owner_id, amount, criteria_ref, state, hold_correlation_id)
VALUES
    ($1, $2, $3, $4, 'HELD', $5)
RETURNING ` + commitmentColumns

// Create creates the commitment in state HELD and then returns it.
func (r *RepoPGS) Create(ctx context.Context, c domain.Commitment) (domain.Commitment, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		c.ID, c.Owner, c.Amount, c.CriteriaRef, c.HoldCorrelationID)

	out, err := scanCommitment(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "commitments_owner_id_fkey":
				return out, domain.ErrUnknownAccount
			case "commitments_hold_correlation_id_key":
				return out, domain.ErrCorrelationExists
			}
		}

		return out, errorspkg.ErrInternal
	}

	return out, nil
}

const getQuery = `
SELECT ` + commitmentColumns + `
FROM commitments
WHERE id = $1
`

// Get returns the commitment with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Commitment, error) {
	return r.get(ctx, getQuery, id)
}

const getByHoldQuery = `
SELECT ` + commitmentColumns + `
FROM commitments
WHERE hold_correlation_id = $1
`

// GetByHoldCorrelation returns the commitment created under the given
// stake correlation id.
func (r *RepoPGS) GetByHoldCorrelation(ctx context.Context, correlationID string) (domain.Commitment, error) {
	return r.get(ctx, getByHoldQuery, correlationID)
}

func (r *RepoPGS) get(ctx context.Context, query, arg string) (domain.Commitment, error) {
	l := zerolog.Ctx(ctx)

	out, err := scanCommitment(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return out, domain.ErrCommitmentNotFound
		}

		l.Error().Err(err).Send()

		return out, errorspkg.ErrInternal
	}

	return out, nil
}

const setOutcomeQuery = `
UPDATE commitments
SET state = $2, outcome = $3, resolved_at = now()
WHERE id = $1 AND state = 'HELD'
RETURNING ` + commitmentColumns

// SetOutcome transitions HELD to SUCCEEDED or FAILED exactly once. The
// state guard in the update makes a second resolve fail regardless of
// concurrent callers.
func (r *RepoPGS) SetOutcome(ctx context.Context, id string, state domain.CommitmentState, outcome domain.Outcome) (domain.Commitment, error) {
	l := zerolog.Ctx(ctx)

	out, err := scanCommitment(r.db.QueryRowContext(ctx, setOutcomeQuery, id, state, outcome))
	if err != nil {
		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, id); getErr != nil {
				return out, getErr
			}

			return out, domain.ErrAlreadyResolved
		}

		l.Error().Err(err).Send()

		return out, errorspkg.ErrInternal
	}

	return out, nil
}

const setReleasedQuery = `
UPDATE commitments
SET state = 'RELEASED', release_correlation_id = $2, payout = $3
WHERE id = $1 AND state IN ('SUCCEEDED', 'FAILED')
RETURNING ` + commitmentColumns

// SetReleased transitions a resolved commitment to RELEASED, recording the
// release correlation id and payout for replay reconstruction.
func (r *RepoPGS) SetReleased(ctx context.Context, id, correlationID string, payout int64) (domain.Commitment, error) {
	l := zerolog.Ctx(ctx)

	out, err := scanCommitment(r.db.QueryRowContext(ctx, setReleasedQuery, id, correlationID, payout))
	if err != nil {
		if err == sql.ErrNoRows {
			current, getErr := r.Get(ctx, id)
			if getErr != nil {
				return out, getErr
			}

			if current.State == domain.CommitmentReleased {
				return out, domain.ErrAlreadyReleased
			}

			return out, domain.ErrNotResolved
		}

		l.Error().Err(err).Send()

		return out, errorspkg.ErrInternal
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCommitment(row rowScanner) (domain.Commitment, error) {
	var (
		c          domain.Commitment
		outcome    sql.NullString
		releaseCor sql.NullString
		resolvedAt sql.NullTime
	)

	err := row.Scan(
		&c.ID,
		&c.Owner,
		&c.Amount,
		&c.CriteriaRef,
		&c.State,
		&outcome,
		&c.HoldCorrelationID,
		&releaseCor,
		&c.Payout,
		&c.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		return c, err
	}

	if outcome.Valid {
		c.Outcome = domain.Outcome(outcome.String)
	}

	if releaseCor.Valid {
		c.ReleaseCorrelationID = releaseCor.String
	}

	if resolvedAt.Valid {
		t := resolvedAt.Time
		c.ResolvedAt = &t
	}

	return c, nil
}
