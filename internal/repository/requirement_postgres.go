package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/pkg/db/transactor"
)

const requirementColumns = `id, name, mobile, alt_mobile, email, budget, flat_size, current_location, preferred_location,
	direction, floor_preference, looking_for, requirement, created_at, status`

// uniqueViolationCode is postgres unique_violation SQLSTATE
const uniqueViolationCode = "23505"

type postgresRequirementRepository struct {
	trx transactor.PgxWithinTransactionExecutor
}

// NewPostgresRequirementRepository builds RequirementRepository on top of requirements table
func NewPostgresRequirementRepository(trx transactor.PgxWithinTransactionExecutor) RequirementRepository {
	return &postgresRequirementRepository{trx: trx}
}

func (r *postgresRequirementRepository) FindAll(ctx context.Context) ([]*model.Requirement, error) {
	requirements := make([]*model.Requirement, 0)
	q := "SELECT " + requirementColumns + " FROM requirements ORDER BY created_at DESC, seq DESC"

	rows, err := r.trx.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		req, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requirements, nil
}

func (r *postgresRequirementRepository) FindByID(ctx context.Context, id string) (*model.Requirement, error) {
	q := "SELECT " + requirementColumns + " FROM requirements WHERE id = $1"
	row := r.trx.Executor(ctx).QueryRow(ctx, q, id)

	req, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

func (r *postgresRequirementRepository) Create(ctx context.Context, req *model.Requirement) error {
	q := `INSERT INTO requirements(` + requirementColumns + `)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.trx.Executor(ctx).Exec(
		ctx,
		q,
		req.ID,
		req.Name,
		req.Mobile,
		req.AltMobile,
		req.Email,
		req.Budget,
		req.FlatSize,
		req.CurrentLocation,
		req.PreferredLocation,
		string(req.Direction),
		req.FloorPreference,
		string(req.LookingFor),
		req.Requirement,
		req.CreatedAt,
		string(req.Status),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateRequirement
		}
		return err
	}
	return nil
}

func (r *postgresRequirementRepository) UpdateStatus(ctx context.Context, id string, from, to model.Status) (bool, error) {
	q := "UPDATE requirements SET status = $1 WHERE id = $2 AND status = $3"
	comm, err := r.trx.Executor(ctx).Exec(ctx, q, string(to), id, string(from))
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresRequirementRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	q := "DELETE FROM requirements WHERE id = $1"
	comm, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresRequirementRepository) scanRow(row pgx.Row) (*model.Requirement, error) {
	var req model.Requirement
	var direction, lookingFor, status string

	err := row.Scan(
		&req.ID,
		&req.Name,
		&req.Mobile,
		&req.AltMobile,
		&req.Email,
		&req.Budget,
		&req.FlatSize,
		&req.CurrentLocation,
		&req.PreferredLocation,
		&direction,
		&req.FloorPreference,
		&lookingFor,
		&req.Requirement,
		&req.CreatedAt,
		&status,
	)
	if err != nil {
		return nil, err
	}

	req.Direction = model.Direction(direction)
	req.LookingFor = model.LookingFor(lookingFor)
	req.Status = model.Status(status)
	req.CreatedAt = req.CreatedAt.UTC()
	return &req, nil
}
