package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/domain/errors/dberrors"
	expdb "github.com/evaltrack/evaltrack/pkg/domain/experiment/db"
	kpgintr "github.com/evaltrack/evaltrack/pkg/domain/internal/db/postgres"
)

// a struct for DB operations related to Experiment
type experimentPG struct { // implements db.ExperimentInterface
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *experimentPG {
	return &experimentPG{pool: pool}
}

var _ expdb.ExperimentInterface = &experimentPG{}

func (m *experimentPG) Register(
	ctx context.Context, userId string, param domain.ExperimentParam,
) (*domain.Experiment, error) {
	config, err := kpgintr.MarshalJSONB(param.Config)
	if err != nil {
		return nil, err
	}

	e, err := kpgintr.ScanExperiment(m.pool.QueryRow(
		ctx,
		`
		insert into "experiments" ("id", "name", "description", "user_id", "config")
		values ($1, $2, $3, $4, $5)
		returning `+kpgintr.ExperimentColumns+`
		`,
		domain.NewExperimentId(), param.Name, param.Description, userId, config,
	))
	if err != nil {
		return nil, kpgintr.AsDomainError(err)
	}
	return e, nil
}

func (m *experimentPG) Find(
	ctx context.Context, userId string, skip int, limit int,
) ([]domain.Experiment, error) {
	rows, err := m.pool.Query(
		ctx,
		`
		select `+kpgintr.ExperimentColumns+` from "experiments"
		where "user_id" = $1
		order by "created_at"
		offset $2 limit $3
		`,
		userId, skip, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := []domain.Experiment{}
	for rows.Next() {
		e, err := kpgintr.ScanExperiment(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, *e)
	}
	return found, rows.Err()
}

func (m *experimentPG) Get(
	ctx context.Context, experimentId string, userId string,
) (*domain.ExperimentWithRuns, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	e, err := kpgintr.ScanExperiment(tx.QueryRow(
		ctx,
		`
		select `+kpgintr.ExperimentColumns+` from "experiments"
		where "id" = $1 and "user_id" = $2
		`,
		experimentId, userId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "experiments", Identity: experimentId}
		}
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`
		select `+kpgintr.RunColumns+` from "runs"
		where "experiment_id" = $1
		`,
		experimentId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []domain.Run{}
	for rows.Next() {
		r, err := kpgintr.ScanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.ExperimentWithRuns{Experiment: *e, Runs: runs}, nil
}

func (m *experimentPG) Update(
	ctx context.Context, experimentId string, userId string, delta domain.ExperimentDelta,
) (*domain.Experiment, error) {
	var config any
	if delta.Config != nil {
		c, err := kpgintr.MarshalJSONB(*delta.Config)
		if err != nil {
			return nil, err
		}
		config = c
	}

	e, err := kpgintr.ScanExperiment(m.pool.QueryRow(
		ctx,
		`
		update "experiments" set
			"name" = coalesce($3, "name"),
			"description" = coalesce($4, "description"),
			"config" = coalesce($5::jsonb, "config"),
			"updated_at" = now()
		where "id" = $1 and "user_id" = $2
		returning `+kpgintr.ExperimentColumns+`
		`,
		experimentId, userId, delta.Name, delta.Description, config,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "experiments", Identity: experimentId}
		}
		return nil, err
	}
	return e, nil
}

func (m *experimentPG) Delete(
	ctx context.Context, experimentId string, userId string,
) (*domain.Experiment, error) {
	// runs and their test results go down with the experiment
	// via "on delete cascade", all in this one statement.
	e, err := kpgintr.ScanExperiment(m.pool.QueryRow(
		ctx,
		`
		delete from "experiments"
		where "id" = $1 and "user_id" = $2
		returning `+kpgintr.ExperimentColumns+`
		`,
		experimentId, userId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "experiments", Identity: experimentId}
		}
		return nil, err
	}
	return e, nil
}
