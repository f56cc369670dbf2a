package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/domain/errors/dberrors"
	kpgintr "github.com/evaltrack/evaltrack/pkg/domain/internal/db/postgres"
	rundb "github.com/evaltrack/evaltrack/pkg/domain/run/db"
)

// a struct for DB operations related to Run
type runPG struct { // implements db.RunInterface
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *runPG {
	return &runPG{pool: pool}
}

var _ rundb.RunInterface = &runPG{}

func (m *runPG) Register(
	ctx context.Context, userId string, param domain.RunParam,
) (*domain.Run, error) {
	hyperparameters, err := kpgintr.MarshalJSONB(param.Hyperparameters)
	if err != nil {
		return nil, err
	}

	// insert-select: the row lands only when the parent experiment
	// is owned by the caller. Check and insert are one atomic statement.
	r, err := kpgintr.ScanRun(m.pool.QueryRow(
		ctx,
		`
		insert into "runs" ("id", "experiment_id", "git_commit", "status", "hyperparameters")
		select $1, "e"."id", $4, $5, $6::jsonb
		from "experiments" as "e"
		where "e"."id" = $2 and "e"."user_id" = $3
		returning `+kpgintr.RunColumns+`
		`,
		domain.NewRunId(), param.ExperimentId, userId,
		param.GitCommit, string(domain.Pending), hyperparameters,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "experiments", Identity: param.ExperimentId}
		}
		return nil, kpgintr.AsDomainError(err)
	}
	return r, nil
}

func (m *runPG) Get(
	ctx context.Context, runId string, userId string,
) (*domain.RunWithResults, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	r, err := kpgintr.ScanRun(tx.QueryRow(
		ctx,
		`
		select `+runColumnsQualified+` from "runs" as "r"
		join "experiments" as "e" on "e"."id" = "r"."experiment_id"
		where "r"."id" = $1 and "e"."user_id" = $2
		`,
		runId, userId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "runs", Identity: runId}
		}
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`
		select `+kpgintr.TestResultColumns+` from "test_results"
		where "run_id" = $1
		`,
		runId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.TestResult{}
	for rows.Next() {
		tr, err := kpgintr.ScanTestResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.RunWithResults{Run: *r, TestResults: results}, nil
}

func (m *runPG) Update(
	ctx context.Context, runId string, userId string, delta domain.RunDelta,
) (*domain.Run, error) {
	var hyperparameters any
	if delta.Hyperparameters != nil {
		h, err := kpgintr.MarshalJSONB(*delta.Hyperparameters)
		if err != nil {
			return nil, err
		}
		hyperparameters = h
	}
	var status *string
	if delta.Status != nil {
		s := string(*delta.Status)
		status = &s
	}

	r, err := kpgintr.ScanRun(m.pool.QueryRow(
		ctx,
		`
		update "runs" set
			"status" = coalesce($3, "status"),
			"started_at" = coalesce($4, "started_at"),
			"finished_at" = coalesce($5, "finished_at"),
			"hyperparameters" = coalesce($6::jsonb, "hyperparameters")
		where "id" = $1 and "experiment_id" in (
			select "id" from "experiments" where "user_id" = $2
		)
		returning `+kpgintr.RunColumns+`
		`,
		runId, userId, status, delta.StartedAt, delta.FinishedAt, hyperparameters,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "runs", Identity: runId}
		}
		return nil, err
	}
	return r, nil
}

func (m *runPG) Delete(
	ctx context.Context, runId string, userId string,
) (*domain.Run, error) {
	// test results go down with the run via "on delete cascade".
	r, err := kpgintr.ScanRun(m.pool.QueryRow(
		ctx,
		`
		delete from "runs"
		where "id" = $1 and "experiment_id" in (
			select "id" from "experiments" where "user_id" = $2
		)
		returning `+kpgintr.RunColumns+`
		`,
		runId, userId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "runs", Identity: runId}
		}
		return nil, err
	}
	return r, nil
}

// RunColumns with each column qualified by the "r" alias.
const runColumnsQualified = `"r"."id", "r"."experiment_id", "r"."git_commit", "r"."status", "r"."hyperparameters", "r"."started_at", "r"."finished_at", "r"."created_at"`
