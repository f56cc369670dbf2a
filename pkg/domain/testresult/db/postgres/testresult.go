package postgres

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/domain/errors/dberrors"
	kpgintr "github.com/evaltrack/evaltrack/pkg/domain/internal/db/postgres"
	trdb "github.com/evaltrack/evaltrack/pkg/domain/testresult/db"
)

// a struct for DB operations related to TestResult
type testResultPG struct { // implements db.TestResultInterface
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *testResultPG {
	return &testResultPG{pool: pool}
}

var _ trdb.TestResultInterface = &testResultPG{}

func (m *testResultPG) Register(
	ctx context.Context, userId string, param domain.TestResultParam,
) (*domain.TestResult, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tr, err := m.insert(ctx, tx, userId, param)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return tr, nil
}

func (m *testResultPG) RegisterBatch(
	ctx context.Context, userId string, params []domain.TestResultParam,
) ([]domain.TestResult, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// authorize every distinct run id up front, so a partial batch
	// never lands and the caller learns which ids were at fault.
	wantRuns := map[string]struct{}{}
	for _, p := range params {
		wantRuns[p.RunId] = struct{}{}
	}
	runIds := make([]string, 0, len(wantRuns))
	for id := range wantRuns {
		runIds = append(runIds, id)
	}

	rows, err := tx.Query(
		ctx,
		`
		select "r"."id" from "runs" as "r"
		join "experiments" as "e" on "e"."id" = "r"."experiment_id"
		where "r"."id" = any($1) and "e"."user_id" = $2
		`,
		runIds, userId,
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		delete(wantRuns, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if 0 < len(wantRuns) {
		missing := make([]string, 0, len(wantRuns))
		for id := range wantRuns {
			missing = append(missing, id)
		}
		sort.Strings(missing)
		return nil, dberrors.MissingRuns{RunIds: missing}
	}

	registered := make([]domain.TestResult, 0, len(params))
	for _, p := range params {
		tr, err := m.insert(ctx, tx, userId, p)
		if err != nil {
			return nil, err
		}
		registered = append(registered, *tr)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return registered, nil
}

func (m *testResultPG) insert(
	ctx context.Context, tx pgx.Tx, userId string, param domain.TestResultParam,
) (*domain.TestResult, error) {
	input, err := kpgintr.MarshalJSONB(param.Input)
	if err != nil {
		return nil, err
	}
	actualOutput, err := kpgintr.MarshalJSONB(param.ActualOutput)
	if err != nil {
		return nil, err
	}
	context_, err := kpgintr.MarshalJSONB(param.Context)
	if err != nil {
		return nil, err
	}
	retrievalContext, err := kpgintr.MarshalJSONB(param.RetrievalContext)
	if err != nil {
		return nil, err
	}
	metricsData, err := kpgintr.MarshalJSONB(param.MetricsData)
	if err != nil {
		return nil, err
	}
	additionalMetadata, err := kpgintr.MarshalJSONB(param.AdditionalMetadata)
	if err != nil {
		return nil, err
	}

	tr, err := kpgintr.ScanTestResult(tx.QueryRow(
		ctx,
		`
		insert into "test_results" (
			"id", "run_id", "test_case_id", "name",
			"success", "conversational", "multimodal",
			"input", "actual_output", "expected_output",
			"context", "retrieval_context", "metrics_data", "additional_metadata"
		)
		select
			$1, "r"."id", $4, $5, $6, $7, $8,
			$9::jsonb, $10::jsonb, $11,
			$12::jsonb, $13::jsonb, $14::jsonb, $15::jsonb
		from "runs" as "r"
		join "experiments" as "e" on "e"."id" = "r"."experiment_id"
		where "r"."id" = $2 and "e"."user_id" = $3
		returning `+kpgintr.TestResultColumns+`
		`,
		domain.NewTestResultId(), param.RunId, userId,
		param.TestCaseId, param.Name,
		param.Success, param.Conversational, param.Multimodal,
		input, actualOutput, param.ExpectedOutput,
		context_, retrievalContext, metricsData, additionalMetadata,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "runs", Identity: param.RunId}
		}
		return nil, kpgintr.AsDomainError(err)
	}
	return tr, nil
}

func (m *testResultPG) Get(
	ctx context.Context, testResultId string, userId string,
) (*domain.TestResult, error) {
	tr, err := kpgintr.ScanTestResult(m.pool.QueryRow(
		ctx,
		`
		select `+testResultColumnsQualified+` from "test_results" as "t"
		join "runs" as "r" on "r"."id" = "t"."run_id"
		join "experiments" as "e" on "e"."id" = "r"."experiment_id"
		where "t"."id" = $1 and "e"."user_id" = $2
		`,
		testResultId, userId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "test_results", Identity: testResultId}
		}
		return nil, err
	}
	return tr, nil
}

// TestResultColumns with each column qualified by the "t" alias.
const testResultColumnsQualified = `"t"."id", "t"."run_id", "t"."test_case_id", "t"."name", "t"."success", "t"."conversational", "t"."multimodal", "t"."input", "t"."actual_output", "t"."expected_output", "t"."context", "t"."retrieval_context", "t"."metrics_data", "t"."additional_metadata", "t"."executed_at"`
