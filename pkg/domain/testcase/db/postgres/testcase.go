package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/domain/errors/dberrors"
	kpgintr "github.com/evaltrack/evaltrack/pkg/domain/internal/db/postgres"
	tcdb "github.com/evaltrack/evaltrack/pkg/domain/testcase/db"
)

// a struct for DB operations related to TestCase
type testCasePG struct { // implements db.TestCaseInterface
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *testCasePG {
	return &testCasePG{pool: pool}
}

var _ tcdb.TestCaseInterface = &testCasePG{}

func (m *testCasePG) Register(
	ctx context.Context, userId string, param domain.TestCaseParam,
) (*domain.TestCase, error) {
	input, err := kpgintr.MarshalJSONB(param.Input)
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
	additionalMetadata, err := kpgintr.MarshalJSONB(param.AdditionalMetadata)
	if err != nil {
		return nil, err
	}

	tc, err := kpgintr.ScanTestCase(m.pool.QueryRow(
		ctx,
		`
		insert into "test_cases" (
			"id", "name", "type", "input", "expected_output",
			"context", "retrieval_context", "additional_metadata",
			"user_id", "is_global"
		)
		values ($1, $2, $3, $4::jsonb, $5, $6::jsonb, $7::jsonb, $8::jsonb, $9, $10)
		returning `+kpgintr.TestCaseColumns+`
		`,
		domain.NewTestCaseId(), param.Name, string(param.Type),
		input, param.ExpectedOutput,
		context_, retrievalContext, additionalMetadata,
		userId, param.IsGlobal,
	))
	if err != nil {
		return nil, kpgintr.AsDomainError(err)
	}
	return tc, nil
}

func (m *testCasePG) Find(ctx context.Context, userId string) ([]domain.TestCase, error) {
	return m.find(
		ctx,
		`select `+kpgintr.TestCaseColumns+` from "test_cases" where "user_id" = $1 order by "created_at"`,
		userId,
	)
}

func (m *testCasePG) FindGlobal(ctx context.Context) ([]domain.TestCase, error) {
	return m.find(
		ctx,
		`select `+kpgintr.TestCaseColumns+` from "test_cases" where "is_global" order by "created_at"`,
	)
}

func (m *testCasePG) FindByType(
	ctx context.Context, userId string, typ domain.TestCaseType,
) ([]domain.TestCase, error) {
	return m.find(
		ctx,
		`select `+kpgintr.TestCaseColumns+` from "test_cases" where "user_id" = $1 and "type" = $2 order by "created_at"`,
		userId, string(typ),
	)
}

func (m *testCasePG) find(
	ctx context.Context, query string, args ...any,
) ([]domain.TestCase, error) {
	rows, err := m.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testCases := []domain.TestCase{}
	for rows.Next() {
		tc, err := kpgintr.ScanTestCase(rows)
		if err != nil {
			return nil, err
		}
		testCases = append(testCases, *tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return testCases, nil
}

func (m *testCasePG) Get(
	ctx context.Context, testCaseId string, userId string,
) (*domain.TestCase, error) {
	tc, err := kpgintr.ScanTestCase(m.pool.QueryRow(
		ctx,
		`
		select `+kpgintr.TestCaseColumns+` from "test_cases"
		where "id" = $1 and ("user_id" = $2 or "is_global")
		`,
		testCaseId, userId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "test_cases", Identity: testCaseId}
		}
		return nil, err
	}
	return tc, nil
}

func (m *testCasePG) Update(
	ctx context.Context, testCaseId string, userId string, delta domain.TestCaseDelta,
) (*domain.TestCase, error) {
	var input, context_, retrievalContext, additionalMetadata any
	if delta.Input != nil {
		v, err := kpgintr.MarshalJSONB(*delta.Input)
		if err != nil {
			return nil, err
		}
		input = v
	}
	if delta.Context != nil {
		v, err := kpgintr.MarshalJSONB(*delta.Context)
		if err != nil {
			return nil, err
		}
		context_ = v
	}
	if delta.RetrievalContext != nil {
		v, err := kpgintr.MarshalJSONB(*delta.RetrievalContext)
		if err != nil {
			return nil, err
		}
		retrievalContext = v
	}
	if delta.AdditionalMetadata != nil {
		v, err := kpgintr.MarshalJSONB(*delta.AdditionalMetadata)
		if err != nil {
			return nil, err
		}
		additionalMetadata = v
	}
	var typ *string
	if delta.Type != nil {
		t := string(*delta.Type)
		typ = &t
	}

	tc, err := kpgintr.ScanTestCase(m.pool.QueryRow(
		ctx,
		`
		update "test_cases" set
			"name" = coalesce($3, "name"),
			"type" = coalesce($4, "type"),
			"input" = coalesce($5::jsonb, "input"),
			"expected_output" = coalesce($6, "expected_output"),
			"context" = coalesce($7::jsonb, "context"),
			"retrieval_context" = coalesce($8::jsonb, "retrieval_context"),
			"additional_metadata" = coalesce($9::jsonb, "additional_metadata"),
			"is_global" = coalesce($10, "is_global"),
			"updated_at" = now()
		where "id" = $1 and "user_id" = $2
		returning `+kpgintr.TestCaseColumns+`
		`,
		testCaseId, userId,
		delta.Name, typ, input, delta.ExpectedOutput,
		context_, retrievalContext, additionalMetadata, delta.IsGlobal,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "test_cases", Identity: testCaseId}
		}
		return nil, err
	}
	return tc, nil
}

func (m *testCasePG) Delete(
	ctx context.Context, testCaseId string, userId string,
) (*domain.TestCase, error) {
	// no FK from test_results, so past results keep their stored id.
	tc, err := kpgintr.ScanTestCase(m.pool.QueryRow(
		ctx,
		`
		delete from "test_cases" where "id" = $1 and "user_id" = $2
		returning `+kpgintr.TestCaseColumns+`
		`,
		testCaseId, userId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "test_cases", Identity: testCaseId}
		}
		return nil, err
	}
	return tc, nil
}
