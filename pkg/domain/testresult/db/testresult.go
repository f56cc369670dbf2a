package db

import (
	"context"

	"github.com/evaltrack/evaltrack/pkg/domain"
)

type TestResultInterface interface {
	// register a new TestResult under the Run named in param.
	//
	// The Run must be transitively owned by userId (through its
	// Experiment); the check and the insert happen in one transaction.
	// Returns ErrMissing when the Run is not found/owned.
	Register(ctx context.Context, userId string, param domain.TestResultParam) (*domain.TestResult, error)

	// register many TestResults at once, all-or-nothing.
	//
	// All distinct Run ids referenced by params are authorized in one
	// pass. When any of them is not found/owned, nothing is written and
	// the error is dberrors.MissingRuns naming exactly the offending ids.
	RegisterBatch(ctx context.Context, userId string, params []domain.TestResultParam) ([]domain.TestResult, error)

	// get one TestResult.
	//
	// Returns ErrMissing when its Run's Experiment is not owned by userId.
	Get(ctx context.Context, testResultId string, userId string) (*domain.TestResult, error)
}
