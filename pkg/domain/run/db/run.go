package db

import (
	"context"

	"github.com/evaltrack/evaltrack/pkg/domain"
)

type RunInterface interface {
	// register a new Run under the Experiment named in param.
	//
	// The parent Experiment must be owned by userId; the ownership check
	// and the insert happen in one transaction. Returns ErrMissing when
	// the Experiment is not found/owned, and nothing is written.
	Register(ctx context.Context, userId string, param domain.RunParam) (*domain.Run, error)

	// get one Run with its TestResults.
	//
	// Returns ErrMissing when the Run's parent Experiment is not owned
	// by userId, whether or not the Run exists.
	Get(ctx context.Context, runId string, userId string) (*domain.RunWithResults, error)

	// apply a sparse update. nil fields of delta are kept as they are.
	//
	// Returns ErrMissing when the Run is not found/owned.
	Update(ctx context.Context, runId string, userId string, delta domain.RunDelta) (*domain.Run, error)

	// delete the Run and, in the same transaction, every TestResult under it.
	//
	// Returns the deleted record, or ErrMissing when not found/owned.
	Delete(ctx context.Context, runId string, userId string) (*domain.Run, error)
}
