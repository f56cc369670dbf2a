package db

import (
	"context"

	"github.com/evaltrack/evaltrack/pkg/domain"
)

type ExperimentInterface interface {
	// register a new Experiment owned by userId.
	//
	// Returns the stored record, with id and timestamps assigned.
	Register(ctx context.Context, userId string, param domain.ExperimentParam) (*domain.Experiment, error)

	// find Experiments owned by userId.
	//
	// skip/limit carve out a page. Order of the result is not guaranteed.
	Find(ctx context.Context, userId string, skip int, limit int) ([]domain.Experiment, error)

	// get one Experiment with its Runs.
	//
	// Returns ErrMissing when no Experiment with experimentId is owned by userId,
	// whether or not it exists for someone else.
	Get(ctx context.Context, experimentId string, userId string) (*domain.ExperimentWithRuns, error)

	// apply a sparse update. nil fields of delta are kept as they are;
	// the updated-at timestamp is refreshed even for an empty delta.
	//
	// Returns ErrMissing when the Experiment is not found/owned.
	Update(ctx context.Context, experimentId string, userId string, delta domain.ExperimentDelta) (*domain.Experiment, error)

	// delete the Experiment and, in the same transaction, every Run
	// under it and every TestResult under those Runs.
	//
	// Returns the deleted record, or ErrMissing when not found/owned.
	Delete(ctx context.Context, experimentId string, userId string) (*domain.Experiment, error)
}
