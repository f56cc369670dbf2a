package db

import (
	"context"

	"github.com/evaltrack/evaltrack/pkg/domain"
)

type TestCaseInterface interface {
	// register a new TestCase owned by userId.
	Register(ctx context.Context, userId string, param domain.TestCaseParam) (*domain.TestCase, error)

	// find TestCases owned by userId.
	Find(ctx context.Context, userId string) ([]domain.TestCase, error)

	// find all globally shared TestCases, regardless of owner.
	//
	// This is the one read path without an ownership scope.
	FindGlobal(ctx context.Context) ([]domain.TestCase, error)

	// find TestCases owned by userId having the given type.
	FindByType(ctx context.Context, userId string, typ domain.TestCaseType) ([]domain.TestCase, error)

	// get one TestCase.
	//
	// Visible when owned by userId OR globally shared; otherwise ErrMissing.
	Get(ctx context.Context, testCaseId string, userId string) (*domain.TestCase, error)

	// apply a sparse update. Owner only: a global TestCase of another
	// user yields ErrMissing, same as an absent one.
	Update(ctx context.Context, testCaseId string, userId string, delta domain.TestCaseDelta) (*domain.TestCase, error)

	// delete the TestCase. Owner only. TestResults referencing it are
	// left untouched.
	Delete(ctx context.Context, testCaseId string, userId string) (*domain.TestCase, error)
}
