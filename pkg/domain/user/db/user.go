package db

import (
	"context"

	"github.com/evaltrack/evaltrack/pkg/domain"
)

type UserInterface interface {
	// register a new active, unverified, non-superuser account.
	//
	// Returns ErrConflict when the email address is already taken.
	Register(ctx context.Context, email string, hashedPassword string) (*domain.User, error)

	// get a user by id. Returns ErrMissing when absent.
	Get(ctx context.Context, userId string) (*domain.User, error)

	// get a user by email. Returns ErrMissing when absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// delete a user by email. Returns the deleted record,
	// or ErrMissing when absent.
	DeleteByEmail(ctx context.Context, email string) (*domain.User, error)

	// create the account when absent, or promote it when present:
	// either way the user ends up active, verified and superuser.
	// Used for startup bootstrap.
	EnsureSuperuser(ctx context.Context, email string, hashedPassword string) (*domain.User, error)
}
