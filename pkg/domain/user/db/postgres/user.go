package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/domain/errors/dberrors"
	kpgintr "github.com/evaltrack/evaltrack/pkg/domain/internal/db/postgres"
	userdb "github.com/evaltrack/evaltrack/pkg/domain/user/db"
)

// a struct for DB operations related to User
type userPG struct { // implements db.UserInterface
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *userPG {
	return &userPG{pool: pool}
}

var _ userdb.UserInterface = &userPG{}

func (m *userPG) Register(
	ctx context.Context, email string, hashedPassword string,
) (*domain.User, error) {
	u, err := kpgintr.ScanUser(m.pool.QueryRow(
		ctx,
		`
		insert into "users" ("id", "email", "hashed_password")
		values ($1, $2, $3)
		returning `+kpgintr.UserColumns+`
		`,
		uuid.NewString(), email, hashedPassword,
	))
	if err != nil {
		return nil, kpgintr.AsDomainError(err)
	}
	return u, nil
}

func (m *userPG) Get(ctx context.Context, userId string) (*domain.User, error) {
	u, err := kpgintr.ScanUser(m.pool.QueryRow(
		ctx,
		`select `+kpgintr.UserColumns+` from "users" where "id" = $1`,
		userId,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "users", Identity: userId}
		}
		return nil, err
	}
	return u, nil
}

func (m *userPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := kpgintr.ScanUser(m.pool.QueryRow(
		ctx,
		`select `+kpgintr.UserColumns+` from "users" where "email" = $1`,
		email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "users", Identity: email}
		}
		return nil, err
	}
	return u, nil
}

func (m *userPG) DeleteByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := kpgintr.ScanUser(m.pool.QueryRow(
		ctx,
		`delete from "users" where "email" = $1 returning `+kpgintr.UserColumns,
		email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberrors.Missing{Table: "users", Identity: email}
		}
		return nil, err
	}
	return u, nil
}

func (m *userPG) EnsureSuperuser(
	ctx context.Context, email string, hashedPassword string,
) (*domain.User, error) {
	// upsert on the email key. An existing account keeps its password
	// and is promoted in place.
	u, err := kpgintr.ScanUser(m.pool.QueryRow(
		ctx,
		`
		insert into "users" ("id", "email", "hashed_password", "is_superuser", "is_verified")
		values ($1, $2, $3, true, true)
		on conflict ("email") do update set
			"is_active" = true,
			"is_superuser" = true,
			"is_verified" = true,
			"updated_at" = now()
		returning `+kpgintr.UserColumns+`
		`,
		uuid.NewString(), email, hashedPassword,
	))
	if err != nil {
		return nil, err
	}
	return u, nil
}
