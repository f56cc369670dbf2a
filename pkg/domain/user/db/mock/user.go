// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/evaltrack/evaltrack/pkg/domain"
	dbmock "github.com/evaltrack/evaltrack/pkg/domain/internal/db/mock"
	userdb "github.com/evaltrack/evaltrack/pkg/domain/user/db"
)

type UserInterface struct {
	Impl struct {
		Register        func(context.Context, string, string) (*domain.User, error)
		Get             func(context.Context, string) (*domain.User, error)
		GetByEmail      func(context.Context, string) (*domain.User, error)
		DeleteByEmail   func(context.Context, string) (*domain.User, error)
		EnsureSuperuser func(context.Context, string, string) (*domain.User, error)
	}
	Calls struct {
		Register dbmock.CallLog[struct {
			Email          string
			HashedPassword string
		}]
		Get           dbmock.CallLog[struct{ UserId string }]
		GetByEmail    dbmock.CallLog[struct{ Email string }]
		DeleteByEmail dbmock.CallLog[struct{ Email string }]
		EnsureSuperuser dbmock.CallLog[struct {
			Email          string
			HashedPassword string
		}]
	}
}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

var _ userdb.UserInterface = &UserInterface{}

func (m *UserInterface) Register(ctx context.Context, email string, hashedPassword string) (*domain.User, error) {
	m.Calls.Register = append(m.Calls.Register, struct {
		Email          string
		HashedPassword string
	}{
		Email: email, HashedPassword: hashedPassword,
	})
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, email, hashedPassword)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) Get(ctx context.Context, userId string) (*domain.User, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ UserId string }{UserId: userId})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userId)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.Calls.GetByEmail = append(m.Calls.GetByEmail, struct{ Email string }{Email: email})
	if m.Impl.GetByEmail != nil {
		return m.Impl.GetByEmail(ctx, email)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) DeleteByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.Calls.DeleteByEmail = append(m.Calls.DeleteByEmail, struct{ Email string }{Email: email})
	if m.Impl.DeleteByEmail != nil {
		return m.Impl.DeleteByEmail(ctx, email)
	}
	panic(errors.New("it should not be called"))
}

func (m *UserInterface) EnsureSuperuser(ctx context.Context, email string, hashedPassword string) (*domain.User, error) {
	m.Calls.EnsureSuperuser = append(m.Calls.EnsureSuperuser, struct {
		Email          string
		HashedPassword string
	}{
		Email: email, HashedPassword: hashedPassword,
	})
	if m.Impl.EnsureSuperuser != nil {
		return m.Impl.EnsureSuperuser(ctx, email, hashedPassword)
	}
	panic(errors.New("it should not be called"))
}
