// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/evaltrack/evaltrack/pkg/domain"
	dbmock "github.com/evaltrack/evaltrack/pkg/domain/internal/db/mock"
	rundb "github.com/evaltrack/evaltrack/pkg/domain/run/db"
)

type RunInterface struct {
	Impl struct {
		Register func(context.Context, string, domain.RunParam) (*domain.Run, error)
		Get      func(context.Context, string, string) (*domain.RunWithResults, error)
		Update   func(context.Context, string, string, domain.RunDelta) (*domain.Run, error)
		Delete   func(context.Context, string, string) (*domain.Run, error)
	}
	Calls struct {
		Register dbmock.CallLog[struct {
			UserId string
			Param  domain.RunParam
		}]
		Get dbmock.CallLog[struct {
			RunId  string
			UserId string
		}]
		Update dbmock.CallLog[struct {
			RunId  string
			UserId string
			Delta  domain.RunDelta
		}]
		Delete dbmock.CallLog[struct {
			RunId  string
			UserId string
		}]
	}
}

func NewRunInterface() *RunInterface {
	return &RunInterface{}
}

var _ rundb.RunInterface = &RunInterface{}

func (m *RunInterface) Register(ctx context.Context, userId string, param domain.RunParam) (*domain.Run, error) {
	m.Calls.Register = append(m.Calls.Register, struct {
		UserId string
		Param  domain.RunParam
	}{
		UserId: userId, Param: param,
	})
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, userId, param)
	}
	panic(errors.New("it should not be called"))
}

func (m *RunInterface) Get(ctx context.Context, runId string, userId string) (*domain.RunWithResults, error) {
	m.Calls.Get = append(m.Calls.Get, struct {
		RunId  string
		UserId string
	}{
		RunId: runId, UserId: userId,
	})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, runId, userId)
	}
	panic(errors.New("it should not be called"))
}

func (m *RunInterface) Update(ctx context.Context, runId string, userId string, delta domain.RunDelta) (*domain.Run, error) {
	m.Calls.Update = append(m.Calls.Update, struct {
		RunId  string
		UserId string
		Delta  domain.RunDelta
	}{
		RunId: runId, UserId: userId, Delta: delta,
	})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, runId, userId, delta)
	}
	panic(errors.New("it should not be called"))
}

func (m *RunInterface) Delete(ctx context.Context, runId string, userId string) (*domain.Run, error) {
	m.Calls.Delete = append(m.Calls.Delete, struct {
		RunId  string
		UserId string
	}{
		RunId: runId, UserId: userId,
	})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, runId, userId)
	}
	panic(errors.New("it should not be called"))
}
