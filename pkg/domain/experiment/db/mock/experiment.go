// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/evaltrack/evaltrack/pkg/domain"
	expdb "github.com/evaltrack/evaltrack/pkg/domain/experiment/db"
	dbmock "github.com/evaltrack/evaltrack/pkg/domain/internal/db/mock"
)

type ExperimentInterface struct {
	Impl struct {
		Register func(context.Context, string, domain.ExperimentParam) (*domain.Experiment, error)
		Find     func(context.Context, string, int, int) ([]domain.Experiment, error)
		Get      func(context.Context, string, string) (*domain.ExperimentWithRuns, error)
		Update   func(context.Context, string, string, domain.ExperimentDelta) (*domain.Experiment, error)
		Delete   func(context.Context, string, string) (*domain.Experiment, error)
	}
	Calls struct {
		Register dbmock.CallLog[struct {
			UserId string
			Param  domain.ExperimentParam
		}]
		Find dbmock.CallLog[struct {
			UserId string
			Skip   int
			Limit  int
		}]
		Get dbmock.CallLog[struct {
			ExperimentId string
			UserId       string
		}]
		Update dbmock.CallLog[struct {
			ExperimentId string
			UserId       string
			Delta        domain.ExperimentDelta
		}]
		Delete dbmock.CallLog[struct {
			ExperimentId string
			UserId       string
		}]
	}
}

func NewExperimentInterface() *ExperimentInterface {
	return &ExperimentInterface{}
}

var _ expdb.ExperimentInterface = &ExperimentInterface{}

func (m *ExperimentInterface) Register(ctx context.Context, userId string, param domain.ExperimentParam) (*domain.Experiment, error) {
	m.Calls.Register = append(m.Calls.Register, struct {
		UserId string
		Param  domain.ExperimentParam
	}{
		UserId: userId, Param: param,
	})
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, userId, param)
	}
	panic(errors.New("it should not be called"))
}

func (m *ExperimentInterface) Find(ctx context.Context, userId string, skip int, limit int) ([]domain.Experiment, error) {
	m.Calls.Find = append(m.Calls.Find, struct {
		UserId string
		Skip   int
		Limit  int
	}{
		UserId: userId, Skip: skip, Limit: limit,
	})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, userId, skip, limit)
	}
	panic(errors.New("it should not be called"))
}

func (m *ExperimentInterface) Get(ctx context.Context, experimentId string, userId string) (*domain.ExperimentWithRuns, error) {
	m.Calls.Get = append(m.Calls.Get, struct {
		ExperimentId string
		UserId       string
	}{
		ExperimentId: experimentId, UserId: userId,
	})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, experimentId, userId)
	}
	panic(errors.New("it should not be called"))
}

func (m *ExperimentInterface) Update(ctx context.Context, experimentId string, userId string, delta domain.ExperimentDelta) (*domain.Experiment, error) {
	m.Calls.Update = append(m.Calls.Update, struct {
		ExperimentId string
		UserId       string
		Delta        domain.ExperimentDelta
	}{
		ExperimentId: experimentId, UserId: userId, Delta: delta,
	})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, experimentId, userId, delta)
	}
	panic(errors.New("it should not be called"))
}

func (m *ExperimentInterface) Delete(ctx context.Context, experimentId string, userId string) (*domain.Experiment, error) {
	m.Calls.Delete = append(m.Calls.Delete, struct {
		ExperimentId string
		UserId       string
	}{
		ExperimentId: experimentId, UserId: userId,
	})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, experimentId, userId)
	}
	panic(errors.New("it should not be called"))
}
