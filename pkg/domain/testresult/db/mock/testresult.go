// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/evaltrack/evaltrack/pkg/domain"
	dbmock "github.com/evaltrack/evaltrack/pkg/domain/internal/db/mock"
	trdb "github.com/evaltrack/evaltrack/pkg/domain/testresult/db"
)

type TestResultInterface struct {
	Impl struct {
		Register      func(context.Context, string, domain.TestResultParam) (*domain.TestResult, error)
		RegisterBatch func(context.Context, string, []domain.TestResultParam) ([]domain.TestResult, error)
		Get           func(context.Context, string, string) (*domain.TestResult, error)
	}
	Calls struct {
		Register dbmock.CallLog[struct {
			UserId string
			Param  domain.TestResultParam
		}]
		RegisterBatch dbmock.CallLog[struct {
			UserId string
			Params []domain.TestResultParam
		}]
		Get dbmock.CallLog[struct {
			TestResultId string
			UserId       string
		}]
	}
}

func NewTestResultInterface() *TestResultInterface {
	return &TestResultInterface{}
}

var _ trdb.TestResultInterface = &TestResultInterface{}

func (m *TestResultInterface) Register(ctx context.Context, userId string, param domain.TestResultParam) (*domain.TestResult, error) {
	m.Calls.Register = append(m.Calls.Register, struct {
		UserId string
		Param  domain.TestResultParam
	}{
		UserId: userId, Param: param,
	})
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, userId, param)
	}
	panic(errors.New("it should not be called"))
}

func (m *TestResultInterface) RegisterBatch(ctx context.Context, userId string, params []domain.TestResultParam) ([]domain.TestResult, error) {
	m.Calls.RegisterBatch = append(m.Calls.RegisterBatch, struct {
		UserId string
		Params []domain.TestResultParam
	}{
		UserId: userId, Params: params,
	})
	if m.Impl.RegisterBatch != nil {
		return m.Impl.RegisterBatch(ctx, userId, params)
	}
	panic(errors.New("it should not be called"))
}

func (m *TestResultInterface) Get(ctx context.Context, testResultId string, userId string) (*domain.TestResult, error) {
	m.Calls.Get = append(m.Calls.Get, struct {
		TestResultId string
		UserId       string
	}{
		TestResultId: testResultId, UserId: userId,
	})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, testResultId, userId)
	}
	panic(errors.New("it should not be called"))
}
