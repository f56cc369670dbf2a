// this package provides "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	"github.com/evaltrack/evaltrack/pkg/domain"
	dbmock "github.com/evaltrack/evaltrack/pkg/domain/internal/db/mock"
	tcdb "github.com/evaltrack/evaltrack/pkg/domain/testcase/db"
)

type TestCaseInterface struct {
	Impl struct {
		Register   func(context.Context, string, domain.TestCaseParam) (*domain.TestCase, error)
		Find       func(context.Context, string) ([]domain.TestCase, error)
		FindGlobal func(context.Context) ([]domain.TestCase, error)
		FindByType func(context.Context, string, domain.TestCaseType) ([]domain.TestCase, error)
		Get        func(context.Context, string, string) (*domain.TestCase, error)
		Update     func(context.Context, string, string, domain.TestCaseDelta) (*domain.TestCase, error)
		Delete     func(context.Context, string, string) (*domain.TestCase, error)
	}
	Calls struct {
		Register dbmock.CallLog[struct {
			UserId string
			Param  domain.TestCaseParam
		}]
		Find       dbmock.CallLog[struct{ UserId string }]
		FindGlobal dbmock.CallLog[struct{}]
		FindByType dbmock.CallLog[struct {
			UserId string
			Type   domain.TestCaseType
		}]
		Get dbmock.CallLog[struct {
			TestCaseId string
			UserId     string
		}]
		Update dbmock.CallLog[struct {
			TestCaseId string
			UserId     string
			Delta      domain.TestCaseDelta
		}]
		Delete dbmock.CallLog[struct {
			TestCaseId string
			UserId     string
		}]
	}
}

func NewTestCaseInterface() *TestCaseInterface {
	return &TestCaseInterface{}
}

var _ tcdb.TestCaseInterface = &TestCaseInterface{}

func (m *TestCaseInterface) Register(ctx context.Context, userId string, param domain.TestCaseParam) (*domain.TestCase, error) {
	m.Calls.Register = append(m.Calls.Register, struct {
		UserId string
		Param  domain.TestCaseParam
	}{
		UserId: userId, Param: param,
	})
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, userId, param)
	}
	panic(errors.New("it should not be called"))
}

func (m *TestCaseInterface) Find(ctx context.Context, userId string) ([]domain.TestCase, error) {
	m.Calls.Find = append(m.Calls.Find, struct{ UserId string }{UserId: userId})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, userId)
	}
	panic(errors.New("it should not be called"))
}

func (m *TestCaseInterface) FindGlobal(ctx context.Context) ([]domain.TestCase, error) {
	m.Calls.FindGlobal = append(m.Calls.FindGlobal, struct{}{})
	if m.Impl.FindGlobal != nil {
		return m.Impl.FindGlobal(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (m *TestCaseInterface) FindByType(ctx context.Context, userId string, typ domain.TestCaseType) ([]domain.TestCase, error) {
	m.Calls.FindByType = append(m.Calls.FindByType, struct {
		UserId string
		Type   domain.TestCaseType
	}{
		UserId: userId, Type: typ,
	})
	if m.Impl.FindByType != nil {
		return m.Impl.FindByType(ctx, userId, typ)
	}
	panic(errors.New("it should not be called"))
}

func (m *TestCaseInterface) Get(ctx context.Context, testCaseId string, userId string) (*domain.TestCase, error) {
	m.Calls.Get = append(m.Calls.Get, struct {
		TestCaseId string
		UserId     string
	}{
		TestCaseId: testCaseId, UserId: userId,
	})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, testCaseId, userId)
	}
	panic(errors.New("it should not be called"))
}

func (m *TestCaseInterface) Update(ctx context.Context, testCaseId string, userId string, delta domain.TestCaseDelta) (*domain.TestCase, error) {
	m.Calls.Update = append(m.Calls.Update, struct {
		TestCaseId string
		UserId     string
		Delta      domain.TestCaseDelta
	}{
		TestCaseId: testCaseId, UserId: userId, Delta: delta,
	})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, testCaseId, userId, delta)
	}
	panic(errors.New("it should not be called"))
}

func (m *TestCaseInterface) Delete(ctx context.Context, testCaseId string, userId string) (*domain.TestCase, error) {
	m.Calls.Delete = append(m.Calls.Delete, struct {
		TestCaseId string
		UserId     string
	}{
		TestCaseId: testCaseId, UserId: userId,
	})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, testCaseId, userId)
	}
	panic(errors.New("it should not be called"))
}
