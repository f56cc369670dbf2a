package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/evaltrack/evaltrack/cmd/evald/handlers"
	httptestutil "github.com/evaltrack/evaltrack/internal/testutils/http"
	apiruns "github.com/evaltrack/evaltrack/pkg/api/types/runs"
	"github.com/evaltrack/evaltrack/pkg/auth"
	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/domain/errors/dberrors"
	dbmock "github.com/evaltrack/evaltrack/pkg/domain/run/db/mock"
	"github.com/evaltrack/evaltrack/pkg/utils/rfctime"
	"github.com/evaltrack/evaltrack/pkg/utils/try"
)

func TestRunCreateHandler(t *testing.T) {

	t.Run("it registers a run under the caller's experiment", func(t *testing.T) {
		created := try.To(rfctime.ParseRFC3339DateTime("2024-04-01T12:00:00+00:00")).OrFatal(t).Time()

		mockRun := dbmock.NewRunInterface()
		mockRun.Impl.Register = func(_ context.Context, userId string, param domain.RunParam) (*domain.Run, error) {
			return &domain.Run{
				Id: "run_11112222", ExperimentId: param.ExperimentId,
				GitCommit: param.GitCommit, Status: domain.Pending,
				Hyperparameters: param.Hyperparameters, CreatedAt: created,
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/runs/",
			strings.NewReader(`{"experiment_id": "exp_0a1b2c3d", "git_commit": "deadbeef", "hyperparameters": {"lr": 0.01}}`),
			httptestutil.ContentType("application/json"),
		)
		auth.SetCurrentUser(c, caller("user-1"))

		testee := handlers.RunCreateHandler(mockRun)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if mockRun.Calls.Register.Times() != 1 {
			t.Fatalf("RunInterface.Register should be called once: %+v", mockRun.Calls.Register)
		}
		call := mockRun.Calls.Register[0]
		if call.UserId != "user-1" || call.Param.ExperimentId != "exp_0a1b2c3d" {
			t.Errorf("unmatch: register args: %+v", call)
		}

		actual := apiruns.Summary{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != "run_11112222" || actual.Status != string(domain.Pending) {
			t.Errorf("unmatch: response: %+v", actual)
		}
	})

	t.Run("it responds 404 when the parent experiment is not found or not owned", func(t *testing.T) {
		mockRun := dbmock.NewRunInterface()
		mockRun.Impl.Register = func(context.Context, string, domain.RunParam) (*domain.Run, error) {
			return nil, dberrors.Missing{Table: "experiments", Identity: "exp_0a1b2c3d"}
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/runs/",
			strings.NewReader(`{"experiment_id": "exp_0a1b2c3d"}`),
			httptestutil.ContentType("application/json"),
		)
		auth.SetCurrentUser(c, caller("user-2"))

		testee := handlers.RunCreateHandler(mockRun)
		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		} else if httperr.Code != http.StatusNotFound {
			t.Errorf("unmatch: status code: %d != %d", httperr.Code, http.StatusNotFound)
		}
	})

	t.Run("it responds 400 when experiment_id is missing, without touching the store", func(t *testing.T) {
		mockRun := dbmock.NewRunInterface()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/runs/",
			strings.NewReader(`{"git_commit": "deadbeef"}`),
			httptestutil.ContentType("application/json"),
		)
		auth.SetCurrentUser(c, caller("user-1"))

		testee := handlers.RunCreateHandler(mockRun)
		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		} else if httperr.Code != http.StatusBadRequest {
			t.Errorf("unmatch: status code: %d != %d", httperr.Code, http.StatusBadRequest)
		}
		if mockRun.Calls.Register.Times() != 0 {
			t.Errorf("RunInterface.Register should not be called: %+v", mockRun.Calls.Register)
		}
	})
}

func TestRunGetHandler(t *testing.T) {

	t.Run("it responds with the run and its test results", func(t *testing.T) {
		created := try.To(rfctime.ParseRFC3339DateTime("2024-04-01T12:00:00+00:00")).OrFatal(t).Time()

		mockRun := dbmock.NewRunInterface()
		mockRun.Impl.Get = func(context.Context, string, string) (*domain.RunWithResults, error) {
			return &domain.RunWithResults{
				Run: domain.Run{
					Id: "run_11112222", ExperimentId: "exp_0a1b2c3d",
					Status: domain.Completed, CreatedAt: created,
				},
				TestResults: []domain.TestResult{
					{
						Id: "tr_aaaabbbb", RunId: "run_11112222", TestCaseId: "tc_ccccdddd",
						Name: "greeting", Success: true, ExecutedAt: created,
					},
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/runs/run_11112222/")
		c.SetPath("/runs/:runId/")
		c.SetParamNames("runId")
		c.SetParamValues("run_11112222")
		auth.SetCurrentUser(c, caller("user-1"))

		testee := handlers.RunGetHandler(mockRun, "runId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apiruns.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != "run_11112222" || len(actual.TestResults) != 1 {
			t.Errorf("unmatch: response: %+v", actual)
		}
		if actual.TestResults[0].Id != "tr_aaaabbbb" || !actual.TestResults[0].Success {
			t.Errorf("unmatch: test results in response: %+v", actual.TestResults)
		}
	})

	t.Run("it responds 404 for a run under a foreign experiment", func(t *testing.T) {
		mockRun := dbmock.NewRunInterface()
		mockRun.Impl.Get = func(context.Context, string, string) (*domain.RunWithResults, error) {
			return nil, dberrors.Missing{Table: "runs", Identity: "run_11112222"}
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/runs/run_11112222/")
		c.SetPath("/runs/:runId/")
		c.SetParamNames("runId")
		c.SetParamValues("run_11112222")
		auth.SetCurrentUser(c, caller("user-2"))

		testee := handlers.RunGetHandler(mockRun, "runId")
		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		} else if httperr.Code != http.StatusNotFound {
			t.Errorf("unmatch: status code: %d != %d", httperr.Code, http.StatusNotFound)
		}
	})
}

func TestRunUpdateHandler(t *testing.T) {

	t.Run("it parses status and timestamps into the delta", func(t *testing.T) {
		created := try.To(rfctime.ParseRFC3339DateTime("2024-04-01T12:00:00+00:00")).OrFatal(t).Time()
		finished := try.To(rfctime.ParseRFC3339DateTime("2024-04-01T13:30:00+00:00")).OrFatal(t).Time()

		mockRun := dbmock.NewRunInterface()
		mockRun.Impl.Update = func(_ context.Context, runId string, userId string, delta domain.RunDelta) (*domain.Run, error) {
			return &domain.Run{
				Id: runId, ExperimentId: "exp_0a1b2c3d",
				Status: *delta.Status, FinishedAt: delta.FinishedAt,
				CreatedAt: created,
			}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Put(
			e, "/api/runs/run_11112222/",
			strings.NewReader(`{"status": "completed", "finished_at": "2024-04-01T13:30:00+00:00"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetPath("/runs/:runId/")
		c.SetParamNames("runId")
		c.SetParamValues("run_11112222")
		auth.SetCurrentUser(c, caller("user-1"))

		testee := handlers.RunUpdateHandler(mockRun, "runId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if mockRun.Calls.Update.Times() != 1 {
			t.Fatalf("RunInterface.Update should be called once: %+v", mockRun.Calls.Update)
		}
		delta := mockRun.Calls.Update[0].Delta
		if delta.Status == nil || *delta.Status != domain.Completed {
			t.Errorf("unmatch: status in delta: %+v", delta.Status)
		}
		if delta.FinishedAt == nil || !delta.FinishedAt.Equal(finished) {
			t.Errorf("unmatch: finished_at in delta: %+v", delta.FinishedAt)
		}
		if delta.StartedAt != nil || delta.Hyperparameters != nil {
			t.Errorf("absent fields should stay nil in delta: %+v", delta)
		}
	})

	t.Run("it rejects an unknown status before touching the store", func(t *testing.T) {
		mockRun := dbmock.NewRunInterface()

		e := echo.New()
		c, _ := httptestutil.Put(
			e, "/api/runs/run_11112222/",
			strings.NewReader(`{"status": "paused"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetPath("/runs/:runId/")
		c.SetParamNames("runId")
		c.SetParamValues("run_11112222")
		auth.SetCurrentUser(c, caller("user-1"))

		testee := handlers.RunUpdateHandler(mockRun, "runId")
		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		} else if httperr.Code != http.StatusBadRequest {
			t.Errorf("unmatch: status code: %d != %d", httperr.Code, http.StatusBadRequest)
		}
		if mockRun.Calls.Update.Times() != 0 {
			t.Errorf("RunInterface.Update should not be called: %+v", mockRun.Calls.Update)
		}
	})

	t.Run("it responds 404 for a foreign run", func(t *testing.T) {
		mockRun := dbmock.NewRunInterface()
		mockRun.Impl.Update = func(context.Context, string, string, domain.RunDelta) (*domain.Run, error) {
			return nil, dberrors.Missing{Table: "runs", Identity: "run_11112222"}
		}

		e := echo.New()
		c, _ := httptestutil.Put(
			e, "/api/runs/run_11112222/",
			strings.NewReader(`{"status": "failed"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetPath("/runs/:runId/")
		c.SetParamNames("runId")
		c.SetParamValues("run_11112222")
		auth.SetCurrentUser(c, caller("user-2"))

		testee := handlers.RunUpdateHandler(mockRun, "runId")
		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		} else if httperr.Code != http.StatusNotFound {
			t.Errorf("unmatch: status code: %d != %d", httperr.Code, http.StatusNotFound)
		}
	})
}

func TestRunDeleteHandler(t *testing.T) {

	t.Run("it responds with the deleted run", func(t *testing.T) {
		created := try.To(rfctime.ParseRFC3339DateTime("2024-04-01T12:00:00+00:00")).OrFatal(t).Time()

		mockRun := dbmock.NewRunInterface()
		mockRun.Impl.Delete = func(_ context.Context, runId string, userId string) (*domain.Run, error) {
			return &domain.Run{
				Id: runId, ExperimentId: "exp_0a1b2c3d",
				Status: domain.Failed, CreatedAt: created,
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/runs/run_11112222/")
		c.SetPath("/runs/:runId/")
		c.SetParamNames("runId")
		c.SetParamValues("run_11112222")
		auth.SetCurrentUser(c, caller("user-1"))

		testee := handlers.RunDeleteHandler(mockRun, "runId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apiruns.Summary{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != "run_11112222" {
			t.Errorf("unmatch: deleted run: %+v", actual)
		}
	})

	t.Run("it responds 404 for a foreign run", func(t *testing.T) {
		mockRun := dbmock.NewRunInterface()
		mockRun.Impl.Delete = func(context.Context, string, string) (*domain.Run, error) {
			return nil, dberrors.Missing{Table: "runs", Identity: "run_11112222"}
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/runs/run_11112222/")
		c.SetPath("/runs/:runId/")
		c.SetParamNames("runId")
		c.SetParamValues("run_11112222")
		auth.SetCurrentUser(c, caller("user-2"))

		testee := handlers.RunDeleteHandler(mockRun, "runId")
		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("error is not echo.HTTPError: %+v", err)
		} else if httperr.Code != http.StatusNotFound {
			t.Errorf("unmatch: status code: %d != %d", httperr.Code, http.StatusNotFound)
		}
	})
}
