package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/evaltrack/evaltrack/pkg/api/types/errors"
	apitrs "github.com/evaltrack/evaltrack/pkg/api/types/testresults"
	"github.com/evaltrack/evaltrack/pkg/auth"
	"github.com/evaltrack/evaltrack/pkg/domain"
	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	"github.com/evaltrack/evaltrack/pkg/domain/errors/dberrors"
	trdb "github.com/evaltrack/evaltrack/pkg/domain/testresult/db"
)

func TestResultCreateHandler(dbTr trdb.TestResultInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		creation := apitrs.Creation{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&creation); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if creation.RunId == "" {
			return apierr.BadRequest("run_id is required", nil)
		}

		testResult, err := dbTr.Register(c.Request().Context(), user.Id, creation.Param())
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitrs.ComposeSummary(*testResult))
	}
}

func TestResultCreateBatchHandler(dbTr trdb.TestResultInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		creations := []apitrs.Creation{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&creations); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if len(creations) == 0 {
			return apierr.BadRequest("batch should not be empty", nil)
		}
		params := make([]domain.TestResultParam, 0, len(creations))
		for _, creation := range creations {
			if creation.RunId == "" {
				return apierr.BadRequest("run_id is required for every item", nil)
			}
			params = append(params, creation.Param())
		}

		testResults, err := dbTr.RegisterBatch(c.Request().Context(), user.Id, params)
		if err != nil {
			missingRuns := dberrors.MissingRuns{}
			if errors.As(err, &missingRuns) {
				// the denial still names the offending run ids, so that
				// the client can repair and resubmit the whole batch.
				return apierr.NewErrorMessage(
					http.StatusNotFound,
					"not found",
					apierr.WithAdvice(missingRuns.Error()),
					apierr.WithError(err),
				)
			}
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		summaries := make([]apitrs.Summary, 0, len(testResults))
		for _, tr := range testResults {
			summaries = append(summaries, apitrs.ComposeSummary(tr))
		}
		return c.JSON(http.StatusOK, summaries)
	}
}

func TestResultGetHandler(dbTr trdb.TestResultInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		testResultId := c.Param(paramKey)

		testResult, err := dbTr.Get(c.Request().Context(), testResultId, user.Id)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitrs.ComposeSummary(*testResult))
	}
}
