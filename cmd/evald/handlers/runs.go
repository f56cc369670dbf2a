package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/evaltrack/evaltrack/pkg/api/types/errors"
	apiruns "github.com/evaltrack/evaltrack/pkg/api/types/runs"
	"github.com/evaltrack/evaltrack/pkg/auth"
	"github.com/evaltrack/evaltrack/pkg/domain"
	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	rundb "github.com/evaltrack/evaltrack/pkg/domain/run/db"
)

func RunCreateHandler(dbRun rundb.RunInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		creation := apiruns.Creation{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&creation); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if creation.ExperimentId == "" {
			return apierr.BadRequest("experiment_id is required", nil)
		}

		run, err := dbRun.Register(
			c.Request().Context(), user.Id,
			domain.RunParam{
				ExperimentId:    creation.ExperimentId,
				GitCommit:       creation.GitCommit,
				Hyperparameters: creation.Hyperparameters,
			},
		)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiruns.ComposeSummary(*run))
	}
}

func RunGetHandler(dbRun rundb.RunInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		runId := c.Param(paramKey)

		run, err := dbRun.Get(c.Request().Context(), runId, user.Id)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiruns.ComposeDetail(*run))
	}
}

func RunUpdateHandler(dbRun rundb.RunInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		runId := c.Param(paramKey)

		update := apiruns.Update{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&update); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}

		delta := domain.RunDelta{
			Hyperparameters: update.Hyperparameters,
		}
		if update.Status != nil {
			status, err := domain.AsRunStatus(*update.Status)
			if err != nil {
				return apierr.BadRequest(
					fmt.Sprintf("status should be one of: %s, %s, %s, %s",
						domain.Pending, domain.Running, domain.Completed, domain.Failed),
					err,
				)
			}
			delta.Status = &status
		}
		if update.StartedAt != nil {
			t := update.StartedAt.Time()
			delta.StartedAt = &t
		}
		if update.FinishedAt != nil {
			t := update.FinishedAt.Time()
			delta.FinishedAt = &t
		}

		run, err := dbRun.Update(c.Request().Context(), runId, user.Id, delta)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiruns.ComposeSummary(*run))
	}
}

func RunDeleteHandler(dbRun rundb.RunInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		runId := c.Param(paramKey)

		run, err := dbRun.Delete(c.Request().Context(), runId, user.Id)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiruns.ComposeSummary(*run))
	}
}
