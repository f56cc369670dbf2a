package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierr "github.com/evaltrack/evaltrack/pkg/api/types/errors"
	apiexps "github.com/evaltrack/evaltrack/pkg/api/types/experiments"
	"github.com/evaltrack/evaltrack/pkg/auth"
	"github.com/evaltrack/evaltrack/pkg/domain"
	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	expdb "github.com/evaltrack/evaltrack/pkg/domain/experiment/db"
)

func ExperimentCreateHandler(dbExp expdb.ExperimentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		creation := apiexps.Creation{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&creation); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if creation.Name == "" {
			return apierr.BadRequest("name is required", nil)
		}

		experiment, err := dbExp.Register(
			c.Request().Context(), user.Id,
			domain.ExperimentParam{
				Name:        creation.Name,
				Description: creation.Description,
				Config:      creation.Config,
			},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiexps.ComposeSummary(*experiment))
	}
}

func ExperimentFindHandler(dbExp expdb.ExperimentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		skip, limit, err := pagination(c, 0, 100)
		if err != nil {
			return apierr.BadRequest("skip should be >= 0, limit should be in [1, 100]", err)
		}

		experiments, err := dbExp.Find(c.Request().Context(), user.Id, skip, limit)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		summaries := make([]apiexps.Summary, 0, len(experiments))
		for _, e := range experiments {
			summaries = append(summaries, apiexps.ComposeSummary(e))
		}
		return c.JSON(http.StatusOK, summaries)
	}
}

func ExperimentGetHandler(dbExp expdb.ExperimentInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		experimentId := c.Param(paramKey)

		experiment, err := dbExp.Get(c.Request().Context(), experimentId, user.Id)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiexps.ComposeDetail(*experiment))
	}
}

func ExperimentUpdateHandler(dbExp expdb.ExperimentInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		experimentId := c.Param(paramKey)

		update := apiexps.Update{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&update); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if update.Name != nil && *update.Name == "" {
			return apierr.BadRequest("name should not be empty", nil)
		}

		experiment, err := dbExp.Update(
			c.Request().Context(), experimentId, user.Id,
			domain.ExperimentDelta{
				Name:        update.Name,
				Description: update.Description,
				Config:      update.Config,
			},
		)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiexps.ComposeSummary(*experiment))
	}
}

func ExperimentDeleteHandler(dbExp expdb.ExperimentInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		experimentId := c.Param(paramKey)

		experiment, err := dbExp.Delete(c.Request().Context(), experimentId, user.Id)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiexps.ComposeSummary(*experiment))
	}
}

// pagination reads skip/limit query parameters, applying defaults and
// the bounds skip >= 0, 1 <= limit <= 100.
func pagination(c echo.Context, defaultSkip int, defaultLimit int) (int, int, error) {
	skip, limit := defaultSkip, defaultLimit

	if raw := c.QueryParam("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("skip is not an integer: %w", err)
		}
		skip = parsed
	}
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("limit is not an integer: %w", err)
		}
		limit = parsed
	}

	if skip < 0 {
		return 0, 0, fmt.Errorf("skip should be >= 0 (got %d)", skip)
	}
	if limit < 1 || 100 < limit {
		return 0, 0, fmt.Errorf("limit should be in [1, 100] (got %d)", limit)
	}
	return skip, limit, nil
}
