package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/evaltrack/evaltrack/pkg/api/types/errors"
	apitcs "github.com/evaltrack/evaltrack/pkg/api/types/testcases"
	"github.com/evaltrack/evaltrack/pkg/auth"
	"github.com/evaltrack/evaltrack/pkg/domain"
	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	tcdb "github.com/evaltrack/evaltrack/pkg/domain/testcase/db"
)

func TestCaseCreateHandler(dbTc tcdb.TestCaseInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		creation := apitcs.Creation{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&creation); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if creation.Name == "" {
			return apierr.BadRequest("name is required", nil)
		}
		typ, err := domain.AsTestCaseType(creation.Type)
		if err != nil {
			return apierr.BadRequest(testCaseTypeAdvice(), err)
		}

		testCase, err := dbTc.Register(
			c.Request().Context(), user.Id,
			domain.TestCaseParam{
				Name:               creation.Name,
				Type:               typ,
				Input:              creation.Input,
				ExpectedOutput:     creation.ExpectedOutput,
				Context:            creation.Context,
				RetrievalContext:   creation.RetrievalContext,
				AdditionalMetadata: creation.AdditionalMetadata,
				IsGlobal:           creation.IsGlobal,
			},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitcs.ComposeDetail(*testCase))
	}
}

func TestCaseFindHandler(dbTc tcdb.TestCaseInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		testCases, err := dbTc.Find(c.Request().Context(), user.Id)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, composeDetails(testCases))
	}
}

func TestCaseFindGlobalHandler(dbTc tcdb.TestCaseInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := auth.CurrentUser(c); err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		testCases, err := dbTc.FindGlobal(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, composeDetails(testCases))
	}
}

func TestCaseFindByTypeHandler(dbTc tcdb.TestCaseInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}

		// reject unknown types before touching the store.
		typ, err := domain.AsTestCaseType(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest(testCaseTypeAdvice(), err)
		}

		testCases, err := dbTc.FindByType(c.Request().Context(), user.Id, typ)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, composeDetails(testCases))
	}
}

func TestCaseGetHandler(dbTc tcdb.TestCaseInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		testCaseId := c.Param(paramKey)

		testCase, err := dbTc.Get(c.Request().Context(), testCaseId, user.Id)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitcs.ComposeDetail(*testCase))
	}
}

func TestCaseUpdateHandler(dbTc tcdb.TestCaseInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		testCaseId := c.Param(paramKey)

		update := apitcs.Update{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&update); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if update.Name != nil && *update.Name == "" {
			return apierr.BadRequest("name should not be empty", nil)
		}

		delta := domain.TestCaseDelta{
			Name:               update.Name,
			Input:              update.Input,
			ExpectedOutput:     update.ExpectedOutput,
			Context:            update.Context,
			RetrievalContext:   update.RetrievalContext,
			AdditionalMetadata: update.AdditionalMetadata,
			IsGlobal:           update.IsGlobal,
		}
		if update.Type != nil {
			typ, err := domain.AsTestCaseType(*update.Type)
			if err != nil {
				return apierr.BadRequest(testCaseTypeAdvice(), err)
			}
			delta.Type = &typ
		}

		testCase, err := dbTc.Update(c.Request().Context(), testCaseId, user.Id, delta)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitcs.ComposeDetail(*testCase))
	}
}

func TestCaseDeleteHandler(dbTc tcdb.TestCaseInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		testCaseId := c.Param(paramKey)

		testCase, err := dbTc.Delete(c.Request().Context(), testCaseId, user.Id)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitcs.ComposeDetail(*testCase))
	}
}

func composeDetails(testCases []domain.TestCase) []apitcs.Detail {
	details := make([]apitcs.Detail, 0, len(testCases))
	for _, tc := range testCases {
		details = append(details, apitcs.ComposeDetail(tc))
	}
	return details
}

func testCaseTypeAdvice() string {
	return fmt.Sprintf(
		"type should be one of: %s, %s, %s",
		domain.LLM, domain.Conversational, domain.Multimodal,
	)
}
