package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"

	apierr "github.com/evaltrack/evaltrack/pkg/api/types/errors"
	apiusers "github.com/evaltrack/evaltrack/pkg/api/types/users"
	"github.com/evaltrack/evaltrack/pkg/auth"
	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	userdb "github.com/evaltrack/evaltrack/pkg/domain/user/db"
)

func UserRegisterHandler(dbUser userdb.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		creation := apiusers.Creation{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&creation); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}

		if _, err := mail.ParseAddress(creation.Email); err != nil {
			return apierr.BadRequest("email address is malformed", err)
		}
		if err := auth.ValidatePassword(creation.Password); err != nil {
			return apierr.BadRequest("password should have at least 8 characters", err)
		}

		hashed, err := auth.HashPassword(creation.Password)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		user, err := dbUser.Register(c.Request().Context(), creation.Email, hashed)
		if err != nil {
			if errors.Is(err, kerr.ErrConflict) {
				return apierr.Conflict("email address is already taken", apierr.WithError(err))
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiusers.ComposeDetail(*user))
	}
}

func UserLoginHandler(dbUser userdb.UserInterface, jwt *auth.JWT) echo.HandlerFunc {
	return func(c echo.Context) error {
		login := apiusers.Login{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&login); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}

		user, err := dbUser.GetByEmail(c.Request().Context(), login.Email)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				// same response as a bad password; no account probing.
				return apierr.Unauthorized("bad credentials", nil)
			}
			return apierr.InternalServerError(err)
		}
		if !auth.VerifyPassword(user.HashedPassword, login.Password) || !user.IsActive {
			return apierr.Unauthorized("bad credentials", nil)
		}

		token, err := jwt.Issue(user)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		c.SetCookie(jwt.Cookie(token))
		return c.JSON(http.StatusOK, apiusers.Token{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

func UserLogoutHandler(jwt *auth.JWT) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := auth.CurrentUser(c); err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		c.SetCookie(jwt.ClearCookie())
		return c.NoContent(http.StatusNoContent)
	}
}

func UserMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		return c.JSON(http.StatusOK, apiusers.ComposeDetail(*user))
	}
}

func UserDeleteByEmailHandler(dbUser userdb.UserInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := auth.CurrentUser(c)
		if err != nil {
			return apierr.Unauthorized("log in first", err)
		}
		if !caller.IsSuperuser {
			return apierr.Forbidden("only superusers can delete accounts")
		}

		user, err := dbUser.DeleteByEmail(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiusers.ComposeDetail(*user))
	}
}
