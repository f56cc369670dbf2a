package auth

import (
	"errors"

	"github.com/labstack/echo/v4"

	apierr "github.com/evaltrack/evaltrack/pkg/api/types/errors"
	"github.com/evaltrack/evaltrack/pkg/domain"
)

const userContextKey = "evaltrack.user"

// Middleware authenticates every request with the given Authenticator
// and stores the caller
// in the echo context for CurrentUser. Unauthenticated requests are
// rejected with 401 before reaching the handler.
func Middleware(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := a.Authenticate(c)
			if err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					return apierr.Unauthorized("log in first", err)
				}
				return apierr.InternalServerError(err)
			}
			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// SetCurrentUser stores user as the caller of the request,
// as Middleware does after a successful Authenticate.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the caller stored by Middleware.
func CurrentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(userContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
