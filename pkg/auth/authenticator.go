// Package auth is the identity boundary of the API server.
//
// Handlers never look at credentials; they receive the resolved caller
// through the request context, set by Middleware.
package auth

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/evaltrack/evaltrack/pkg/domain"
)

// ErrUnauthenticated means the request carries no valid credential.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticator resolves the caller of a request.
type Authenticator interface {
	// Authenticate returns the caller's user record, or ErrUnauthenticated
	// when the request carries no credential, an invalid one, or one for
	// an inactive account.
	Authenticate(c echo.Context) (*domain.User, error)
}
