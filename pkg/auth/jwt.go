package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	kconf "github.com/evaltrack/evaltrack/pkg/configs/backend"
	"github.com/evaltrack/evaltrack/pkg/domain"
	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	userdb "github.com/evaltrack/evaltrack/pkg/domain/user/db"
)

// JWT issues and verifies HS256 session tokens. The token subject is
// the user id; the account is re-read on every request so that a
// deactivated or deleted user is locked out at once.
type JWT struct {
	users    userdb.UserInterface
	secret   []byte
	lifetime time.Duration
	cookie   string
	secure   bool
	now      func() time.Time
}

func NewJWT(users userdb.UserInterface, conf kconf.AuthConfig) *JWT {
	return &JWT{
		users:    users,
		secret:   []byte(conf.SecretKey),
		lifetime: conf.TokenLifetime(),
		cookie:   conf.CookieName,
		secure:   conf.SecureCookie,
		now:      time.Now,
	}
}

var _ Authenticator = &JWT{}

// Issue signs a token for the user, valid for the configured lifetime.
func (j *JWT) Issue(user *domain.User) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.Id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
	})
	return token.SignedString(j.secret)
}

// Cookie wraps a signed token into the session cookie.
func (j *JWT) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     j.cookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(j.lifetime / time.Second),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func (j *JWT) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     j.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWT) Authenticate(c echo.Context) (*domain.User, error) {
	raw, ok := j.extract(c)
	if !ok {
		return nil, ErrUnauthenticated
	}

	claims := jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(
		raw, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}
			return j.secret, nil
		},
		jwt.WithTimeFunc(j.now),
	); err != nil {
		return nil, errors.Join(ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	user, err := j.users.Get(c.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, kerr.ErrMissing) {
			return nil, errors.Join(ErrUnauthenticated, err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// extract finds the raw token in the session cookie or, failing that,
// in an "Authorization: Bearer" header.
func (j *JWT) extract(c echo.Context) (string, bool) {
	if cookie, err := c.Cookie(j.cookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, found := strings.Cut(header, " "); found &&
		strings.EqualFold(scheme, "bearer") && token != "" {
		return token, true
	}
	return "", false
}
