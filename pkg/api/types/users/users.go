package users

import (
	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/utils/rfctime"
)

// Creation is a sign-up request.
type Creation struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is a credential check request.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the issued session token. It is also set as a cookie.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Detail struct {
	Id          string          `json:"id"`
	Email       string          `json:"email"`
	IsActive    bool            `json:"is_active"`
	IsSuperuser bool            `json:"is_superuser"`
	IsVerified  bool            `json:"is_verified"`
	CreatedAt   rfctime.RFC3339 `json:"created_at"`
	UpdatedAt   rfctime.RFC3339 `json:"updated_at"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.Email == o.Email &&
		d.IsActive == o.IsActive &&
		d.IsSuperuser == o.IsSuperuser &&
		d.IsVerified == o.IsVerified &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}

// ComposeDetail maps a user to its response shape.
//
// The password digest never leaves the server.
func ComposeDetail(u domain.User) Detail {
	return Detail{
		Id:          u.Id,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		IsVerified:  u.IsVerified,
		CreatedAt:   rfctime.New(u.CreatedAt),
		UpdatedAt:   rfctime.New(u.UpdatedAt),
	}
}
