package domain

import "time"

// User is an authenticated identity. It is the owner key for
// Experiments and TestCases.
type User struct {
	Id    string
	Email string

	// bcrypt digest. Never serialized to API responses.
	HashedPassword string

	IsActive    bool
	IsSuperuser bool
	IsVerified  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) Equal(o User) bool {
	return u.Id == o.Id &&
		u.Email == o.Email &&
		u.HashedPassword == o.HashedPassword &&
		u.IsActive == o.IsActive &&
		u.IsSuperuser == o.IsSuperuser &&
		u.IsVerified == o.IsVerified &&
		u.CreatedAt.Equal(o.CreatedAt) &&
		u.UpdatedAt.Equal(o.UpdatedAt)
}
