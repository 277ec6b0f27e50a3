package domain

import "time"

// Role is the access level assigned to a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleOverseer Role = "overseer"
)

// Valid reports whether the role is one of the known levels.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleOverseer:
		return true
	}
	return false
}

// User is an actor in the system, referenced by transactions.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserUpdate is a partial update; nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	FullName *string
	Role     *Role
	IsActive *bool
}
