package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleExecutant Role = "executant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleExecutant:
		return true
	default:
		return false
	}
}

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	ManagerID    *int64     `json:"manager_id,omitempty"` // set iff role == executant
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// NewUser builds an unsaved user and enforces the role/manager invariant at
// construction: an executant carries exactly one manager reference, other
// roles carry none.
func NewUser(email, name, passwordHash string, role Role, managerID *int64) (*User, error) {
	if !role.Valid() {
		return nil, ErrValidation
	}
	if role == RoleExecutant && managerID == nil {
		return nil, ErrValidation
	}
	if role != RoleExecutant && managerID != nil {
		return nil, ErrValidation
	}
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		ManagerID:    managerID,
	}, nil
}

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID   int64
	Role Role
}
