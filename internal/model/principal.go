package model

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleCleaner  Role = "CLEANER"
	RoleAdmin    Role = "ADMIN"
)

type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsCustomer() bool {
	return p.Role == RoleCustomer
}

func (p Principal) IsCleaner() bool {
	return p.Role == RoleCleaner
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsStaff covers collection crews and administrators.
func (p Principal) IsStaff() bool {
	return p.IsCleaner() || p.IsAdmin()
}
