package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role mirrors the claims issued by the external identity provider.
// The core trusts these roles and never re-verifies credentials.
type Role string

const (
	RolePatient Role = "patient"
	RoleDentist Role = "dentist"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleDentist, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) IsStaff() bool {
	return r == RoleDentist || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
