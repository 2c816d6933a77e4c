package identity

import (
	"strings"

	"github.com/streetmart/backend/internal/domain/shared"
)

// Role is the marketplace role of a user. The set is closed.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

// ErrInvalidRole is returned when a role outside the closed set is supplied
var ErrInvalidRole = shared.NewDomainError("INVALID_ROLE", "Invalid role selected.")

// ParseRole converts a raw string into a Role, rejecting anything else
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleVendor, RoleSupplier:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// DashboardPath returns the landing page a client should open after login
func (r Role) DashboardPath() string {
	switch r {
	case RoleVendor:
		return "/vendor/dashboard"
	case RoleSupplier:
		return "/supplier/dashboard"
	}
	return "/"
}
