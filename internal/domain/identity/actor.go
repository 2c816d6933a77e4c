package identity

import "github.com/google/uuid"

// Actor is the authenticated identity performing an operation.
// It is resolved from the access token and passed explicitly into services.
type Actor struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// NewActor creates an actor
func NewActor(userID uuid.UUID, username string, role Role) *Actor {
	return &Actor{UserID: userID, Username: username, Role: role}
}

// IsVendor reports whether the actor is a vendor. Safe on a nil receiver.
func (a *Actor) IsVendor() bool {
	return a != nil && a.UserID != uuid.Nil && a.Role == RoleVendor
}

// IsSupplier reports whether the actor is a supplier. Safe on a nil receiver.
func (a *Actor) IsSupplier() bool {
	return a != nil && a.UserID != uuid.Nil && a.Role == RoleSupplier
}
