package identity

import "github.com/streetmart/backend/internal/domain/shared"

// Aggregate type constant for User
const AggregateTypeUser = "User"

// EventTypeUserRegistered is the type of UserRegisteredEvent
const EventTypeUserRegistered = "UserRegistered"

// UserRegisteredEvent is published when a user signs up
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Username:        user.Username,
		Role:            user.Role,
	}
}
