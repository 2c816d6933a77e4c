package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetmart/backend/internal/domain/identity"
)

// Messages shown to the user after each auth step
const (
	MessageRegistered = "Registration successful! Please log in."
	MessageLoggedIn   = "Logged in successfully!"
	MessageLoggedOut  = "You have been logged out."
)

// RegisterInput contains the sign-up form fields
type RegisterInput struct {
	Username         string
	Password         string
	Role             string
	Name             string
	ShopBusinessName string
	Locality         string
	ContactNumber    string
}

// RegisterResult contains the created user
type RegisterResult struct {
	User    UserInfo
	Message string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the tokens and profile of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
	DashboardPath         string
	Message               string
}

// UserInfo is the public profile of a user
type UserInfo struct {
	ID               uuid.UUID
	Username         string
	Role             identity.Role
	DisplayName      string
	Name             string
	ShopBusinessName string
	Locality         string
	ContactNumber    string
	CreatedAt        time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains a freshly issued token pair
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput identifies the access token to revoke
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	// TokenTTL is the access token's remaining lifetime
	TokenTTL time.Duration
}

// ToUserInfo converts a domain user to its public profile
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:               u.ID,
		Username:         u.Username,
		Role:             u.Role,
		DisplayName:      u.DisplayNameOrUsername(),
		Name:             u.Name,
		ShopBusinessName: u.ShopBusinessName,
		Locality:         u.Locality,
		ContactNumber:    u.ContactNumber,
		CreatedAt:        u.CreatedAt,
	}
}
