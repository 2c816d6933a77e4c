package identity

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/streetmart/backend/internal/domain/shared"
)

// Password cost for bcrypt
const bcryptCost = 12

// Registration errors, worded for direct display on the sign-up form
var (
	ErrUsernameRequired = shared.NewDomainError("INVALID_INPUT", "Username is required.")
	ErrPasswordRequired = shared.NewDomainError("INVALID_INPUT", "Password is required.")
)

// Profile holds the descriptive fields captured at registration
type Profile struct {
	Name             string
	ShopBusinessName string
	Locality         string
	ContactNumber    string
}

// User is a marketplace participant, either a street-food vendor or a wholesale supplier.
// Users are immutable after registration.
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	Role         Role
	Profile
}

// NewUser creates a new user with a hashed password
func NewUser(username, password string, role Role, profile Profile) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Username cannot exceed 100 characters.")
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          NormalizeUsername(username),
		PasswordHash:      string(hash),
		Role:              role,
		Profile: Profile{
			Name:             strings.TrimSpace(profile.Name),
			ShopBusinessName: strings.TrimSpace(profile.ShopBusinessName),
			Locality:         strings.TrimSpace(profile.Locality),
			ContactNumber:    strings.TrimSpace(profile.ContactNumber),
		},
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// NormalizeUsername returns the canonical form used for uniqueness checks
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// VerifyPassword checks the password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Actor returns the identity used to authorize this user's actions
func (u *User) Actor() *Actor {
	return NewActor(u.ID, u.Username, u.Role)
}

// DisplayNameOrUsername returns the display name if set, otherwise the username
func (u *User) DisplayNameOrUsername() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
