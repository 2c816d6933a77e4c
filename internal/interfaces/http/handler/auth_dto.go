package handler

import (
	"time"

	"github.com/google/uuid"

	appidentity "github.com/streetmart/backend/internal/application/identity"
)

// =====================
// Auth Request DTOs
// =====================

// RegisterRequest represents the sign-up form
type RegisterRequest struct {
	Username         string `json:"username" binding:"max=100"`
	Password         string `json:"password" binding:"max=128"`
	Role             string `json:"role" example:"vendor"`
	Name             string `json:"name" binding:"max=100"`
	ShopBusinessName string `json:"shop_business_name" binding:"max=200"`
	Locality         string `json:"locality" binding:"max=100"`
	ContactNumber    string `json:"contact_number" binding:"max=20"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// =====================
// Auth Response DTOs
// =====================

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Role             string    `json:"role" example:"vendor"`
	DisplayName      string    `json:"display_name"`
	Name             string    `json:"name,omitempty"`
	ShopBusinessName string    `json:"shop_business_name,omitempty"`
	Locality         string    `json:"locality,omitempty"`
	ContactNumber    string    `json:"contact_number,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// LoginResponse represents the response body for successful login
type LoginResponse struct {
	Token         TokenResponse    `json:"token"`
	User          AuthUserResponse `json:"user"`
	DashboardPath string           `json:"dashboard_path" example:"/vendor/dashboard"`
}

// RefreshTokenResponse represents the response body for successful token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

func toAuthUserResponse(u appidentity.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Role:             u.Role.String(),
		DisplayName:      u.DisplayName,
		Name:             u.Name,
		ShopBusinessName: u.ShopBusinessName,
		Locality:         u.Locality,
		ContactNumber:    u.ContactNumber,
		CreatedAt:        u.CreatedAt,
	}
}
