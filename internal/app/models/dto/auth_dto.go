package dto

import (
	"time"

	"github.com/yigit/sempozyum/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh and logout requests
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest is a self-registration; accounts always start as AUTHOR
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	FirstName   string `json:"firstName" binding:"required,max=100"`
	LastName    string `json:"lastName" binding:"required,max=100"`
	Title       string `json:"title" binding:"max=100"`
	Institution string `json:"institution" binding:"max=255"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName" binding:"required,max=100"`
	LastName    string `json:"lastName" binding:"required,max=100"`
	Title       string `json:"title" binding:"max=100"`
	Institution string `json:"institution" binding:"max=255"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Title       string     `json:"title,omitempty"`
	Institution string     `json:"institution,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser converts a user model to its public representation
func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Title:       u.Title,
		Institution: u.Institution,
		Role:        string(u.RoleType),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// FromUsers converts a slice of users
func FromUsers(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// CreateUserRequest is an admin-created account with an explicit role
type CreateUserRequest struct {
	RegisterRequest
	Role models.RoleType `json:"role" binding:"required,oneof=ADMIN AUTHOR REVIEWER"`
}

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role models.RoleType `json:"role" binding:"required,oneof=ADMIN AUTHOR REVIEWER"`
}

// UpdateStatusRequest activates or deactivates a user
type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
