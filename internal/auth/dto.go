package auth

import (
	"github.com/ratewise/ratewise-backend/internal/users"
)

// SignupRequest captures the public self-registration payload. Signup always
// produces a regular user account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,account_password"`
	Address  string `json:"address" validate:"max=400"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest carries a credential rotation for the caller.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,account_password"`
}

// AuthResponse contains the token and user produced by signup or login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
