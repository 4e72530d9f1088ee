package auth

import (
	"github.com/shoppu-io/shoppu-backend/internal/users"
)

// RegisterRequest contains the payload required to create a customer account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest carries the credentials presented at login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted access token and the authenticated user.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
