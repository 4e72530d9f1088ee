package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
	"github.com/shoppu-io/shoppu-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Role         enums.UserRole
	IsActive     *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if role == "" {
		role = enums.UserRoleCustomer
	}

	return &models.User{
		ID:           uuid.New(),
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
		IsActive:     isActive,
	}
}
