package dto

import (
	"time"

	"github.com/spec-kit/shift-swap-service/internal/domain"
)

// UserRegisterRequest payload for new accounts.
type UserRegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
	StoreID    string `json:"storeId" validate:"required"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse is returned by login and registration.
type SessionResponse struct {
	User domain.User  `json:"user"`
	Auth AuthResponse `json:"auth"`
}
