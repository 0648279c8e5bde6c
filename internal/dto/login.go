package dto

import (
	"time"

	"pritapia/internal/domain"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Totp     string `json:"totp,omitempty"`
}

// LoginResponse carries the principal's public fields plus the bearer token.
// Password and TOTP secret never appear here.
type LoginResponse struct {
	ID               string      `json:"id"`
	Username         string      `json:"username"`
	Email            string      `json:"email,omitempty"`
	FullName         string      `json:"fullName,omitempty"`
	Role             domain.Role `json:"role"`
	IsActive         bool        `json:"isActive"`
	TwoFactorEnabled bool        `json:"twoFactorEnabled"`
	CreatedAt        time.Time   `json:"createdAt"`
	LastLogin        *time.Time  `json:"lastLogin"`
	Token            string      `json:"token"`
}
