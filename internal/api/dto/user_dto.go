package dto

import (
	"time"

	"github.com/jubbler/portal-service/internal/domain"
)

// PermissionsPayload mirrors the CLIENT section toggles.
type PermissionsPayload struct {
	CanViewProjects bool `json:"canViewProjects"`
	CanViewAccount  bool `json:"canViewAccount"`
	CanViewUsers    bool `json:"canViewUsers"`
}

// UserResponse is the account profile on the wire.
type UserResponse struct {
	ID          string             `json:"id"`
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Phone       string             `json:"phone,omitempty"`
	Role        domain.UserRole    `json:"role"`
	Status      domain.UserStatus  `json:"status"`
	CompanyID   string             `json:"companyId"`
	Permissions PermissionsPayload `json:"permissions"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// CreateUserRequest payload.
type CreateUserRequest struct {
	Email       string             `json:"email" validate:"required,email"`
	Name        string             `json:"name" validate:"required"`
	Phone       string             `json:"phone"`
	CompanyID   string             `json:"companyId"`
	Permissions PermissionsPayload `json:"permissions"`
}

// UpdateUserRequest payload; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name        *string             `json:"name"`
	Phone       *string             `json:"phone"`
	Permissions *PermissionsPayload `json:"permissions"`
}
