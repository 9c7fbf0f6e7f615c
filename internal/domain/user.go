package domain

import "time"

// UserRole separates portal clients from support agents.
type UserRole string

const (
	RoleClient     UserRole = "CLIENT"
	RoleSuperadmin UserRole = "SUPERADMIN"
)

// UserStatus represents the approval lifecycle of a portal account.
type UserStatus string

const (
	UserStatusApproved UserStatus = "APPROVED"
	UserStatusPending  UserStatus = "PENDING"
	UserStatusRejected UserStatus = "REJECTED"
)

// Permissions gates optional portal sections for CLIENT users.
// SUPERADMIN users ignore these flags.
type Permissions struct {
	CanViewProjects bool
	CanViewAccount  bool
	CanViewUsers    bool
}

// User is a portal account, either a client contact or a support agent.
type User struct {
	ID          string
	Email       string
	Name        string
	Phone       string
	Role        UserRole
	Status      UserStatus
	CompanyID   string
	CreatedBy   *string
	Permissions Permissions
	CreatedAt   time.Time
}
