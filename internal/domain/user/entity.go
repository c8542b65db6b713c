package user

import "time"

type Role string

const (
	RoleSysadmin Role = "sysadmin" // Full access, including deletes
	RoleAdmin    Role = "admin"    // Can approve leave and manage users
	RoleUser     Role = "user"     // Regular employee
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Designation  *string
	Role         Role
	IsActive     bool
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsApprover checks if user can decide on other users' leave requests
func (u *User) IsApprover() bool {
	return u.Role == RoleAdmin || u.Role == RoleSysadmin
}

// IsSysadmin checks if user has full administrative access
func (u *User) IsSysadmin() bool {
	return u.Role == RoleSysadmin
}
