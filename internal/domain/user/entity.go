package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, the only role that approves or deletes payroll
	RoleHR       Role = "hr"       // Manages employees and prepares payroll
	RoleEmployee Role = "employee" // Self-service access to own records
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	EmployeeID   *string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
