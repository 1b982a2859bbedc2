package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	UserID           *string
	LoginID          string
	FirstName        string
	LastName         string
	Email            string
	Department       *string
	Position         *string
	AvatarURL        *string
	JoiningDate      time.Time
	EmploymentStatus EmploymentStatus
	BaseSalary       *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

func (e Employee) Profile() Profile {
	return Profile{
		ID:         e.ID,
		UserID:     e.UserID,
		LoginID:    e.LoginID,
		FullName:   e.FullName(),
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		AvatarURL:  e.AvatarURL,
	}
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusResigned, EmploymentStatusTerminated:
		return true
	}
	return false
}

// Profile is the read-only view of an employee that other domains join against.
type Profile struct {
	ID         string
	UserID     *string
	LoginID    string
	FullName   string
	Email      string
	Department *string
	Position   *string
	AvatarURL  *string
}
