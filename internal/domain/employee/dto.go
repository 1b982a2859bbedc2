package employee

import (
	"strings"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email"`
	Department  *string          `json:"department,omitempty"`
	Position    *string          `json:"position,omitempty"`
	JoiningDate string           `json:"joining_date"` // YYYY-MM-DD
	BaseSalary  *decimal.Decimal `json:"base_salary,omitempty"`
	Role        string           `json:"role"`
	Password    string           `json:"password"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	}
	if !user.Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'admin', 'hr' or 'employee'"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	Search     *string `json:"search,omitempty"`
}

func (f EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Status != nil && !EmploymentStatus(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active', 'resigned' or 'terminated'"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string           `json:"id"`
	UserID           *string          `json:"user_id,omitempty"`
	LoginID          string           `json:"login_id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	FullName         string           `json:"full_name"`
	Email            string           `json:"email"`
	Department       *string          `json:"department,omitempty"`
	Position         *string          `json:"position,omitempty"`
	AvatarURL        *string          `json:"avatar_url,omitempty"`
	JoiningDate      string           `json:"joining_date"`
	EmploymentStatus string           `json:"employment_status"`
	BaseSalary       *decimal.Decimal `json:"base_salary,omitempty"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int                `json:"total_count"`
}
