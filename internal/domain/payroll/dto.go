package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUEST DTOs ==========

type CreatePayrollRequest struct {
	EmployeeID    string            `json:"employee_id"`
	PeriodMonth   int               `json:"period_month"`
	PeriodYear    int               `json:"period_year"`
	BasicSalary   *decimal.Decimal  `json:"basic_salary"`
	Components    []SalaryComponent `json:"components"`
	PaymentMethod *string           `json:"payment_method,omitempty"`
	Remarks       *string           `json:"remarks,omitempty"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.PeriodMonth, r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "period_month must be 1-12 and period_year between 2000 and 9999"})
	}
	if r.BasicSalary == nil {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "is required"})
	} else if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	errs = append(errs, validateComponents(r.Components)...)
	if r.PaymentMethod != nil && !PaymentMethod(*r.PaymentMethod).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "must be 'bank_transfer', 'check' or 'cash'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayrollRequest struct {
	ID            string             `json:"-"`
	BasicSalary   *decimal.Decimal   `json:"basic_salary,omitempty"`
	Components    *[]SalaryComponent `json:"components,omitempty"`
	PaymentMethod *string            `json:"payment_method,omitempty"`
	Status        *string            `json:"status,omitempty"`
	Remarks       *string            `json:"remarks,omitempty"`
	PaymentDate   *string            `json:"payment_date,omitempty"` // YYYY-MM-DD
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasicSalary == nil && r.Components == nil && r.PaymentMethod == nil &&
		r.Status == nil && r.Remarks == nil && r.PaymentDate == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field must be provided"})
	}
	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.Components != nil {
		errs = append(errs, validateComponents(*r.Components)...)
	}
	if r.PaymentMethod != nil && !PaymentMethod(*r.PaymentMethod).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "must be 'bank_transfer', 'check' or 'cash'"})
	}
	if r.Status != nil && !PayrollStatus(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, pending, approved, paid, rejected"})
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ChangesAmounts reports whether the update requires the totals to be rebuilt.
func (r *UpdatePayrollRequest) ChangesAmounts() bool {
	return r.BasicSalary != nil || r.Components != nil
}

// ParsedPaymentDate returns the payment date, if any. Call after Validate.
func (r *UpdatePayrollRequest) ParsedPaymentDate() *time.Time {
	if r.PaymentDate == nil {
		return nil
	}
	date, ok := validator.IsValidDate(*r.PaymentDate)
	if !ok {
		return nil
	}
	return &date
}

func validateComponents(components []SalaryComponent) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, c := range components {
		prefix := fmt.Sprintf("components[%d]", i)
		if validator.IsEmpty(c.Name) {
			errs = append(errs, validator.ValidationError{Field: prefix + ".name", Message: "is required"})
		}
		if !c.Kind.IsValid() {
			errs = append(errs, validator.ValidationError{Field: prefix + ".kind", Message: "must be 'earning' or 'deduction'"})
		}
		if c.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: prefix + ".amount", Message: "must be non-negative"})
		}
	}
	return errs
}

// Validate checks the optional filter values supplied by a caller.
func (f PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.PeriodMonth != nil && (*f.PeriodMonth < 1 || *f.PeriodMonth > 12) {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if f.PeriodYear != nil && (*f.PeriodYear < 2000 || *f.PeriodYear > 9999) {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be between 2000 and 9999"})
	}
	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, pending, approved, paid, rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSE DTOs ==========

type PayrollRecordResponse struct {
	ID              string            `json:"id"`
	EmployeeID      string            `json:"employee_id"`
	EmployeeName    string            `json:"employee_name"`
	EmployeeEmail   string            `json:"employee_email"`
	Department      *string           `json:"department,omitempty"`
	Position        *string           `json:"position,omitempty"`
	AvatarURL       *string           `json:"avatar_url,omitempty"`
	PeriodMonth     int               `json:"period_month"`
	PeriodYear      int               `json:"period_year"`
	BasicSalary     decimal.Decimal   `json:"basic_salary"`
	Components      []SalaryComponent `json:"components"`
	TotalEarnings   decimal.Decimal   `json:"total_earnings"`
	GrossSalary     decimal.Decimal   `json:"gross_salary"`
	TotalDeductions decimal.Decimal   `json:"total_deductions"`
	NetSalary       decimal.Decimal   `json:"net_salary"`
	Status          string            `json:"status"`
	PaymentMethod   string            `json:"payment_method"`
	PaymentDate     *string           `json:"payment_date,omitempty"`
	Remarks         *string           `json:"remarks,omitempty"`
	ApprovedBy      *string           `json:"approved_by,omitempty"`
	ApprovedAt      *string           `json:"approved_at,omitempty"`
	CreatedBy       string            `json:"created_by"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

type ListPayrollResponse struct {
	Data    []PayrollRecordResponse `json:"data"`
	Summary Summary                 `json:"summary"`
}

type ExportPayrollResponse struct {
	FileName    string `json:"file_name"`
	URL         string `json:"url"`
	RecordCount int    `json:"record_count"`
}
