package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentKind enum
type ComponentKind string

const (
	ComponentKindEarning   ComponentKind = "earning"
	ComponentKindDeduction ComponentKind = "deduction"
)

func (k ComponentKind) IsValid() bool {
	return k == ComponentKindEarning || k == ComponentKindDeduction
}

// SalaryComponent - one earning or deduction line of a payroll record.
// When IsPercentage is set, Amount is a percentage of basic salary (earnings)
// or of gross salary (deductions).
type SalaryComponent struct {
	Name         string          `json:"name"`
	Kind         ComponentKind   `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	IsPercentage bool            `json:"is_percentage"`
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft    PayrollStatus = "draft"
	PayrollStatusPending  PayrollStatus = "pending"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
	PayrollStatusRejected PayrollStatus = "rejected"
)

func (s PayrollStatus) IsValid() bool {
	switch s {
	case PayrollStatusDraft, PayrollStatusPending, PayrollStatusApproved, PayrollStatusPaid, PayrollStatusRejected:
		return true
	}
	return false
}

// PaymentMethod enum, informational only
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCash         PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodBankTransfer || m == PaymentMethodCheck || m == PaymentMethodCash
}

// PayrollRecord - one employee's pay for one month/year.
// GrossSalary, TotalEarnings, TotalDeductions and NetSalary are only ever written by Rebuild.
type PayrollRecord struct {
	ID              string
	EmployeeID      string
	PeriodMonth     int
	PeriodYear      int
	BasicSalary     decimal.Decimal
	Components      []SalaryComponent
	TotalEarnings   decimal.Decimal
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	Status          PayrollStatus
	PaymentMethod   PaymentMethod
	PaymentDate     *time.Time
	Remarks         *string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
	Department    *string
	Position      *string
	AvatarURL     *string
}

// IsFinalized reports whether the record is paid and therefore immutable.
func (r *PayrollRecord) IsFinalized() bool {
	return r.Status == PayrollStatusPaid
}
