package notification

import "time"

type EventType string

const (
	TypePayrollStatusChanged EventType = "payroll.status_changed"
)

// PayrollStatusChanged is pushed to an employee when one of their payroll records moves state.
type PayrollStatusChanged struct {
	PayrollID   string    `json:"payroll_id"`
	EmployeeID  string    `json:"employee_id"`
	PeriodMonth int       `json:"period_month"`
	PeriodYear  int       `json:"period_year"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ChangedBy   string    `json:"changed_by"`
	ChangedAt   time.Time `json:"changed_at"`
}
