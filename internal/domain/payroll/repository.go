package payroll

import "context"

// PayrollRepository defines data access methods for payroll records.
type PayrollRepository interface {
	// CreatePayrollRecord returns ErrPayrollRecordAlreadyExists when the employee already has a record for the period.
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
	// UpdatePayrollRecord persists every mutable column. It refuses to overwrite a paid record.
	UpdatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	DeletePayrollRecord(ctx context.Context, id string) error
}
