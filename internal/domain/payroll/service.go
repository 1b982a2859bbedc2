package payroll

import (
	"context"
	"io"
)

// PayrollService is the payroll use-case surface. The acting user is read from ctx.
type PayrollService interface {
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollRecordResponse, error)
	GetPayroll(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayroll(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	ListMyPayroll(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	UpdatePayroll(ctx context.Context, req UpdatePayrollRequest) (PayrollRecordResponse, error)
	DeletePayroll(ctx context.Context, id string) error
	ExportPayroll(ctx context.Context, filter PayrollFilter) (ExportPayrollResponse, error)
	// DownloadExport streams a workbook written by ExportPayroll. The caller closes it.
	DownloadExport(ctx context.Context, fileName string) (io.ReadCloser, error)
}
