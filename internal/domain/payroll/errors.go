package payroll

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
)

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordFinalized     = errors.New("payroll record is finalized")
	ErrInvalidStatusTransition    = errors.New("invalid payroll status transition")
	ErrPayrollRecordModified      = errors.New("payroll record was modified by another request")
	ErrExportNotFound             = errors.New("payroll export not found")
	ErrPayrollApprovalForbidden   = fmt.Errorf("%w: only admin can approve or reject payroll", user.ErrInsufficientPermissions)
)
