package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrActorMissing):
		Unauthorized(w, "Authentication required")

	// Payroll domain errors. Approval checks first: they wrap ErrInsufficientPermissions.
	case errors.Is(err, payroll.ErrPayrollApprovalForbidden):
		Forbidden(w, "Only admin can approve or reject payroll")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrExportNotFound):
		NotFound(w, "Payroll export not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this employee and period")
	case errors.Is(err, payroll.ErrPayrollRecordFinalized):
		Fail(w, http.StatusConflict, "FINALIZED", "Paid payroll records cannot be modified", nil)
	case errors.Is(err, payroll.ErrPayrollRecordModified):
		Fail(w, http.StatusConflict, "STALE_RECORD", "Payroll record was changed by another request, reload and retry", nil)
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		Fail(w, http.StatusConflict, "INVALID_TRANSITION", err.Error(), nil)

	// User domain errors
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrLoginIDExists):
		Conflict(w, "Login ID already assigned")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
