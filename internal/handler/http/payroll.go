package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CreatePayroll(w http.ResponseWriter, r *http.Request)
	GetPayroll(w http.ResponseWriter, r *http.Request)
	ListPayroll(w http.ResponseWriter, r *http.Request)
	ListMyPayroll(w http.ResponseWriter, r *http.Request)
	UpdatePayroll(w http.ResponseWriter, r *http.Request)
	DeletePayroll(w http.ResponseWriter, r *http.Request)
	ExportPayroll(w http.ResponseWriter, r *http.Request)
	DownloadExport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) CreatePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record created", result)
}

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayroll(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePayrollFilter(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListPayroll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithSummary(w, result.Data, result.Summary)
}

func (h *payrollHandlerImpl) ListMyPayroll(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePayrollFilter(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListMyPayroll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithSummary(w, result.Data, result.Summary)
}

func (h *payrollHandlerImpl) UpdatePayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req payroll.UpdatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payrollService.UpdatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeletePayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	if err := h.payrollService.DeletePayroll(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted successfully", nil)
}

func (h *payrollHandlerImpl) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePayrollFilter(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ExportPayroll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DownloadExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, err := h.payrollService.DownloadExport(r.Context(), name)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", storage.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("failed to stream payroll export", "file", name, "error", err)
	}
}

// parsePayrollFilter reads period_month, period_year, status and employee_id.
// Range and enum checks are left to PayrollFilter.Validate.
func parsePayrollFilter(query url.Values) (payroll.PayrollFilter, error) {
	var filter payroll.PayrollFilter
	var errs validator.ValidationErrors

	if monthStr := query.Get("period_month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be an integer"})
		} else {
			filter.PeriodMonth = &month
		}
	}
	if yearStr := query.Get("period_year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be an integer"})
		} else {
			filter.PeriodYear = &year
		}
	}
	if status := query.Get("status"); status != "" {
		s := payroll.PayrollStatus(status)
		filter.Status = &s
	}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if len(errs) > 0 {
		return payroll.PayrollFilter{}, errs
	}
	return filter, nil
}
