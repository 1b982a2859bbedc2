package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/storage"
)

// EventPublisher pushes events to a user's open notification streams.
type EventPublisher interface {
	Publish(userID string, event sse.Event)
}

type PayrollServiceImpl struct {
	payrollRepo     payroll.PayrollRepository
	directory       employee.Directory
	fileStorage     storage.FileStorage
	publisher       EventPublisher
	exportURLExpiry time.Duration
	now             func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	directory employee.Directory,
	fileStorage storage.FileStorage,
	publisher EventPublisher,
	exportURLExpiry time.Duration,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:     payrollRepo,
		directory:       directory,
		fileStorage:     fileStorage,
		publisher:       publisher,
		exportURLExpiry: exportURLExpiry,
		now:             time.Now,
	}
}

// CreatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !user.CanCreatePayroll(actor.Role) {
		return payroll.PayrollRecordResponse{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	profile, err := s.directory.Lookup(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.PayrollRecordResponse{}, employee.ErrEmployeeNotFound
		}
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	paymentMethod := payroll.PaymentMethodBankTransfer
	if req.PaymentMethod != nil {
		paymentMethod = payroll.PaymentMethod(*req.PaymentMethod)
	}

	components := make([]payroll.SalaryComponent, len(req.Components))
	copy(components, req.Components)

	record := payroll.PayrollRecord{
		EmployeeID:    profile.ID,
		PeriodMonth:   req.PeriodMonth,
		PeriodYear:    req.PeriodYear,
		BasicSalary:   *req.BasicSalary,
		Components:    components,
		Status:        payroll.PayrollStatusDraft,
		PaymentMethod: paymentMethod,
		Remarks:       req.Remarks,
		CreatedBy:     actor.UserID,
	}
	record.Rebuild()

	created, err := s.payrollRepo.CreatePayrollRecord(ctx, record)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
			return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to create payroll record: %w", err)
	}
	withProfile(&created, profile)

	slog.Info("payroll record created",
		"payroll_id", created.ID,
		"employee_id", created.EmployeeID,
		"period", fmt.Sprintf("%04d-%02d", created.PeriodYear, created.PeriodMonth),
		"created_by", actor.UserID,
	)

	return mapToRecordResponse(created), nil
}

// GetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !user.CanViewAllPayroll(actor.Role) && !user.CanViewOwnPayroll(actor.Role) {
		return payroll.PayrollRecordResponse{}, user.ErrInsufficientPermissions
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	// Someone else's record looks exactly like a missing one.
	if !user.CanViewAllPayroll(actor.Role) && !actor.Owns(record.EmployeeID) {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}

	return mapToRecordResponse(record), nil
}

// ListPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayroll(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if !user.CanViewAllPayroll(actor.Role) {
		return payroll.ListPayrollResponse{}, user.ErrInsufficientPermissions
	}

	records, err := s.listRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	return payroll.ListPayrollResponse{
		Data:    mapToRecordResponses(records),
		Summary: payroll.Summarize(records),
	}, nil
}

// ListMyPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMyPayroll(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if !user.CanViewOwnPayroll(actor.Role) {
		return payroll.ListPayrollResponse{}, user.ErrInsufficientPermissions
	}

	if actor.EmployeeID == nil {
		return payroll.ListPayrollResponse{
			Data:    []payroll.PayrollRecordResponse{},
			Summary: payroll.Summarize(nil),
		}, nil
	}
	employeeID := *actor.EmployeeID
	filter.EmployeeID = &employeeID

	records, err := s.listRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	return payroll.ListPayrollResponse{
		Data:    mapToRecordResponses(records),
		Summary: payroll.Summarize(records),
	}, nil
}

func (s *PayrollServiceImpl) listRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	payroll.SortNewestFirst(records)

	return records, nil
}

// UpdatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !user.CanEditPayroll(actor.Role) {
		return payroll.PayrollRecordResponse{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if record.IsFinalized() {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordFinalized
	}

	previousStatus := record.Status

	if req.BasicSalary != nil {
		record.BasicSalary = *req.BasicSalary
	}
	if req.Components != nil {
		components := make([]payroll.SalaryComponent, len(*req.Components))
		copy(components, *req.Components)
		record.Components = components
	}
	if req.ChangesAmounts() {
		record.Rebuild()
	}
	if req.PaymentMethod != nil {
		record.PaymentMethod = payroll.PaymentMethod(*req.PaymentMethod)
	}
	if req.Remarks != nil {
		record.Remarks = req.Remarks
	}
	if date := req.ParsedPaymentDate(); date != nil {
		record.PaymentDate = date
	}

	if req.Status != nil {
		if err := payroll.ApplyTransition(&record, payroll.PayrollStatus(*req.Status), actor, s.now()); err != nil {
			return payroll.PayrollRecordResponse{}, err
		}
	}

	updated, err := s.payrollRepo.UpdatePayrollRecord(ctx, record)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordFinalized) ||
			errors.Is(err, payroll.ErrPayrollRecordNotFound) ||
			errors.Is(err, payroll.ErrPayrollRecordModified) {
			return payroll.PayrollRecordResponse{}, err
		}
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to update payroll record: %w", err)
	}
	carryJoinedFields(&updated, record)

	slog.Info("payroll record updated",
		"payroll_id", updated.ID,
		"status", updated.Status,
		"updated_by", actor.UserID,
	)

	if updated.Status != previousStatus {
		s.notifyStatusChanged(ctx, updated, previousStatus, actor)
	}

	return mapToRecordResponse(updated), nil
}

// DeletePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayroll(ctx context.Context, id string) error {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !user.CanDeletePayroll(actor.Role) {
		return user.ErrInsufficientPermissions
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if record.IsFinalized() {
		return payroll.ErrPayrollRecordFinalized
	}

	if err := s.payrollRepo.DeletePayrollRecord(ctx, id); err != nil {
		return err
	}

	slog.Info("payroll record deleted", "payroll_id", id, "deleted_by", actor.UserID)
	return nil
}

// notifyStatusChanged is best effort: a missing user account or directory
// failure never fails the update that already committed.
func (s *PayrollServiceImpl) notifyStatusChanged(ctx context.Context, record payroll.PayrollRecord, from payroll.PayrollStatus, actor user.Actor) {
	if s.publisher == nil {
		return
	}

	profile, err := s.directory.Lookup(ctx, record.EmployeeID)
	if err != nil {
		slog.Warn("skipping payroll status notification", "payroll_id", record.ID, "error", err)
		return
	}
	if profile.UserID == nil {
		return
	}

	s.publisher.Publish(*profile.UserID, sse.Event{
		Name: string(notification.TypePayrollStatusChanged),
		Data: notification.PayrollStatusChanged{
			PayrollID:   record.ID,
			EmployeeID:  record.EmployeeID,
			PeriodMonth: record.PeriodMonth,
			PeriodYear:  record.PeriodYear,
			From:        string(from),
			To:          string(record.Status),
			ChangedBy:   actor.UserID,
			ChangedAt:   s.now(),
		},
	})
}

func withProfile(r *payroll.PayrollRecord, p employee.Profile) {
	name, email := p.FullName, p.Email
	r.EmployeeName = &name
	r.EmployeeEmail = &email
	r.Department = p.Department
	r.Position = p.Position
	r.AvatarURL = p.AvatarURL
}

func carryJoinedFields(dst *payroll.PayrollRecord, src payroll.PayrollRecord) {
	if dst.EmployeeName == nil {
		dst.EmployeeName = src.EmployeeName
		dst.EmployeeEmail = src.EmployeeEmail
		dst.Department = src.Department
		dst.Position = src.Position
		dst.AvatarURL = src.AvatarURL
	}
}

// ========== MAPPERS ==========

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	var employeeName, employeeEmail string
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeEmail != nil {
		employeeEmail = *r.EmployeeEmail
	}

	var paymentDate *string
	if r.PaymentDate != nil {
		s := r.PaymentDate.Format("2006-01-02")
		paymentDate = &s
	}

	var approvedAt *string
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}

	components := r.Components
	if components == nil {
		components = []payroll.SalaryComponent{}
	}

	return payroll.PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    employeeName,
		EmployeeEmail:   employeeEmail,
		Department:      r.Department,
		Position:        r.Position,
		AvatarURL:       r.AvatarURL,
		PeriodMonth:     r.PeriodMonth,
		PeriodYear:      r.PeriodYear,
		BasicSalary:     r.BasicSalary,
		Components:      components,
		TotalEarnings:   r.TotalEarnings,
		GrossSalary:     r.GrossSalary,
		TotalDeductions: r.TotalDeductions,
		NetSalary:       r.NetSalary,
		Status:          string(r.Status),
		PaymentMethod:   string(r.PaymentMethod),
		PaymentDate:     paymentDate,
		Remarks:         r.Remarks,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      approvedAt,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, mapToRecordResponse(r))
	}
	return responses
}
