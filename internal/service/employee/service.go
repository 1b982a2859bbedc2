package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
	serviceAuth "github.com/cmlabs-hris/hrms-payroll-go/internal/service/auth"
)

// Transactor runs fn atomically; repositories must be called with the ctx it receives.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type EmployeeServiceImpl struct {
	tx           Transactor
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	loginIDs     *employee.LoginIDGenerator
}

func NewEmployeeService(
	tx Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	loginIDs *employee.LoginIDGenerator,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		loginIDs:     loginIDs,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !user.CanManageEmployees(actor.Role) {
		return employee.EmployeeResponse{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	role := user.Role(req.Role)
	// Only admins may mint other admins.
	if role == user.RoleAdmin && actor.Role != user.RoleAdmin {
		return employee.EmployeeResponse{}, user.ErrInsufficientPermissions
	}

	joiningDate, _ := validator.IsValidDate(req.JoiningDate)

	passwordHash, err := serviceAuth.HashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// A serial burned by a failed insert leaves a gap; it is never reused.
	loginID, err := s.loginIDs.Generate(ctx, req.FirstName, req.LastName, joiningDate)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.Create(txCtx, employee.Employee{
			LoginID:          loginID,
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			Email:            req.Email,
			Department:       req.Department,
			Position:         req.Position,
			JoiningDate:      joiningDate,
			EmploymentStatus: employee.EmploymentStatusActive,
			BaseSalary:       req.BaseSalary,
		})
		if err != nil {
			return err
		}

		account, err := s.userRepo.Create(txCtx, user.User{
			EmployeeID:   &emp.ID,
			Email:        req.Email,
			PasswordHash: &passwordHash,
			Role:         role,
		})
		if err != nil {
			if errors.Is(err, user.ErrUserEmailExists) {
				return employee.ErrEmailExists
			}
			return err
		}

		if err := s.employeeRepo.AttachUser(txCtx, emp.ID, account.ID); err != nil {
			return err
		}
		emp.UserID = &account.ID

		created = emp
		return nil
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) || errors.Is(err, employee.ErrLoginIDExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "login_id", created.LoginID, "created_by", actor.UserID)

	return mapEmployeeToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Employees can only view their own data
	if !user.CanViewEmployees(actor.Role) && !actor.Owns(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return mapEmployeeToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if !user.CanViewEmployees(actor.Role) {
		return employee.ListEmployeeResponse{}, user.ErrInsufficientPermissions
	}

	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		TotalCount: len(responses),
	}, nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               emp.ID,
		UserID:           emp.UserID,
		LoginID:          emp.LoginID,
		FirstName:        emp.FirstName,
		LastName:         emp.LastName,
		FullName:         emp.FullName(),
		Email:            emp.Email,
		Department:       emp.Department,
		Position:         emp.Position,
		AvatarURL:        emp.AvatarURL,
		JoiningDate:      emp.JoiningDate.Format("2006-01-02"),
		EmploymentStatus: string(emp.EmploymentStatus),
		BaseSalary:       emp.BaseSalary,
		CreatedAt:        emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        emp.UpdatedAt.Format(time.RFC3339),
	}
}
