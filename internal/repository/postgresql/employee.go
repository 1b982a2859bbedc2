package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.user_id, e.login_id, e.first_name, e.last_name, e.email,
	e.department, e.position, e.avatar_url, e.joining_date, e.employment_status,
	e.base_salary, e.created_at, e.updated_at`

func employeeDest(emp *employee.Employee) []any {
	return []any{
		&emp.ID, &emp.UserID, &emp.LoginID, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Department, &emp.Position, &emp.AvatarURL, &emp.JoiningDate, &emp.EmploymentStatus,
		&emp.BaseSalary, &emp.CreatedAt, &emp.UpdatedAt,
	}
}

// Lookup implements employee.Directory.
func (e *employeeRepositoryImpl) Lookup(ctx context.Context, id string) (employee.Profile, error) {
	emp, err := e.GetByID(ctx, id)
	if err != nil {
		return employee.Profile{}, err
	}
	return emp.Profile(), nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := `SELECT` + employeeColumns + ` FROM employees e WHERE e.id = $1`

	var emp employee.Employee
	if err := q.QueryRow(ctx, query, id).Scan(employeeDest(&emp)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
	}
	status := newEmployee.EmploymentStatus
	if status == "" {
		status = employee.EmploymentStatusActive
	}

	query := `
		INSERT INTO employees AS e (
			id, user_id, login_id, first_name, last_name, email,
			department, position, avatar_url, joining_date, employment_status, base_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING` + employeeColumns

	var created employee.Employee
	err = q.QueryRow(ctx, query,
		id.String(), newEmployee.UserID, newEmployee.LoginID, newEmployee.FirstName, newEmployee.LastName, newEmployee.Email,
		newEmployee.Department, newEmployee.Position, newEmployee.AvatarURL, newEmployee.JoiningDate, status, newEmployee.BaseSalary,
	).Scan(employeeDest(&created)...)
	if err != nil {
		switch {
		case isUniqueViolation(err, "uk_employees_email"):
			return employee.Employee{}, employee.ErrEmailExists
		case isUniqueViolation(err, "uk_employees_login_id"):
			return employee.Employee{}, employee.ErrLoginIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.email ILIKE $%d OR e.login_id ILIKE $%d)", argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("e.department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.employment_status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `SELECT` + employeeColumns + `
		FROM employees e
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.first_name ASC, e.last_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(employeeDest(&emp)...); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// AttachUser implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) AttachUser(ctx context.Context, employeeID, userID string) error {
	if !isUUID(employeeID) {
		return employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET user_id = $1, updated_at = NOW() WHERE id = $2`, userID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to attach user to employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
