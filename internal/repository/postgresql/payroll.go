package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollRecordColumns = `
	pr.id, pr.employee_id, pr.period_month, pr.period_year, pr.basic_salary, pr.components,
	pr.total_earnings, pr.gross_salary, pr.total_deductions, pr.net_salary,
	pr.status, pr.payment_method, pr.payment_date, pr.remarks,
	pr.approved_by, pr.approved_at, pr.created_by, pr.created_at, pr.updated_at`

const payrollEmployeeColumns = `
	TRIM(e.first_name || ' ' || e.last_name) AS employee_name, e.email, e.department, e.position, e.avatar_url`

func payrollRecordDest(rec *payroll.PayrollRecord, components *[]byte) []any {
	return []any{
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BasicSalary, components,
		&rec.TotalEarnings, &rec.GrossSalary, &rec.TotalDeductions, &rec.NetSalary,
		&rec.Status, &rec.PaymentMethod, &rec.PaymentDate, &rec.Remarks,
		&rec.ApprovedBy, &rec.ApprovedAt, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	}
}

func withEmployeeDest(rec *payroll.PayrollRecord, dest []any) []any {
	return append(dest, &rec.EmployeeName, &rec.EmployeeEmail, &rec.Department, &rec.Position, &rec.AvatarURL)
}

func decodeComponents(rec *payroll.PayrollRecord, raw []byte) error {
	rec.Components = []payroll.SalaryComponent{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &rec.Components); err != nil {
		return fmt.Errorf("failed to decode salary components of payroll record %s: %w", rec.ID, err)
	}
	return nil
}

func encodeComponents(components []payroll.SalaryComponent) ([]byte, error) {
	if components == nil {
		components = []payroll.SalaryComponent{}
	}
	raw, err := json.Marshal(components)
	if err != nil {
		return nil, fmt.Errorf("failed to encode salary components: %w", err)
	}
	return raw, nil
}

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll record id: %w", err)
	}
	componentsJSON, err := encodeComponents(record.Components)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	query := `
		INSERT INTO payroll_records AS pr (
			id, employee_id, period_month, period_year, basic_salary, components,
			total_earnings, gross_salary, total_deductions, net_salary,
			status, payment_method, payment_date, remarks, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING` + payrollRecordColumns

	var rec payroll.PayrollRecord
	var componentsBytes []byte
	err = q.QueryRow(ctx, query,
		id.String(), record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.BasicSalary, componentsJSON,
		record.TotalEarnings, record.GrossSalary, record.TotalDeductions, record.NetSalary,
		record.Status, record.PaymentMethod, record.PaymentDate, record.Remarks, record.CreatedBy,
	).Scan(payrollRecordDest(&rec, &componentsBytes)...)
	if err != nil {
		if isUniqueViolation(err, "uk_payroll_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	if err := decodeComponents(&rec, componentsBytes); err != nil {
		return payroll.PayrollRecord{}, err
	}
	return rec, nil
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	if !isUUID(id) {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + payrollRecordColumns + `,` + payrollEmployeeColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1
	`

	var rec payroll.PayrollRecord
	var componentsBytes []byte
	err := q.QueryRow(ctx, query, id).Scan(withEmployeeDest(&rec, payrollRecordDest(&rec, &componentsBytes))...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	if err := decodeComponents(&rec, componentsBytes); err != nil {
		return payroll.PayrollRecord{}, err
	}
	return rec, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	if filter.EmployeeID != nil && !isUUID(*filter.EmployeeID) {
		return []payroll.PayrollRecord{}, nil
	}
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE 1 = 1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	selectQuery := `
		SELECT` + payrollRecordColumns + `,` + payrollEmployeeColumns +
		baseQuery + `
		ORDER BY pr.period_year DESC, pr.period_month DESC, pr.created_at DESC
	`

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := []payroll.PayrollRecord{}
	for rows.Next() {
		var rec payroll.PayrollRecord
		var componentsBytes []byte
		if err := rows.Scan(withEmployeeDest(&rec, payrollRecordDest(&rec, &componentsBytes))...); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		if err := decodeComponents(&rec, componentsBytes); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

func (r *payrollRepository) UpdatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if !isUUID(record.ID) {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	q := GetQuerier(ctx, r.db)

	componentsJSON, err := encodeComponents(record.Components)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	// record.UpdatedAt is the version the caller loaded. Any write in between,
	// including a pay, makes this one touch no row.
	query := `
		UPDATE payroll_records AS pr
		SET basic_salary = $2, components = $3,
			total_earnings = $4, gross_salary = $5, total_deductions = $6, net_salary = $7,
			status = $8, payment_method = $9, payment_date = $10, remarks = $11,
			approved_by = $12, approved_at = $13, updated_at = NOW()
		WHERE pr.id = $1 AND pr.status <> 'paid' AND pr.updated_at = $14
		RETURNING` + payrollRecordColumns

	var rec payroll.PayrollRecord
	var componentsBytes []byte
	err = q.QueryRow(ctx, query,
		record.ID, record.BasicSalary, componentsJSON,
		record.TotalEarnings, record.GrossSalary, record.TotalDeductions, record.NetSalary,
		record.Status, record.PaymentMethod, record.PaymentDate, record.Remarks,
		record.ApprovedBy, record.ApprovedAt, record.UpdatedAt,
	).Scan(payrollRecordDest(&rec, &componentsBytes)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, r.explainMissingRow(ctx, record.ID, payroll.ErrPayrollRecordModified)
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record: %w", err)
	}

	if err := decodeComponents(&rec, componentsBytes); err != nil {
		return payroll.PayrollRecord{}, err
	}
	return rec, nil
}

func (r *payrollRepository) DeletePayrollRecord(ctx context.Context, id string) error {
	if !isUUID(id) {
		return payroll.ErrPayrollRecordNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_records WHERE id = $1 AND status <> 'paid' RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.explainMissingRow(ctx, id, payroll.ErrPayrollRecordNotFound)
		}
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	return nil
}

// explainMissingRow runs after a guarded write touched nothing. A paid row is
// finalized, a missing row is not found, any other row gets otherwise.
func (r *payrollRepository) explainMissingRow(ctx context.Context, id string, otherwise error) error {
	q := GetQuerier(ctx, r.db)

	var status payroll.PayrollStatus
	err := q.QueryRow(ctx, `SELECT status FROM payroll_records WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to check payroll record status: %w", err)
	}
	if status == payroll.PayrollStatusPaid {
		return payroll.ErrPayrollRecordFinalized
	}
	return otherwise
}
