package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL and recreates the schema from migrations.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)

	_, err = db.Exec(ctx, `DROP TABLE IF EXISTS payroll_records, users, employees CASCADE`)
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	return db
}

func seedEmployee(t *testing.T, ctx context.Context, db *database.DB, loginID, first, last, email string) employee.Employee {
	t.Helper()

	dept := "Engineering"
	salary := decimal.NewFromInt(50000)
	created, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{
		LoginID:     loginID,
		FirstName:   first,
		LastName:    last,
		Email:       email,
		Department:  &dept,
		JoiningDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		BaseSalary:  &salary,
	})
	require.NoError(t, err)
	return created
}

func seedUser(t *testing.T, ctx context.Context, db *database.DB, employeeID *string, email string, role user.Role) user.User {
	t.Helper()

	hash := "$2a$10$abcdefghijklmnopqrstuv"
	created, err := postgresql.NewUserRepository(db).Create(ctx, user.User{
		EmployeeID:   employeeID,
		Email:        email,
		PasswordHash: &hash,
		Role:         role,
	})
	require.NoError(t, err)
	return created
}
