package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByIdentifier(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	emp := seedEmployee(t, ctx, db, "OIJODO20240001", "John", "Doe", "john@example.com")
	u := seedUser(t, ctx, db, &emp.ID, "john@example.com", user.RoleEmployee)
	require.NoError(t, postgresql.NewEmployeeRepository(db).AttachUser(ctx, emp.ID, u.ID))

	repo := postgresql.NewUserRepository(db)

	t.Run("by email, case insensitive", func(t *testing.T) {
		found, err := repo.GetByIdentifier(ctx, "John@Example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
		require.NotNil(t, found.EmployeeID)
		assert.Equal(t, emp.ID, *found.EmployeeID)
	})

	t.Run("by login id", func(t *testing.T) {
		found, err := repo.GetByIdentifier(ctx, "oijodo20240001")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := repo.GetByIdentifier(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedUser(t, ctx, db, nil, "admin@example.com", user.RoleAdmin)

	hash := "x"
	_, err := postgresql.NewUserRepository(db).Create(ctx, user.User{Email: "admin@example.com", PasswordHash: &hash, Role: user.RoleHR})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestEmployeeRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	john := seedEmployee(t, ctx, db, "OIJODO20240001", "John", "Doe", "john@example.com")
	seedEmployee(t, ctx, db, "OIJASM20240002", "Jane", "Smith", "jane@example.com")

	t.Run("lookup returns profile", func(t *testing.T) {
		profile, err := repo.Lookup(ctx, john.ID)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", profile.FullName)
		assert.Equal(t, "OIJODO20240001", profile.LoginID)
	})

	t.Run("missing employee", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "0192d3a4-0000-7000-8000-000000000000")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("duplicate login id", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{
			LoginID: "OIJODO20240001", FirstName: "Other", Email: "other@example.com", JoiningDate: john.JoiningDate,
		})
		assert.ErrorIs(t, err, employee.ErrLoginIDExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{
			LoginID: "OIOTXX20240009", FirstName: "Other", Email: "john@example.com", JoiningDate: john.JoiningDate,
		})
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	t.Run("list with search", func(t *testing.T) {
		search := "smith"
		list, err := repo.List(ctx, employee.EmployeeFilter{Search: &search})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Jane", list[0].FirstName)
	})
}
