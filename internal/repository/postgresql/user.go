package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `u.id, u.employee_id, u.email, u.password_hash, u.role, u.created_at, u.updated_at`

func userDest(u *user.User) []any {
	return []any{&u.ID, &u.EmployeeID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt}
}

// GetByIdentifier implements user.UserRepository.
func (r *userRepositoryImpl) GetByIdentifier(ctx context.Context, identifier string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON u.employee_id = e.id
		WHERE LOWER(u.email) = LOWER($1) OR e.login_id = UPPER($1)
		LIMIT 1
	`

	var found user.User
	if err := q.QueryRow(ctx, query, identifier).Scan(userDest(&found)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by identifier: %w", err)
	}
	return found, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	if !isUUID(id) {
		return user.User{}, user.ErrUserNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	var found user.User
	if err := q.QueryRow(ctx, query, id).Scan(userDest(&found)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return found, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	query := `
		INSERT INTO users AS u (id, employee_id, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var created user.User
	err = q.QueryRow(ctx, query, id.String(), newUser.EmployeeID, newUser.Email, newUser.PasswordHash, newUser.Role).
		Scan(userDest(&created)...)
	if err != nil {
		if isUniqueViolation(err, "uk_users_email") {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}
