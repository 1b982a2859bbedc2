package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type fakeUserRepository struct {
	byIdentifier map[string]user.User
	err          error
}

func (f *fakeUserRepository) GetByIdentifier(_ context.Context, identifier string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.byIdentifier[identifier]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetByID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	return u, nil
}

func newTestAuthService(t *testing.T, users ...user.User) auth.AuthService {
	t.Helper()

	repo := &fakeUserRepository{byIdentifier: make(map[string]user.User)}
	for _, u := range users {
		repo.byIdentifier[u.Email] = u
	}
	repo.byIdentifier["OIJODO20240001"] = users[0]

	jwtService, err := jwt.NewJWTService(testSecret, "1h")
	require.NoError(t, err)

	return NewAuthService(repo, jwtService)
}

func testUser(t *testing.T, password string) user.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	employeeID := "emp-1"
	return user.User{
		ID:           "user-1",
		EmployeeID:   &employeeID,
		Email:        "john@example.com",
		PasswordHash: &hash,
		Role:         user.RoleEmployee,
	}
}

func TestLogin_WithEmail(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "password123"))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Identifier: "John@Example.com", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "employee", resp.Role)
	require.NotNil(t, resp.EmployeeID)
	assert.Equal(t, "emp-1", *resp.EmployeeID)
}

func TestLogin_WithLoginID(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "password123"))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Identifier: "oijodo20240001", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "password123"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Identifier: "john@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "password123"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Identifier: "nobody@example.com", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UserWithoutPassword(t *testing.T) {
	u := testUser(t, "password123")
	u.PasswordHash = nil
	svc := newTestAuthService(t, u)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Identifier: "john@example.com", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_Validation(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "password123"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Identifier: "not an id", Password: ""})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "identifier")
	assert.Contains(t, fields, "password")
}

func TestLogin_RepositoryFailure(t *testing.T) {
	jwtService, err := jwt.NewJWTService(testSecret, "1h")
	require.NoError(t, err)
	svc := NewAuthService(&fakeUserRepository{err: errors.New("connection refused")}, jwtService)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Identifier: "john@example.com", Password: "password123"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}
