package auth

import (
	"strings"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
)

// LoginRequest accepts either an email address or a generated login ID as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Identifier = strings.TrimSpace(r.Identifier)

	if validator.IsEmpty(r.Identifier) {
		errs = append(errs, validator.ValidationError{
			Field:   "identifier",
			Message: "identifier is required",
		})
	} else if len(r.Identifier) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "identifier",
			Message: "identifier must not exceed 254 characters",
		})
	} else if !validator.IsValidEmail(r.Identifier) && !validator.IsValidLoginID(strings.ToUpper(r.Identifier)) {
		errs = append(errs, validator.ValidationError{
			Field:   "identifier",
			Message: "identifier must be an email address or a login ID",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// NormalizedIdentifier lowercases emails and uppercases login IDs.
func (r *LoginRequest) NormalizedIdentifier() string {
	if strings.Contains(r.Identifier, "@") {
		return strings.ToLower(r.Identifier)
	}
	return strings.ToUpper(r.Identifier)
}

type TokenResponse struct {
	AccessToken          string  `json:"access_token"`
	AccessTokenExpiresIn int64   `json:"access_token_expires_in"`
	Role                 string  `json:"role"`
	EmployeeID           *string `json:"employee_id,omitempty"`
}
