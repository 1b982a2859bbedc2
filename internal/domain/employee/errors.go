package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrLoginIDExists        = errors.New("login id already assigned")
	ErrInvalidLoginIDPrefix = errors.New("login id prefix must be 1-6 uppercase letters")
)
