package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not permitted for this actor")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrValidation         = errors.New("invalid input")
	ErrInvalidTransition  = errors.New("task status does not permit this transition")
)
