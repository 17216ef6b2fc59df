package services

import "errors"

// Domain errors. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSpaceNotFound      = errors.New("space not found")
	ErrDuplicateRequest   = errors.New("collaboration request already exists")
	ErrRequestNotFound    = errors.New("collaboration request not found")
)
