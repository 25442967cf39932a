package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP status codes by
// the central error handler. Reason strings are short and machine-checkable.
var (
	// Invalid input (400).
	ErrInvalidNIF       = errors.New("invalid nif")
	ErrInvalidPassword  = errors.New("password must be at least 8 characters with one uppercase letter and one digit")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidBalance   = errors.New("balance must be a non-negative number")
	ErrInvalidLimitDate = errors.New("limit date must be in the future")
	ErrInvalidName      = errors.New("name must contain only letters, spaces, and hyphens")
	ErrInvalidDiscount  = errors.New("canteen discount must be an integer between 0 and 100")
	ErrInvalidDateRange = errors.New("from must be before to")
	ErrAssigneeInactive = errors.New("assigned user is inactive")

	// Authentication and authorization (401/403).
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrForbidden          = errors.New("access forbidden")
	ErrWrongPassword      = errors.New("current password is incorrect")

	// Missing resources (404).
	ErrUserNotFound       = errors.New("user not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrTaskNotFound       = errors.New("task not found")

	// Conflicts (409).
	ErrUserExists       = errors.New("username already taken")
	ErrNIFExists        = errors.New("nif already registered")
	ErrDepartmentExists = errors.New("department name must be unique")
	ErrDepartmentInUse  = errors.New("department cannot be deleted while it has associated users")
)
