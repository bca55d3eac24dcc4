package domain

import "errors"

// Domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrValidation     = errors.New("validation failed")
	ErrFetch          = errors.New("failed to fetch budget state")
	ErrInternalError  = errors.New("internal error")
	ErrBackupDisabled = errors.New("backup storage is not configured")
)

// Validation constants
const (
	MaxNameLength = 255
	MinAnchorDay  = 1
	MaxAnchorDay  = 31
)
