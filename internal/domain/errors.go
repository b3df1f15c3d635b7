package domain

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrInvalidLegalForm   = errors.New("invalid legal form")
	ErrInvalidFiscalMonth = errors.New("fiscal closing month must be between 1 and 12")
	ErrInvalidSchedule    = errors.New("invalid payment schedule")
	ErrInvalidHorizon     = errors.New("horizon months out of range")
)
