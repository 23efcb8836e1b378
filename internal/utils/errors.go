package utils

import "errors"

// Common application errors used across services.
var (
	ErrNotFound        = errors.New("NOT_FOUND")
	ErrValidation      = errors.New("VALIDATION_FAILED")
	ErrMalformedImport = errors.New("MALFORMED_IMPORT")
	ErrMalformedCSV    = errors.New("MALFORMED_CSV")
	ErrEmptyQuery      = errors.New("EMPTY_QUERY")
)
