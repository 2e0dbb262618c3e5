package utils

import "errors"

var (
	// auth layer
	ErrMissingCredential  = errors.New("authorization header missing")
	ErrInvalidCredential  = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")

	// usage ledger
	ErrQuotaExceeded = errors.New("usage limit exceeded")

	// extraction
	ErrInvalidImage        = errors.New("invalid image payload")
	ErrUpstreamUnavailable = errors.New("inference service unavailable")
	ErrExtractionParse     = errors.New("no JSON object in model reply")

	// sheet sync
	ErrSheetsNotLinked        = errors.New("no spreadsheet linked")
	ErrSheetsAuthExpired      = errors.New("google authorization expired")
	ErrSheetsNotFound         = errors.New("spreadsheet not found")
	ErrSheetsPermissionDenied = errors.New("spreadsheet permission denied")

	// generic
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
)
