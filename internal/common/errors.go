// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ingestion errors.
	ErrNoData            = errors.New("no transaction data loaded")
	ErrDataDirMissing    = errors.New("data directory does not exist")
	ErrNoFiles           = errors.New("no files found in data directory")
	ErrUnsupportedSource = errors.New("unsupported source format")
	ErrMalformedSource   = errors.New("malformed source")

	// Export errors.
	ErrExportFailed = errors.New("export failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsNoData reports whether err means the pipeline had nothing to score.
// Missing directories and empty directories count as no data.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrDataDirMissing) ||
		errors.Is(err, ErrNoFiles)
}
