package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSource is matched by errors.Is for any *UnknownSourceError.
	ErrUnknownSource = errors.New("source not found")
	ErrNoResults     = errors.New("no postings matched")
)

// SourceUnavailableError wraps a network, timeout or parse failure at one
// adapter. The aggregator logs it and treats the source as having no postings.
type SourceUnavailableError struct {
	SourceID string
	Cause    error
}

func (e *SourceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source %s unavailable: %v", e.SourceID, e.Cause)
	}
	return fmt.Sprintf("source %s unavailable", e.SourceID)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Cause
}

type UnknownSourceError struct {
	ID string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownSource.Error(), e.ID)
}

func (e *UnknownSourceError) Is(target error) bool {
	return target == ErrUnknownSource
}

// ValidationError is returned before any fetch is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
