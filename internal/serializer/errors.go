package serializer

import (
	"errors"
	"fmt"
)

// RecomposeErrorCode categorizes recomposition failures.
type RecomposeErrorCode string

const (
	// ErrCodeNoReadSource indicates a record carries a closure manifest
	// but no read-source is configured. A configuration error - the
	// record's detached descendants cannot possibly be resolved.
	ErrCodeNoReadSource RecomposeErrorCode = "NO_READ_SOURCE"

	// ErrCodeUnresolvedReference indicates the read-source returned
	// nothing for a referenced content hash.
	ErrCodeUnresolvedReference RecomposeErrorCode = "UNRESOLVED_REFERENCE"
)

// RecomposeError is a fatal recomposition failure. Both codes abort the
// recomposition call; retries, if desired, belong to the read-source.
type RecomposeError struct {
	// Code identifies the error category.
	Code RecomposeErrorCode

	// Message is a human-readable description.
	Message string

	// ReferencedID is the content hash that failed to resolve (for
	// UNRESOLVED_REFERENCE).
	ReferencedID string

	// Source is the read-source's identifying name (for
	// UNRESOLVED_REFERENCE).
	Source string
}

// Error implements the error interface.
func (e *RecomposeError) Error() string {
	if e.ReferencedID != "" {
		return fmt.Sprintf("%s: %s (id=%s, source=%s)", e.Code, e.Message, e.ReferencedID, e.Source)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError returns true if the error is a missing-read-source
// configuration error. Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var re *RecomposeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeNoReadSource
	}
	return false
}

// IsResolutionError returns true if the error is an unresolved
// reference. Uses errors.As to handle wrapped errors.
func IsResolutionError(err error) bool {
	var re *RecomposeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeUnresolvedReference
	}
	return false
}

func newNoReadSourceError() *RecomposeError {
	return &RecomposeError{
		Code:    ErrCodeNoReadSource,
		Message: "record has detached descendants but no read source is configured",
	}
}

func newResolutionError(id, source string) *RecomposeError {
	return &RecomposeError{
		Code:         ErrCodeUnresolvedReference,
		Message:      fmt.Sprintf("referenced record %s not found in read source %s", id, source),
		ReferencedID: id,
		Source:       source,
	}
}
