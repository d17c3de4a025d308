// Package shared contains common domain types, errors, and events that are
// used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
// These map one-to-one onto the error kinds exposed at the API boundary.
var (
	// ErrUnauthorized - no or invalid identity supplied with the request.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden - stage gate not satisfied or ownership mismatch.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound - the requested entity does not exist or is not owned
	// by the requesting student.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict - duplicate shortlist entry or duplicate lock attempt.
	ErrConflict = errors.New("conflict")

	// ErrBadRequest - a required field is missing or malformed.
	ErrBadRequest = errors.New("bad request")

	// Infrastructure errors
	ErrExternalService = errors.New("external service error")
	ErrTimeout         = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "progress", "shortlist", "profile"
	Op      string // Operation that failed, e.g., "Lock", "Remove"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Account domain errors
var (
	ErrAccountNotFound = NewDomainError("account", "Find", ErrNotFound, "student account not found")
	ErrEmailTaken      = NewDomainError("account", "Register", ErrConflict, "email already registered")
	ErrWeakCredentials = NewDomainError("account", "Register", ErrBadRequest, "email and password are required")
)

// Profile domain errors
var (
	ErrProfileNotFound = NewDomainError("profile", "Find", ErrNotFound, "profile not found")
	ErrInvalidSection  = NewDomainError("profile", "UpdateSection", ErrBadRequest, "unknown profile section")
	ErrTaskNotFound    = NewDomainError("profile", "UpdateTask", ErrNotFound, "task not found")
	ErrEmptyTaskTitle  = NewDomainError("profile", "AddTask", ErrBadRequest, "task title is required")
)

// Progress domain errors
var (
	ErrProgressNotFound   = NewDomainError("progress", "Find", ErrNotFound, "progression not started")
	ErrCounsellorTooEarly = NewDomainError("progress", "CompleteCounsellor", ErrForbidden, "complete onboarding before the counsellor session")
)

// Shortlist domain errors
var (
	ErrEntryNotFound        = NewDomainError("shortlist", "Find", ErrNotFound, "shortlist entry not found")
	ErrAlreadyShortlisted   = NewDomainError("shortlist", "Add", ErrConflict, "university already shortlisted")
	ErrAlreadyLocked        = NewDomainError("shortlist", "Lock", ErrConflict, "another university is already locked, unlock it first")
	ErrEntryLocked          = NewDomainError("shortlist", "Remove", ErrForbidden, "entry is locked, unlock before removing")
	ErrUnlockReasonRequired = NewDomainError("shortlist", "Unlock", ErrBadRequest, "unlock reason is required")
	ErrEmptyUniversityName  = NewDomainError("shortlist", "Add", ErrBadRequest, "university name is required")
)

// Checklist domain errors
var (
	ErrChecklistItemNotFound = NewDomainError("checklist", "Update", ErrNotFound, "checklist item not found")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsBadRequest checks if the error is a bad request error.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
