// Package shared contains common domain types, errors, and events that are
// used across all domain packages.
package shared

import (
	"strings"
)

// StudentID identifies the student a request acts on behalf of. The value
// is opaque to the core: the gateway in front of the service authenticates
// the session and forwards the id, so the core only normalizes it and
// refuses blanks or implausibly long values.
type StudentID string

// maxStudentIDLen bounds the forwarded identity header.
const maxStudentIDLen = 128

// IsValid reports whether the id is usable as a student identity.
func (s StudentID) IsValid() bool {
	return s != "" && len(s) <= maxStudentIDLen
}

// String returns the string representation.
func (s StudentID) String() string {
	return string(s)
}

// IsEmpty checks if the ID is empty.
func (s StudentID) IsEmpty() bool {
	return s == ""
}

// NewStudentID normalizes and validates a forwarded student identity.
func NewStudentID(id string) (StudentID, error) {
	sid := StudentID(strings.TrimSpace(id))
	if !sid.IsValid() {
		return "", NewDomainError("shared", "NewStudentID", ErrUnauthorized, "invalid student identity")
	}
	return sid, nil
}
