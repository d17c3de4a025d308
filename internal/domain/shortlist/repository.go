package shortlist

import (
	"context"
	"time"
)

// Repository defines storage operations for shortlist entries.
//
// Lock must perform its "no other locked entry" check and the status
// write as one atomic operation per student: two concurrent lock requests
// must never both succeed. Implementations use a conditional update (plus
// a partial unique index as a backstop), never read-then-write.
type Repository interface {
	// Create inserts a new shortlisted entry.
	// Returns shared.ErrAlreadyShortlisted when the student already has an
	// entry with the same university name.
	Create(ctx context.Context, e *Entry) error

	// GetByID returns an entry owned by the student.
	// Returns shared.ErrEntryNotFound when absent or owned by another
	// student.
	GetByID(ctx context.Context, studentID, entryID string) (*Entry, error)

	// ListByStudent returns the student's entries, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]*Entry, error)

	// ListLocked returns the student's locked entries (zero or one).
	ListLocked(ctx context.Context, studentID string) ([]*Entry, error)

	// Delete removes a shortlisted entry.
	// Returns shared.ErrEntryNotFound when absent/not owned and
	// shared.ErrEntryLocked when the entry is locked.
	Delete(ctx context.Context, studentID, entryID string) error

	// Lock atomically sets the entry to locked if and only if the student
	// has no locked entry. Returns shared.ErrAlreadyLocked when another
	// (or the same) entry is locked, shared.ErrEntryNotFound when absent.
	Lock(ctx context.Context, studentID, entryID string, at time.Time) (*Entry, error)

	// Unlock releases a locked entry, recording the reason.
	// Returns shared.ErrEntryNotFound when the entry is absent or not
	// locked.
	Unlock(ctx context.Context, studentID, entryID, reason string) (*Entry, error)
}
