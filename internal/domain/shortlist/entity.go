// Package shortlist contains the shortlist/lock aggregate. A shortlist
// entry is a student's candidate university, independent of the read-only
// catalog. At most one entry per student may be locked at any time.
package shortlist

import (
	"strings"
	"time"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// Status of a shortlist entry.
type Status string

const (
	// StatusShortlisted - a candidate the student is still considering.
	StatusShortlisted Status = "shortlisted"
	// StatusLocked - the single committed final choice.
	StatusLocked Status = "locked"
)

// IsValid checks that the status is one of the known values.
func (s Status) IsValid() bool {
	return s == StatusShortlisted || s == StatusLocked
}

// UniversityData holds denormalized display fields copied from the
// catalog (or supplied by the counsellor) at shortlisting time, so the
// entry keeps rendering even if the catalog record changes.
type UniversityData struct {
	Country        string   `json:"country,omitempty"`
	Chance         string   `json:"chance,omitempty"`
	Image          string   `json:"image,omitempty"`
	Cost           int      `json:"cost,omitempty"`
	Ranking        int      `json:"ranking,omitempty"`
	AcceptanceRate float64  `json:"acceptance_rate,omitempty"`
	Programs       []string `json:"programs,omitempty"`
}

// Entry is one shortlisted university.
//
// Lifecycle: created as shortlisted; shortlisted→locked→shortlisted; a
// locked entry is never deleted, unlock first.
type Entry struct {
	ID             string
	StudentID      string
	UniversityName string
	Data           UniversityData
	Status         Status
	LockedAt       *time.Time
	UnlockReason   string
	CreatedAt      time.Time
}

// New creates a shortlisted entry. The university name must be non-blank;
// uniqueness per student is enforced by the repository.
func New(id, studentID, universityName string, data UniversityData) (*Entry, error) {
	name := strings.TrimSpace(universityName)
	if name == "" {
		return nil, shared.ErrEmptyUniversityName
	}
	return &Entry{
		ID:             id,
		StudentID:      studentID,
		UniversityName: name,
		Data:           data,
		Status:         StatusShortlisted,
		CreatedAt:      time.Now(),
	}, nil
}

// IsLocked reports whether this entry is the committed final choice.
func (e *Entry) IsLocked() bool {
	return e.Status == StatusLocked
}

// CanRemove reports whether deletion is permitted. Locked entries must be
// unlocked first.
func (e *Entry) CanRemove() error {
	if e.IsLocked() {
		return shared.ErrEntryLocked
	}
	return nil
}

// Lock marks the entry as the committed choice. The at-most-one-locked
// invariant is enforced atomically by the repository write; this method
// only applies the entity-level transition.
func (e *Entry) Lock(at time.Time) error {
	if e.IsLocked() {
		return shared.ErrAlreadyLocked
	}
	e.Status = StatusLocked
	e.LockedAt = &at
	e.UnlockReason = ""
	return nil
}

// Unlock releases the entry back to shortlisted. A non-blank reason is
// required so the rollback is auditable.
func (e *Entry) Unlock(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.ErrUnlockReasonRequired
	}
	if !e.IsLocked() {
		return shared.ErrEntryNotFound
	}
	e.Status = StatusShortlisted
	e.LockedAt = nil
	e.UnlockReason = reason
	return nil
}
