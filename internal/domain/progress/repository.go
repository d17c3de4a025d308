package progress

import (
	"context"
)

// Repository defines storage operations for progression rows.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Create inserts a fresh stage-1 progression for a new account.
	Create(ctx context.Context, p *Progress) error

	// GetByStudent returns the student's progression.
	// Returns shared.ErrProgressNotFound when the row does not exist.
	GetByStudent(ctx context.Context, studentID string) (*Progress, error)

	// CompleteOnboarding marks the profile complete and the onboarding flag
	// set, advancing current_stage to at least 2, all inside one
	// transaction. The row is created if it does not exist yet.
	// Idempotent: repeat calls return the current state unchanged.
	CompleteOnboarding(ctx context.Context, studentID string) (*Progress, error)

	// CompleteCounsellor sets the counsellor flag and advances
	// current_stage to at least 3.
	CompleteCounsellor(ctx context.Context, studentID string) (*Progress, error)

	// MarkLocked sets application_locked and advances current_stage to at
	// least 4. Called by the shortlist manager after the atomic lock write.
	MarkLocked(ctx context.Context, studentID string) (*Progress, error)

	// MarkUnlocked clears application_locked and rolls current_stage back
	// to 3 only when it is 4 or above.
	MarkUnlocked(ctx context.Context, studentID string) (*Progress, error)
}
