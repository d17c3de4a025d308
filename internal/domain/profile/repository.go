package profile

import (
	"context"
	"encoding/json"
)

// Repository defines storage operations for profiles.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Create inserts an empty incomplete profile for a new account.
	Create(ctx context.Context, p *Profile) error

	// GetByStudent returns the student's profile.
	// Returns shared.ErrProfileNotFound when no profile exists yet.
	GetByStudent(ctx context.Context, studentID string) (*Profile, error)

	// UpdateSection writes one section of the profile, creating the row on
	// first write. The data is the raw JSON for that section.
	// Returns shared.ErrInvalidSection for an unknown section.
	UpdateSection(ctx context.Context, studentID string, section Section, data json.RawMessage) (*Profile, error)

	// AppendCustomTask appends a task to the custom task list.
	AppendCustomTask(ctx context.Context, studentID string, task CustomTask) error

	// SetCustomTaskDone flips the done flag of a custom task.
	// Returns shared.ErrTaskNotFound when no task with the ID exists.
	SetCustomTaskDone(ctx context.Context, studentID, taskID string, done bool) error
}
