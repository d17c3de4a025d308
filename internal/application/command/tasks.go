package command

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/tasks"
)

// ══════════════════════════════════════════════════════════════════════════════
// TASK COMMANDS
// Custom tasks live on the profile and survive regeneration. Completion
// of a custom task re-reads the profile and recomputes strength so the
// caller's dashboard stays consistent without a second round trip.
// ══════════════════════════════════════════════════════════════════════════════

// AddCustomTaskCommand contains a new custom task.
type AddCustomTaskCommand struct {
	StudentID string
	Title     string
	Critical  bool
}

// Validate validates the command.
func (c AddCustomTaskCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	if strings.TrimSpace(c.Title) == "" {
		return shared.ErrEmptyTaskTitle
	}
	return nil
}

// AddCustomTaskHandler handles custom task creation.
type AddCustomTaskHandler struct {
	profiles profile.Repository
}

// NewAddCustomTaskHandler creates a new AddCustomTaskHandler.
func NewAddCustomTaskHandler(profiles profile.Repository) *AddCustomTaskHandler {
	return &AddCustomTaskHandler{profiles: profiles}
}

// Handle executes the command.
func (h *AddCustomTaskHandler) Handle(ctx context.Context, cmd AddCustomTaskCommand) (*profile.CustomTask, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	task := profile.CustomTask{
		ID:       "task-" + uuid.NewString(),
		Title:    strings.TrimSpace(cmd.Title),
		Critical: cmd.Critical,
		Type:     tasks.TypeCustom,
	}
	if err := h.profiles.AppendCustomTask(ctx, cmd.StudentID, task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetTaskDoneCommand flips a custom task's completion flag.
type SetTaskDoneCommand struct {
	StudentID string
	TaskID    string
	Done      bool
}

// Validate validates the command.
func (c SetTaskDoneCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	if c.TaskID == "" {
		return shared.ErrTaskNotFound
	}
	return nil
}

// SetTaskDoneResult is the refreshed profile with its strength.
type SetTaskDoneResult struct {
	Profile  *profile.Profile
	Strength profile.Strength
}

// SetTaskDoneHandler handles custom task completion toggles.
type SetTaskDoneHandler struct {
	profiles profile.Repository
}

// NewSetTaskDoneHandler creates a new SetTaskDoneHandler.
func NewSetTaskDoneHandler(profiles profile.Repository) *SetTaskDoneHandler {
	return &SetTaskDoneHandler{profiles: profiles}
}

// Handle executes the command.
func (h *SetTaskDoneHandler) Handle(ctx context.Context, cmd SetTaskDoneCommand) (*SetTaskDoneResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.profiles.SetCustomTaskDone(ctx, cmd.StudentID, cmd.TaskID, cmd.Done); err != nil {
		return nil, err
	}

	p, err := h.profiles.GetByStudent(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	return &SetTaskDoneResult{Profile: p, Strength: profile.ComputeStrength(p)}, nil
}

// UpdateChecklistItemCommand updates one persisted checklist row.
type UpdateChecklistItemCommand struct {
	StudentID string
	ItemID    string
	Done      bool
}

// Validate validates the command.
func (c UpdateChecklistItemCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	if c.ItemID == "" {
		return shared.ErrChecklistItemNotFound
	}
	return nil
}

// UpdateChecklistItemHandler handles checklist status updates.
type UpdateChecklistItemHandler struct {
	checklist tasks.ChecklistRepository
}

// NewUpdateChecklistItemHandler creates a new UpdateChecklistItemHandler.
func NewUpdateChecklistItemHandler(checklist tasks.ChecklistRepository) *UpdateChecklistItemHandler {
	return &UpdateChecklistItemHandler{checklist: checklist}
}

// Handle executes the command.
func (h *UpdateChecklistItemHandler) Handle(ctx context.Context, cmd UpdateChecklistItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	status := tasks.ChecklistPending
	if cmd.Done {
		status = tasks.ChecklistDone
	}
	return h.checklist.SetStatus(ctx, cmd.StudentID, cmd.ItemID, status)
}
