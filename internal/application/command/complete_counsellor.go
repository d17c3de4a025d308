package command

import (
	"context"

	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE COUNSELLOR COMMAND
// Marks the counsellor session done and advances to stage 3. Requires the
// student to have reached stage 2 first: skipping discovery outright is
// not allowed.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteCounsellorCommand identifies the student finishing counselling.
type CompleteCounsellorCommand struct {
	StudentID string
}

// Validate validates the command.
func (c CompleteCounsellorCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// CompleteCounsellorHandler handles counsellor completion.
type CompleteCounsellorHandler struct {
	progressRepo progress.Repository
	events       EventPublisher
}

// NewCompleteCounsellorHandler creates a new CompleteCounsellorHandler.
func NewCompleteCounsellorHandler(progressRepo progress.Repository, events EventPublisher) *CompleteCounsellorHandler {
	return &CompleteCounsellorHandler{progressRepo: progressRepo, events: events}
}

// Handle executes the command.
func (h *CompleteCounsellorHandler) Handle(ctx context.Context, cmd CompleteCounsellorCommand) (*progress.Progress, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, err := h.progressRepo.GetByStudent(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}
	if current.CurrentStage < progress.StageDiscovery {
		return nil, shared.ErrCounsellorTooEarly
	}

	p, err := h.progressRepo.CompleteCounsellor(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewStageAdvancedEvent(shared.EventCounsellorCompleted, cmd.StudentID, p.CurrentStage.Int()))
	}

	return p, nil
}
