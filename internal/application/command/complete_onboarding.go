package command

import (
	"context"

	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE ONBOARDING COMMAND
// Marks the profile complete and advances the progression to stage 2.
// Profile.status and Progress move together in one repository
// transaction so the two records can never diverge. Idempotent.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteOnboardingCommand identifies the student finishing onboarding.
type CompleteOnboardingCommand struct {
	StudentID string
}

// Validate validates the command.
func (c CompleteOnboardingCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// CompleteOnboardingHandler handles onboarding completion.
type CompleteOnboardingHandler struct {
	progressRepo progress.Repository
	events       EventPublisher
}

// NewCompleteOnboardingHandler creates a new CompleteOnboardingHandler.
func NewCompleteOnboardingHandler(progressRepo progress.Repository, events EventPublisher) *CompleteOnboardingHandler {
	return &CompleteOnboardingHandler{progressRepo: progressRepo, events: events}
}

// Handle executes the command.
func (h *CompleteOnboardingHandler) Handle(ctx context.Context, cmd CompleteOnboardingCommand) (*progress.Progress, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.progressRepo.CompleteOnboarding(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewStageAdvancedEvent(shared.EventOnboardingCompleted, cmd.StudentID, p.CurrentStage.Int()))
	}

	return p, nil
}
