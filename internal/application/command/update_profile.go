package command

import (
	"context"
	"encoding/json"

	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROFILE SECTION COMMAND
// Writes one section of the profile, creating it on first write. The
// strength report is recomputed so callers see the effect immediately.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProfileSectionCommand contains one section write.
type UpdateProfileSectionCommand struct {
	StudentID string
	Section   profile.Section
	Data      json.RawMessage
}

// Validate validates the command.
func (c UpdateProfileSectionCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	if !c.Section.IsValid() {
		return shared.ErrInvalidSection
	}
	if len(c.Data) == 0 {
		return shared.NewDomainError("profile", "UpdateSection", shared.ErrBadRequest, "section data is required")
	}
	return nil
}

// UpdateProfileSectionResult is the updated profile with its strength.
type UpdateProfileSectionResult struct {
	Profile  *profile.Profile
	Strength profile.Strength
}

// UpdateProfileSectionHandler handles profile section writes.
type UpdateProfileSectionHandler struct {
	profiles profile.Repository
	events   EventPublisher
}

// NewUpdateProfileSectionHandler creates a new UpdateProfileSectionHandler.
func NewUpdateProfileSectionHandler(profiles profile.Repository, events EventPublisher) *UpdateProfileSectionHandler {
	return &UpdateProfileSectionHandler{profiles: profiles, events: events}
}

// Handle executes the command.
func (h *UpdateProfileSectionHandler) Handle(ctx context.Context, cmd UpdateProfileSectionCommand) (*UpdateProfileSectionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.profiles.UpdateSection(ctx, cmd.StudentID, cmd.Section, cmd.Data)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewProfileUpdatedEvent(cmd.StudentID, string(cmd.Section)))
	}

	return &UpdateProfileSectionResult{
		Profile:  p,
		Strength: profile.ComputeStrength(p),
	}, nil
}
