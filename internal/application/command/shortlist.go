package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD TO SHORTLIST COMMAND
// Shortlisting opens at stage 2. Duplicate names per student are
// rejected by the repository's uniqueness constraint.
// ══════════════════════════════════════════════════════════════════════════════

// AddToShortlistCommand contains the data of a shortlist add.
type AddToShortlistCommand struct {
	StudentID      string
	UniversityName string
	Data           shortlist.UniversityData
}

// Validate validates the command.
func (c AddToShortlistCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// AddToShortlistHandler handles shortlist adds.
type AddToShortlistHandler struct {
	entries      shortlist.Repository
	progressRepo progress.Repository
	events       EventPublisher
}

// NewAddToShortlistHandler creates a new AddToShortlistHandler.
func NewAddToShortlistHandler(entries shortlist.Repository, progressRepo progress.Repository, events EventPublisher) *AddToShortlistHandler {
	return &AddToShortlistHandler{entries: entries, progressRepo: progressRepo, events: events}
}

// Handle executes the command.
func (h *AddToShortlistHandler) Handle(ctx context.Context, cmd AddToShortlistCommand) (*shortlist.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	prog, err := h.progressRepo.GetByStudent(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}
	if err := prog.Allow(progress.StageDiscovery); err != nil {
		return nil, err
	}

	entry, err := shortlist.New(uuid.NewString(), cmd.StudentID, cmd.UniversityName, cmd.Data)
	if err != nil {
		return nil, err
	}

	if err := h.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewShortlistChangedEvent(
			shared.EventShortlistAdded, cmd.StudentID, entry.ID, entry.UniversityName, ""))
	}

	return entry, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// REMOVE FROM SHORTLIST COMMAND
// Locked entries cannot be removed; unlock first.
// ══════════════════════════════════════════════════════════════════════════════

// RemoveFromShortlistCommand identifies the entry to remove.
type RemoveFromShortlistCommand struct {
	StudentID string
	EntryID   string
}

// Validate validates the command.
func (c RemoveFromShortlistCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	if c.EntryID == "" {
		return shared.ErrEntryNotFound
	}
	return nil
}

// RemoveFromShortlistHandler handles shortlist removals.
type RemoveFromShortlistHandler struct {
	entries shortlist.Repository
	events  EventPublisher
}

// NewRemoveFromShortlistHandler creates a new RemoveFromShortlistHandler.
func NewRemoveFromShortlistHandler(entries shortlist.Repository, events EventPublisher) *RemoveFromShortlistHandler {
	return &RemoveFromShortlistHandler{entries: entries, events: events}
}

// Handle executes the command.
func (h *RemoveFromShortlistHandler) Handle(ctx context.Context, cmd RemoveFromShortlistCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	entry, err := h.entries.GetByID(ctx, cmd.StudentID, cmd.EntryID)
	if err != nil {
		return err
	}
	if err := entry.CanRemove(); err != nil {
		return err
	}

	if err := h.entries.Delete(ctx, cmd.StudentID, cmd.EntryID); err != nil {
		return err
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewShortlistChangedEvent(
			shared.EventShortlistRemoved, cmd.StudentID, entry.ID, entry.UniversityName, ""))
	}

	return nil
}
