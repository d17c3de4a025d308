package command

import (
	"context"
	"strings"
	"time"

	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOCK UNIVERSITY COMMAND
// Commits one shortlist entry as the final choice. The at-most-one-locked
// invariant is enforced by the repository's atomic conditional write, so
// two concurrent locks can never both succeed. A successful lock advances
// the progression to stage 4.
// ══════════════════════════════════════════════════════════════════════════════

// LockUniversityCommand identifies the entry to lock.
type LockUniversityCommand struct {
	StudentID string
	EntryID   string
}

// Validate validates the command.
func (c LockUniversityCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	if c.EntryID == "" {
		return shared.ErrEntryNotFound
	}
	return nil
}

// LockUniversityResult is the locked entry with the advanced progression.
type LockUniversityResult struct {
	Entry    *shortlist.Entry
	Progress *progress.Progress
}

// LockUniversityHandler handles university locks.
type LockUniversityHandler struct {
	entries      shortlist.Repository
	progressRepo progress.Repository
	events       EventPublisher
}

// NewLockUniversityHandler creates a new LockUniversityHandler.
func NewLockUniversityHandler(entries shortlist.Repository, progressRepo progress.Repository, events EventPublisher) *LockUniversityHandler {
	return &LockUniversityHandler{entries: entries, progressRepo: progressRepo, events: events}
}

// Handle executes the command.
func (h *LockUniversityHandler) Handle(ctx context.Context, cmd LockUniversityCommand) (*LockUniversityResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	prog, err := h.progressRepo.GetByStudent(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}
	if err := prog.Allow(progress.StageFinalizing); err != nil {
		return nil, err
	}

	entry, err := h.entries.Lock(ctx, cmd.StudentID, cmd.EntryID, time.Now())
	if err != nil {
		return nil, err
	}

	prog, err = h.progressRepo.MarkLocked(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewShortlistChangedEvent(
			shared.EventUniversityLocked, cmd.StudentID, entry.ID, entry.UniversityName, ""))
	}

	return &LockUniversityResult{Entry: entry, Progress: prog}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UNLOCK UNIVERSITY COMMAND
// Releases the locked entry back to shortlisted, recording the reason.
// The progression rolls back to stage 3 only when it was 4.
// ══════════════════════════════════════════════════════════════════════════════

// UnlockUniversityCommand identifies the entry to unlock and the reason.
type UnlockUniversityCommand struct {
	StudentID string
	EntryID   string
	Reason    string
}

// Validate validates the command.
func (c UnlockUniversityCommand) Validate() error {
	if c.StudentID == "" {
		return shared.ErrUnauthorized
	}
	if c.EntryID == "" {
		return shared.ErrEntryNotFound
	}
	if strings.TrimSpace(c.Reason) == "" {
		return shared.ErrUnlockReasonRequired
	}
	return nil
}

// UnlockUniversityResult is the released entry with the rolled-back
// progression.
type UnlockUniversityResult struct {
	Entry    *shortlist.Entry
	Progress *progress.Progress
}

// UnlockUniversityHandler handles university unlocks.
type UnlockUniversityHandler struct {
	entries      shortlist.Repository
	progressRepo progress.Repository
	events       EventPublisher
}

// NewUnlockUniversityHandler creates a new UnlockUniversityHandler.
func NewUnlockUniversityHandler(entries shortlist.Repository, progressRepo progress.Repository, events EventPublisher) *UnlockUniversityHandler {
	return &UnlockUniversityHandler{entries: entries, progressRepo: progressRepo, events: events}
}

// Handle executes the command.
func (h *UnlockUniversityHandler) Handle(ctx context.Context, cmd UnlockUniversityCommand) (*UnlockUniversityResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	entry, err := h.entries.Unlock(ctx, cmd.StudentID, cmd.EntryID, strings.TrimSpace(cmd.Reason))
	if err != nil {
		return nil, err
	}

	prog, err := h.progressRepo.MarkUnlocked(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewShortlistChangedEvent(
			shared.EventUniversityUnlocked, cmd.StudentID, entry.ID, entry.UniversityName, entry.UnlockReason))
	}

	return &UnlockUniversityResult{Entry: entry, Progress: prog}, nil
}
