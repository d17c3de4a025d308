package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
	"github.com/uniguide-hub/uniguide-server/internal/domain/tasks"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET APPLICATION CHECKLIST QUERY
// Stage-4 view over the persisted checklist rows. The first fetch after a
// lock generates the rows for the locked university, with
// country-specific items and due dates counted from now.
// ══════════════════════════════════════════════════════════════════════════════

// GetChecklistQuery identifies the student.
type GetChecklistQuery struct {
	StudentID string
}

// Validate validates the query.
func (q GetChecklistQuery) Validate() error {
	if q.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// GetChecklistHandler handles checklist reads.
type GetChecklistHandler struct {
	progressRepo progress.Repository
	entries      shortlist.Repository
	checklist    tasks.ChecklistRepository
	now          func() time.Time
}

// NewGetChecklistHandler creates a new GetChecklistHandler.
func NewGetChecklistHandler(progressRepo progress.Repository, entries shortlist.Repository, checklist tasks.ChecklistRepository) *GetChecklistHandler {
	return &GetChecklistHandler{
		progressRepo: progressRepo,
		entries:      entries,
		checklist:    checklist,
		now:          time.Now,
	}
}

// Handle executes the query.
func (h *GetChecklistHandler) Handle(ctx context.Context, q GetChecklistQuery) ([]tasks.ChecklistItem, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	prog, err := h.progressRepo.GetByStudent(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}
	if err := prog.Allow(progress.StageApplication); err != nil {
		return nil, err
	}

	items, err := h.checklist.ListByStudent(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	// First fetch after the lock: generate and persist.
	locked, err := h.entries.ListLocked(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}
	if len(locked) == 0 {
		// Stage 4 without a locked entry should not happen; the unlock
		// rollback keeps the two in sync.
		return nil, shared.ErrEntryNotFound
	}

	items = tasks.BuildChecklist(locked[0], h.now(), uuid.NewString)
	if err := h.checklist.CreateBatch(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}
