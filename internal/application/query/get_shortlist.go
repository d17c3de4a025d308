package query

import (
	"context"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SHORTLIST QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetShortlistQuery identifies the student.
type GetShortlistQuery struct {
	StudentID string
}

// Validate validates the query.
func (q GetShortlistQuery) Validate() error {
	if q.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// ShortlistView is the student's entries with the locked one surfaced.
type ShortlistView struct {
	Entries []*shortlist.Entry `json:"entries"`
	Locked  *shortlist.Entry   `json:"locked,omitempty"`
}

// GetShortlistHandler handles shortlist reads.
type GetShortlistHandler struct {
	entries shortlist.Repository
}

// NewGetShortlistHandler creates a new GetShortlistHandler.
func NewGetShortlistHandler(entries shortlist.Repository) *GetShortlistHandler {
	return &GetShortlistHandler{entries: entries}
}

// Handle executes the query.
func (h *GetShortlistHandler) Handle(ctx context.Context, q GetShortlistQuery) (*ShortlistView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.entries.ListByStudent(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}

	view := &ShortlistView{Entries: entries}
	for _, e := range entries {
		if e.IsLocked() {
			view.Locked = e
			break
		}
	}
	return view, nil
}
