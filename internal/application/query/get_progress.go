package query

import (
	"context"

	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROGRESS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetProgressQuery identifies the student.
type GetProgressQuery struct {
	StudentID string
}

// Validate validates the query.
func (q GetProgressQuery) Validate() error {
	if q.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// ProgressView is the raw progression with its journey presentation.
type ProgressView struct {
	Progress *progress.Progress   `json:"progress"`
	Journey  progress.JourneyView `json:"journey"`
}

// GetProgressHandler handles progression reads.
type GetProgressHandler struct {
	progressRepo progress.Repository
}

// NewGetProgressHandler creates a new GetProgressHandler.
func NewGetProgressHandler(progressRepo progress.Repository) *GetProgressHandler {
	return &GetProgressHandler{progressRepo: progressRepo}
}

// Handle executes the query.
func (h *GetProgressHandler) Handle(ctx context.Context, q GetProgressQuery) (*ProgressView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	p, err := h.progressRepo.GetByStudent(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}

	return &ProgressView{Progress: p, Journey: p.Journey()}, nil
}
