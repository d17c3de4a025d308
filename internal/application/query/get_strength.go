package query

import (
	"context"

	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STRENGTH QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetStrengthQuery identifies the student.
type GetStrengthQuery struct {
	StudentID string
}

// Validate validates the query.
func (q GetStrengthQuery) Validate() error {
	if q.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// GetStrengthHandler handles strength reads.
type GetStrengthHandler struct {
	profiles profile.Repository
}

// NewGetStrengthHandler creates a new GetStrengthHandler.
func NewGetStrengthHandler(profiles profile.Repository) *GetStrengthHandler {
	return &GetStrengthHandler{profiles: profiles}
}

// Handle executes the query. A student with no profile yet gets the
// all-missing report, not an error.
func (h *GetStrengthHandler) Handle(ctx context.Context, q GetStrengthQuery) (*profile.Strength, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	p, err := loadOrEmptyProfile(ctx, h.profiles, q.StudentID)
	if err != nil {
		return nil, err
	}

	s := profile.ComputeStrength(p)
	return &s, nil
}
