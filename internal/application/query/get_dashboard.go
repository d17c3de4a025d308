// Package query contains read operations (CQRS - Queries).
// Queries assemble views from the repositories without changing state.
// Expensive views go through best-effort read-through caches; a cache
// failure never fails the read.
package query

import (
	"context"
	"errors"

	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
	"github.com/uniguide-hub/uniguide-server/internal/domain/tasks"
)

// DashboardCache caches rendered dashboard views per student. Get
// returns (nil, nil) on a miss; all methods are best effort.
type DashboardCache interface {
	Get(ctx context.Context, studentID string) (*DashboardView, error)
	Set(ctx context.Context, studentID string, v *DashboardView) error
	Invalidate(ctx context.Context, studentID string) error
}

// ══════════════════════════════════════════════════════════════════════════════
// GET DASHBOARD QUERY
// The main landing view: profile, strength report, journey state and the
// stage-appropriate task list, assembled in one round trip.
// ══════════════════════════════════════════════════════════════════════════════

// GetDashboardQuery identifies the student.
type GetDashboardQuery struct {
	StudentID string
}

// Validate validates the query.
func (q GetDashboardQuery) Validate() error {
	if q.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// DashboardView is the assembled dashboard.
type DashboardView struct {
	Profile          *profile.Profile     `json:"profile"`
	Strength         profile.Strength     `json:"strength"`
	Journey          progress.JourneyView `json:"journey"`
	Tasks            []tasks.Task         `json:"tasks"`
	LockedUniversity *shortlist.Entry     `json:"lockedUniversity,omitempty"`
}

// GetDashboardHandler handles dashboard reads.
type GetDashboardHandler struct {
	profiles     profile.Repository
	progressRepo progress.Repository
	entries      shortlist.Repository
	cache        DashboardCache
}

// NewGetDashboardHandler creates a new GetDashboardHandler. The cache is
// optional; pass nil to read straight from the repositories.
func NewGetDashboardHandler(profiles profile.Repository, progressRepo progress.Repository, entries shortlist.Repository, cache DashboardCache) *GetDashboardHandler {
	return &GetDashboardHandler{profiles: profiles, progressRepo: progressRepo, entries: entries, cache: cache}
}

// Handle executes the query.
func (h *GetDashboardHandler) Handle(ctx context.Context, q GetDashboardQuery) (*DashboardView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		if v, err := h.cache.Get(ctx, q.StudentID); err == nil && v != nil {
			return v, nil
		}
	}

	prog, err := h.progressRepo.GetByStudent(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}

	p, err := loadOrEmptyProfile(ctx, h.profiles, q.StudentID)
	if err != nil {
		return nil, err
	}

	locked, err := h.entries.ListLocked(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}

	strength := profile.ComputeStrength(p)
	view := &DashboardView{
		Profile:  p,
		Strength: strength,
		Journey:  prog.Journey(),
		Tasks:    tasks.Generate(p, prog.CurrentStage, strength, locked),
	}
	if len(locked) > 0 {
		view.LockedUniversity = locked[0]
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, q.StudentID, view)
	}

	return view, nil
}

// loadOrEmptyProfile returns the stored profile, or an empty one when no
// section has been written yet. A brand-new student still gets a
// dashboard and a strength report.
func loadOrEmptyProfile(ctx context.Context, profiles profile.Repository, studentID string) (*profile.Profile, error) {
	p, err := profiles.GetByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return profile.New(studentID), nil
		}
		return nil, err
	}
	return p, nil
}
