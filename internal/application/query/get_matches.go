package query

import (
	"context"

	"github.com/uniguide-hub/uniguide-server/internal/domain/catalog"
	"github.com/uniguide-hub/uniguide-server/internal/domain/matching"
	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// CatalogCache caches catalog listings per country filter. Get returns
// (nil, nil) on a miss; all methods are best effort.
type CatalogCache interface {
	Get(ctx context.Context, country string) ([]catalog.University, error)
	Set(ctx context.Context, country string, universities []catalog.University) error
}

// ══════════════════════════════════════════════════════════════════════════════
// GET MATCHES QUERY
// Discovery: scores every catalog university against the profile and
// returns them best first. Opens at stage 2.
// ══════════════════════════════════════════════════════════════════════════════

// GetMatchesQuery identifies the student and the optional country filter.
type GetMatchesQuery struct {
	StudentID string
	Country   string
}

// Validate validates the query.
func (q GetMatchesQuery) Validate() error {
	if q.StudentID == "" {
		return shared.ErrUnauthorized
	}
	return nil
}

// GetMatchesHandler handles discovery reads.
type GetMatchesHandler struct {
	profiles     profile.Repository
	progressRepo progress.Repository
	universities catalog.Repository
	cache        CatalogCache
}

// NewGetMatchesHandler creates a new GetMatchesHandler. The cache is
// optional; pass nil to read straight from the catalog.
func NewGetMatchesHandler(profiles profile.Repository, progressRepo progress.Repository, universities catalog.Repository, cache CatalogCache) *GetMatchesHandler {
	return &GetMatchesHandler{profiles: profiles, progressRepo: progressRepo, universities: universities, cache: cache}
}

// Handle executes the query.
func (h *GetMatchesHandler) Handle(ctx context.Context, q GetMatchesQuery) ([]matching.ScoredUniversity, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	prog, err := h.progressRepo.GetByStudent(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}
	if err := prog.Allow(progress.StageDiscovery); err != nil {
		return nil, err
	}

	p, err := loadOrEmptyProfile(ctx, h.profiles, q.StudentID)
	if err != nil {
		return nil, err
	}

	list, err := h.listUniversities(ctx, q.Country)
	if err != nil {
		return nil, err
	}

	return matching.Rank(p, list), nil
}

func (h *GetMatchesHandler) listUniversities(ctx context.Context, country string) ([]catalog.University, error) {
	if h.cache != nil {
		if list, err := h.cache.Get(ctx, country); err == nil && list != nil {
			return list, nil
		}
	}

	list, err := h.universities.List(ctx, country)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, country, list)
	}
	return list, nil
}
