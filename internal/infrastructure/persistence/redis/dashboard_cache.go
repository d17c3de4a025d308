package redis

import (
	"context"
	"errors"

	"github.com/uniguide-hub/uniguide-server/internal/application/query"
)

// ══════════════════════════════════════════════════════════════════════════════
// DASHBOARD CACHE
// ══════════════════════════════════════════════════════════════════════════════

// DashboardCache implements query.DashboardCache on Redis. Views are
// invalidated by the event handler on every journey mutation and expire
// on their own after TTLDashboard.
type DashboardCache struct {
	cache *Cache
}

// NewDashboardCache creates a new DashboardCache.
func NewDashboardCache(cache *Cache) *DashboardCache {
	return &DashboardCache{cache: cache}
}

func dashboardKey(studentID string) string {
	return PrefixDashboard + studentID
}

// Get returns the cached view, or (nil, nil) on a miss.
func (c *DashboardCache) Get(ctx context.Context, studentID string) (*query.DashboardView, error) {
	var view query.DashboardView
	err := c.cache.Get(ctx, dashboardKey(studentID), &view)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &view, nil
}

// Set stores the view with the dashboard TTL.
func (c *DashboardCache) Set(ctx context.Context, studentID string, v *query.DashboardView) error {
	return c.cache.Set(ctx, dashboardKey(studentID), v, TTLDashboard)
}

// Invalidate drops the cached view.
func (c *DashboardCache) Invalidate(ctx context.Context, studentID string) error {
	return c.cache.Delete(ctx, dashboardKey(studentID))
}
