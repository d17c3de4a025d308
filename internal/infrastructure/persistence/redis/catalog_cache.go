package redis

import (
	"context"
	"errors"

	"github.com/uniguide-hub/uniguide-server/internal/domain/catalog"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG CACHE
// ══════════════════════════════════════════════════════════════════════════════

// CatalogCache implements query.CatalogCache on Redis, keyed by the
// country filter. The catalog is reference data, so TTL expiry is the
// only invalidation.
type CatalogCache struct {
	cache *Cache
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(cache *Cache) *CatalogCache {
	return &CatalogCache{cache: cache}
}

func catalogKey(country string) string {
	if country == "" {
		country = catalog.AllCountries
	}
	return PrefixCatalog + country
}

// Get returns the cached listing, or (nil, nil) on a miss.
func (c *CatalogCache) Get(ctx context.Context, country string) ([]catalog.University, error) {
	var list []catalog.University
	err := c.cache.Get(ctx, catalogKey(country), &list)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// Set stores the listing with the catalog TTL.
func (c *CatalogCache) Set(ctx context.Context, country string, universities []catalog.University) error {
	return c.cache.Set(ctx, catalogKey(country), universities, TTLCatalog)
}
