package catalog

import (
	"context"
)

// AllCountries is the filter value meaning no country filter.
const AllCountries = "All"

// Repository defines read access to the university catalog.
type Repository interface {
	// List returns catalog universities in stable catalog order,
	// optionally filtered by country ("" or "All" returns everything).
	List(ctx context.Context, country string) ([]University, error)

	// GetByID returns one university.
	// Returns shared.ErrNotFound when it does not exist.
	GetByID(ctx context.Context, id string) (*University, error)
}
