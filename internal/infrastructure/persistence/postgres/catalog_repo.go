package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uniguide-hub/uniguide-server/internal/domain/catalog"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CatalogRepository implements catalog.Repository for PostgreSQL. The
// catalog is read-only reference data seeded out of band; ordering by
// ranking keeps the match tie-break deterministic.
type CatalogRepository struct {
	conn *Connection
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{conn: conn}
}

const universityColumns = `
	id, name, country, tuition_fee, living_cost, acceptance_rate, ranking, programs
`

// List returns catalog universities, optionally filtered by country.
func (r *CatalogRepository) List(ctx context.Context, country string) ([]catalog.University, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if country == "" || country == catalog.AllCountries {
		rows, err = r.conn.Query(ctx,
			`SELECT `+universityColumns+` FROM universities ORDER BY ranking, name`)
	} else {
		rows, err = r.conn.Query(ctx,
			`SELECT `+universityColumns+` FROM universities WHERE country = $1 ORDER BY ranking, name`,
			country)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	defer rows.Close()

	var out []catalog.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// GetByID returns one university.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*catalog.University, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+universityColumns+` FROM universities WHERE id = $1`, id)
	u, err := scanUniversity(row)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanUniversity(row pgx.Row) (*catalog.University, error) {
	var (
		u        catalog.University
		programs []byte
	)
	err := row.Scan(&u.ID, &u.Name, &u.Country, &u.TuitionFee, &u.LivingCost,
		&u.AcceptanceRate, &u.Ranking, &programs)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("catalog", "Find", shared.ErrNotFound, "university not found")
		}
		return nil, fmt.Errorf("failed to scan university: %w", err)
	}
	if err := json.Unmarshal(programs, &u.Programs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal programs: %w", err)
	}
	return &u, nil
}
