package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
)

// ══════════════════════════════════════════════════════════════════════════════
// SHORTLIST REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ShortlistRepository implements shortlist.Repository for PostgreSQL.
// The at-most-one-locked invariant is enforced by a single conditional
// UPDATE plus the partial unique index from migration 002.
type ShortlistRepository struct {
	conn *Connection
}

// NewShortlistRepository creates a new ShortlistRepository.
func NewShortlistRepository(conn *Connection) *ShortlistRepository {
	return &ShortlistRepository{conn: conn}
}

const shortlistColumns = `
	id, user_id, university_name, data, status, locked_at, unlock_reason, created_at
`

// Create inserts a new shortlisted entry.
func (r *ShortlistRepository) Create(ctx context.Context, e *shortlist.Entry) error {
	dataJSON, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal university data: %w", err)
	}

	_, err = r.conn.Exec(ctx, `
		INSERT INTO shortlists (id, user_id, university_name, data, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.StudentID, e.UniversityName, dataJSON, string(e.Status), e.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrAlreadyShortlisted
		}
		return fmt.Errorf("failed to create shortlist entry: %w", err)
	}
	return nil
}

// GetByID returns an entry owned by the student.
func (r *ShortlistRepository) GetByID(ctx context.Context, studentID, entryID string) (*shortlist.Entry, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+shortlistColumns+` FROM shortlists WHERE id = $1 AND user_id = $2`,
		entryID, studentID)
	return scanEntry(row)
}

// ListByStudent returns the student's entries, newest first.
func (r *ShortlistRepository) ListByStudent(ctx context.Context, studentID string) ([]*shortlist.Entry, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+shortlistColumns+` FROM shortlists WHERE user_id = $1 ORDER BY created_at DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlist: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListLocked returns the student's locked entries (zero or one).
func (r *ShortlistRepository) ListLocked(ctx context.Context, studentID string) ([]*shortlist.Entry, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+shortlistColumns+` FROM shortlists WHERE user_id = $1 AND status = 'locked'`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Delete removes a shortlisted entry. Locked entries are refused.
func (r *ShortlistRepository) Delete(ctx context.Context, studentID, entryID string) error {
	tag, err := r.conn.Exec(ctx, `
		DELETE FROM shortlists
		WHERE id = $1 AND user_id = $2 AND status = 'shortlisted'
	`, entryID, studentID)
	if err != nil {
		return fmt.Errorf("failed to delete shortlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a locked entry from a missing one.
		entry, getErr := r.GetByID(ctx, studentID, entryID)
		if getErr != nil {
			return getErr
		}
		if entry.IsLocked() {
			return shared.ErrEntryLocked
		}
		return shared.ErrEntryNotFound
	}
	return nil
}

// Lock atomically sets the entry to locked if and only if the student
// has no locked entry. The check and the write are one statement, so two
// concurrent locks can never both succeed; the partial unique index is
// the backstop.
func (r *ShortlistRepository) Lock(ctx context.Context, studentID, entryID string, at time.Time) (*shortlist.Entry, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE shortlists
		SET status = 'locked', locked_at = $3, unlock_reason = ''
		WHERE id = $1 AND user_id = $2 AND status = 'shortlisted'
		  AND NOT EXISTS (
			SELECT 1 FROM shortlists WHERE user_id = $2 AND status = 'locked'
		  )
		RETURNING `+shortlistColumns,
		entryID, studentID, at)

	entry, err := lockScan(row)
	if err == nil {
		return entry, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}

	// Zero rows: either the entry does not exist or a lock already
	// exists. Disambiguate for the caller.
	if _, getErr := r.GetByID(ctx, studentID, entryID); getErr != nil {
		return nil, getErr
	}
	return nil, shared.ErrAlreadyLocked
}

// lockScan classifies the result of the conditional lock UPDATE. A
// concurrent lock that slipped past the NOT EXISTS snapshot trips the
// partial unique index instead, which is still a duplicate lock.
func lockScan(row pgx.Row) (*shortlist.Entry, error) {
	entry, err := scanEntry(row)
	if err == nil {
		return entry, nil
	}
	if IsUniqueViolation(err) {
		return nil, shared.ErrAlreadyLocked
	}
	return nil, err
}

// Unlock releases a locked entry, recording the reason.
func (r *ShortlistRepository) Unlock(ctx context.Context, studentID, entryID, reason string) (*shortlist.Entry, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE shortlists
		SET status = 'shortlisted', locked_at = NULL, unlock_reason = $3
		WHERE id = $1 AND user_id = $2 AND status = 'locked'
		RETURNING `+shortlistColumns,
		entryID, studentID, reason)
	return scanEntry(row)
}

func scanEntry(row pgx.Row) (*shortlist.Entry, error) {
	var (
		e        shortlist.Entry
		dataJSON []byte
		status   string
		lockedAt *time.Time
	)
	err := row.Scan(&e.ID, &e.StudentID, &e.UniversityName, &dataJSON,
		&status, &lockedAt, &e.UnlockReason, &e.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to scan shortlist entry: %w", err)
	}
	if err := json.Unmarshal(dataJSON, &e.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal university data: %w", err)
	}
	e.Status = shortlist.Status(status)
	e.LockedAt = lockedAt
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]*shortlist.Entry, error) {
	var out []*shortlist.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
