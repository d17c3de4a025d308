package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/domain/tasks"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHECKLIST REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ChecklistRepository implements tasks.ChecklistRepository for PostgreSQL.
type ChecklistRepository struct {
	conn *Connection
}

// NewChecklistRepository creates a new ChecklistRepository.
func NewChecklistRepository(conn *Connection) *ChecklistRepository {
	return &ChecklistRepository{conn: conn}
}

// CreateBatch inserts generated rows in one transaction.
func (r *ChecklistRepository) CreateBatch(ctx context.Context, items []tasks.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}

	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		for _, it := range items {
			_, err := tx.Exec(ctx, `
				INSERT INTO application_checklist
					(id, student_id, university_id, name, category, priority, due_date, status, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, it.ID, it.StudentID, it.UniversityID, it.Name, it.Category,
				it.Priority, it.DueDate, it.Status, it.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert checklist item: %w", err)
			}
		}
		return nil
	})
}

// ListByStudent returns the student's rows ordered by due date.
func (r *ChecklistRepository) ListByStudent(ctx context.Context, studentID string) ([]tasks.ChecklistItem, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, student_id, university_id, name, category, priority, due_date, status, created_at
		FROM application_checklist
		WHERE student_id = $1
		ORDER BY due_date, name
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist: %w", err)
	}
	defer rows.Close()

	var out []tasks.ChecklistItem
	for rows.Next() {
		var it tasks.ChecklistItem
		err := rows.Scan(&it.ID, &it.StudentID, &it.UniversityID, &it.Name,
			&it.Category, &it.Priority, &it.DueDate, &it.Status, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// SetStatus updates one row's status with an ownership check.
func (r *ChecklistRepository) SetStatus(ctx context.Context, studentID, itemID, status string) error {
	tag, err := r.conn.Exec(ctx, `
		UPDATE application_checklist
		SET status = $3
		WHERE id = $1 AND student_id = $2
	`, itemID, studentID, status)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrChecklistItemNotFound
	}
	return nil
}
