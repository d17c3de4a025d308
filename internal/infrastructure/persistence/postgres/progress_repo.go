package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProgressRepository implements progress.Repository for PostgreSQL.
// Stage advancement uses GREATEST so transitions stay monotonic even
// when requests arrive out of order; the only rollback is the explicit
// unlock.
type ProgressRepository struct {
	conn *Connection
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(conn *Connection) *ProgressRepository {
	return &ProgressRepository{conn: conn}
}

const progressColumns = `
	student_id, onboarding_completed, counsellor_completed,
	application_locked, current_stage, created_at, updated_at
`

// Create inserts a fresh stage-1 progression.
func (r *ProgressRepository) Create(ctx context.Context, p *progress.Progress) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO user_progress (student_id, onboarding_completed, counsellor_completed,
		                           application_locked, current_stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id) DO NOTHING
	`, p.StudentID, p.OnboardingCompleted, p.CounsellorCompleted,
		p.ApplicationLocked, p.CurrentStage.Int(), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}
	return nil
}

// GetByStudent returns the student's progression.
func (r *ProgressRepository) GetByStudent(ctx context.Context, studentID string) (*progress.Progress, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+progressColumns+` FROM user_progress WHERE student_id = $1`, studentID)
	return scanProgress(row)
}

// CompleteOnboarding marks the profile complete and advances to stage 2
// in one transaction. Idempotent.
func (r *ProgressRepository) CompleteOnboarding(ctx context.Context, studentID string) (*progress.Progress, error) {
	var p *progress.Progress
	err := r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO profiles (student_id, status, updated_at)
			VALUES ($1, 'complete', NOW())
			ON CONFLICT (student_id)
			DO UPDATE SET status = 'complete', updated_at = NOW()
		`, studentID)
		if err != nil {
			return err
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO user_progress (student_id, onboarding_completed, current_stage)
			VALUES ($1, TRUE, 2)
			ON CONFLICT (student_id)
			DO UPDATE SET onboarding_completed = TRUE,
			              current_stage = GREATEST(user_progress.current_stage, 2),
			              updated_at = NOW()
			RETURNING `+progressColumns+`
		`, studentID)

		p, err = scanProgress(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CompleteCounsellor sets the counsellor flag and advances to stage 3.
func (r *ProgressRepository) CompleteCounsellor(ctx context.Context, studentID string) (*progress.Progress, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE user_progress
		SET counsellor_completed = TRUE,
		    current_stage = GREATEST(current_stage, 3),
		    updated_at = NOW()
		WHERE student_id = $1
		RETURNING `+progressColumns, studentID)
	return scanProgress(row)
}

// MarkLocked sets application_locked and advances to stage 4.
func (r *ProgressRepository) MarkLocked(ctx context.Context, studentID string) (*progress.Progress, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE user_progress
		SET application_locked = TRUE,
		    current_stage = GREATEST(current_stage, 4),
		    updated_at = NOW()
		WHERE student_id = $1
		RETURNING `+progressColumns, studentID)
	return scanProgress(row)
}

// MarkUnlocked clears application_locked and rolls stage 4 back to 3.
func (r *ProgressRepository) MarkUnlocked(ctx context.Context, studentID string) (*progress.Progress, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE user_progress
		SET application_locked = FALSE,
		    current_stage = CASE WHEN current_stage >= 4 THEN 3 ELSE current_stage END,
		    updated_at = NOW()
		WHERE student_id = $1
		RETURNING `+progressColumns, studentID)
	return scanProgress(row)
}

func scanProgress(row pgx.Row) (*progress.Progress, error) {
	var (
		p     progress.Progress
		stage int
	)
	err := row.Scan(&p.StudentID, &p.OnboardingCompleted, &p.CounsellorCompleted,
		&p.ApplicationLocked, &stage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to scan progress: %w", err)
	}
	p.CurrentStage = progress.Stage(stage)
	return &p, nil
}
