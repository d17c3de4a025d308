package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProfileRepository implements profile.Repository for PostgreSQL.
// Sections are JSONB columns so each one can be rewritten independently.
type ProfileRepository struct {
	conn *Connection
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(conn *Connection) *ProfileRepository {
	return &ProfileRepository{conn: conn}
}

// sectionColumn maps a section to its JSONB column. The map doubles as
// the section whitelist, never interpolate user input into SQL.
var sectionColumn = map[profile.Section]string{
	profile.SectionAcademic: "academic_data",
	profile.SectionGoals:    "study_goals",
	profile.SectionBudget:   "budget",
	profile.SectionExams:    "exams",
}

// Create inserts an empty incomplete profile.
func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO profiles (student_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id) DO NOTHING
	`, p.StudentID, string(p.Status), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByStudent returns the student's profile.
func (r *ProfileRepository) GetByStudent(ctx context.Context, studentID string) (*profile.Profile, error) {
	row := r.conn.QueryRow(ctx, `
		SELECT student_id, academic_data, study_goals, budget, exams,
		       custom_tasks, status, created_at, updated_at
		FROM profiles
		WHERE student_id = $1
	`, studentID)
	return scanProfile(row)
}

// UpdateSection writes one section, creating the row on first write.
func (r *ProfileRepository) UpdateSection(ctx context.Context, studentID string, section profile.Section, data json.RawMessage) (*profile.Profile, error) {
	column, ok := sectionColumn[section]
	if !ok {
		return nil, shared.ErrInvalidSection
	}

	// Validate the payload against the section type before persisting.
	if err := validateSection(section, data); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO profiles (student_id, %s, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id)
		DO UPDATE SET %s = $2, updated_at = $3
	`, column, column)

	_, err := r.conn.Exec(ctx, query, studentID, data, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update profile section: %w", err)
	}

	return r.GetByStudent(ctx, studentID)
}

// AppendCustomTask appends one task to the custom task list, creating
// the profile row on first write.
func (r *ProfileRepository) AppendCustomTask(ctx context.Context, studentID string, task profile.CustomTask) error {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal custom task: %w", err)
	}

	_, err = r.conn.Exec(ctx, `
		INSERT INTO profiles (student_id, custom_tasks, updated_at)
		VALUES ($1, jsonb_build_array($2::jsonb), $3)
		ON CONFLICT (student_id)
		DO UPDATE SET custom_tasks = profiles.custom_tasks || $2::jsonb, updated_at = $3
	`, studentID, taskJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append custom task: %w", err)
	}
	return nil
}

// SetCustomTaskDone flips the done flag of one custom task.
func (r *ProfileRepository) SetCustomTaskDone(ctx context.Context, studentID, taskID string, done bool) error {
	// The task list is small; rewrite it in one statement keyed on the
	// element index found by id.
	tag, err := r.conn.Exec(ctx, `
		UPDATE profiles
		SET custom_tasks = (
			SELECT jsonb_agg(
				CASE WHEN elem->>'id' = $2
				     THEN jsonb_set(elem, '{done}', to_jsonb($3::boolean))
				     ELSE elem
				END
			)
			FROM jsonb_array_elements(custom_tasks) AS elem
		),
		updated_at = $4
		WHERE student_id = $1
		  AND custom_tasks @> jsonb_build_array(jsonb_build_object('id', $2::text))
	`, studentID, taskID, done, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update custom task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrTaskNotFound
	}
	return nil
}

func validateSection(section profile.Section, data json.RawMessage) error {
	var err error
	switch section {
	case profile.SectionAcademic:
		var v profile.AcademicData
		err = json.Unmarshal(data, &v)
	case profile.SectionGoals:
		var v profile.StudyGoals
		err = json.Unmarshal(data, &v)
	case profile.SectionBudget:
		var v profile.Budget
		err = json.Unmarshal(data, &v)
	case profile.SectionExams:
		var v profile.Exams
		err = json.Unmarshal(data, &v)
	}
	if err != nil {
		return shared.WrapError("profile", "UpdateSection", shared.ErrBadRequest, "malformed section data", err)
	}
	return nil
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var (
		p           profile.Profile
		academic    []byte
		goals       []byte
		budget      []byte
		exams       []byte
		customTasks []byte
		status      string
	)

	err := row.Scan(&p.StudentID, &academic, &goals, &budget, &exams,
		&customTasks, &status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	if err := json.Unmarshal(academic, &p.Academic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal academic data: %w", err)
	}
	if err := json.Unmarshal(goals, &p.Goals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal study goals: %w", err)
	}
	if err := json.Unmarshal(budget, &p.Budget); err != nil {
		return nil, fmt.Errorf("failed to unmarshal budget: %w", err)
	}
	if err := json.Unmarshal(exams, &p.Exams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exams: %w", err)
	}
	if err := json.Unmarshal(customTasks, &p.CustomTasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal custom tasks: %w", err)
	}
	p.Status = profile.Status(status)

	return &p, nil
}
