// Package postgres implements the PostgreSQL persistence layer for the
// UniGuide server.
package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_students_and_journey",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_shortlists",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_catalog_and_checklist",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: STUDENTS, PROFILES, PROGRESS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create students, profiles and progress tables
-- Version: 001

CREATE TABLE IF NOT EXISTS students (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    full_name VARCHAR(100) NOT NULL DEFAULT '',
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_students_email ON students(email);

-- One profile per student; sections live in JSONB so each section can be
-- written independently.
CREATE TABLE IF NOT EXISTS profiles (
    student_id UUID PRIMARY KEY REFERENCES students(id) ON DELETE CASCADE,
    academic_data JSONB NOT NULL DEFAULT '{}'::jsonb,
    study_goals JSONB NOT NULL DEFAULT '{}'::jsonb,
    budget JSONB NOT NULL DEFAULT '{}'::jsonb,
    exams JSONB NOT NULL DEFAULT '{}'::jsonb,
    custom_tasks JSONB NOT NULL DEFAULT '[]'::jsonb,
    status VARCHAR(20) NOT NULL DEFAULT 'incomplete',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_profile_status CHECK (status IN ('incomplete', 'complete'))
);

-- One progression row per student, created at registration at stage 1.
CREATE TABLE IF NOT EXISTS user_progress (
    student_id UUID PRIMARY KEY REFERENCES students(id) ON DELETE CASCADE,
    onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
    counsellor_completed BOOLEAN NOT NULL DEFAULT FALSE,
    application_locked BOOLEAN NOT NULL DEFAULT FALSE,
    current_stage INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_stage CHECK (current_stage BETWEEN 1 AND 4)
);
`

const migration001Down = `
DROP TABLE IF EXISTS user_progress;
DROP TABLE IF EXISTS profiles;
DROP TABLE IF EXISTS students;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: SHORTLISTS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create shortlists table
-- Version: 002

CREATE TABLE IF NOT EXISTS shortlists (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    university_name VARCHAR(255) NOT NULL,
    data JSONB NOT NULL DEFAULT '{}'::jsonb,
    status VARCHAR(20) NOT NULL DEFAULT 'shortlisted',
    locked_at TIMESTAMP WITH TIME ZONE,
    unlock_reason TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_shortlist_status CHECK (status IN ('shortlisted', 'locked')),
    CONSTRAINT uniq_student_university UNIQUE (user_id, university_name)
);

CREATE INDEX IF NOT EXISTS idx_shortlists_user_id ON shortlists(user_id);

-- Backstop for the at-most-one-locked invariant. The conditional UPDATE
-- in the repository is the primary enforcement; this index makes a
-- second locked row impossible even under a bug.
CREATE UNIQUE INDEX IF NOT EXISTS uniq_shortlists_one_locked
    ON shortlists(user_id) WHERE status = 'locked';
`

const migration002Down = `
DROP TABLE IF EXISTS shortlists;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CATALOG, CHECKLIST
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Create universities catalog and application checklist
-- Version: 003

-- Read-only reference data, seeded out of band.
CREATE TABLE IF NOT EXISTS universities (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(255) NOT NULL,
    country VARCHAR(100) NOT NULL,
    tuition_fee INTEGER NOT NULL DEFAULT 0,
    living_cost INTEGER NOT NULL DEFAULT 0,
    acceptance_rate DECIMAL(5,2) NOT NULL DEFAULT 0,
    ranking INTEGER NOT NULL DEFAULT 0,
    programs JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_universities_country ON universities(country);
CREATE INDEX IF NOT EXISTS idx_universities_ranking ON universities(ranking);

-- Persisted stage-4 rows, generated on the first checklist fetch after a
-- lock.
CREATE TABLE IF NOT EXISTS application_checklist (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    university_id UUID NOT NULL,
    name VARCHAR(255) NOT NULL,
    category VARCHAR(50) NOT NULL,
    priority VARCHAR(20) NOT NULL,
    due_date TIMESTAMP WITH TIME ZONE NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_checklist_status CHECK (status IN ('pending', 'done'))
);

CREATE INDEX IF NOT EXISTS idx_checklist_student_due
    ON application_checklist(student_id, due_date);
`

const migration003Down = `
DROP TABLE IF EXISTS application_checklist;
DROP TABLE IF EXISTS universities;
`
