package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uniguide-hub/uniguide-server/internal/domain/account"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACCOUNT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AccountRepository implements account.Repository for PostgreSQL.
type AccountRepository struct {
	conn *Connection
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(conn *Connection) *AccountRepository {
	return &AccountRepository{conn: conn}
}

// CreateWithJourney inserts the account plus its empty profile and
// stage-1 progression in one transaction.
func (r *AccountRepository) CreateWithJourney(ctx context.Context, a *account.Account) error {
	err := r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO students (id, full_name, email, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.FullName, a.Email, a.PasswordHash, a.CreatedAt, a.UpdatedAt)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (student_id) VALUES ($1)
		`, a.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO user_progress (student_id) VALUES ($1)
		`, a.ID)
		return err
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrEmailTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID returns an account by internal ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	row := r.conn.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, created_at, updated_at
		FROM students
		WHERE id = $1
	`, id)
	return scanAccount(row)
}

// GetByEmail returns an account by email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	row := r.conn.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, created_at, updated_at
		FROM students
		WHERE email = $1
	`, email)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var a account.Account
	err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}
