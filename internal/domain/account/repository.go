package account

import (
	"context"
)

// Repository defines storage operations for student accounts.
type Repository interface {
	// CreateWithJourney inserts the account plus its empty profile and
	// stage-1 progression in one transaction. Returns shared.ErrEmailTaken
	// when the email (or ID) already exists; the caller resolves the race
	// by re-reading, never by failing a first-time identity arrival.
	CreateWithJourney(ctx context.Context, a *Account) error

	// GetByID returns an account by internal ID.
	// Returns shared.ErrAccountNotFound when absent.
	GetByID(ctx context.Context, id string) (*Account, error)

	// GetByEmail returns an account by email.
	// Returns shared.ErrAccountNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*Account, error)
}
