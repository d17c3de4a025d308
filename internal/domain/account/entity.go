// Package account contains the student account aggregate. Registration
// provisions the account together with an empty profile and a stage-1
// progression in one transaction.
package account

import (
	"strings"
	"time"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// Account is a registered student.
type Account struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New validates and creates an account. The password hash is produced by
// the caller; this package never sees plaintext credentials.
func New(id, fullName, email, passwordHash string) (*Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || passwordHash == "" {
		return nil, shared.ErrWeakCredentials
	}
	now := time.Now()
	return &Account{
		ID:           id,
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
