// Package command contains write operations (CQRS - Commands).
// Commands are responsible for changing the state of the system. Every
// mutation of the journey goes through a command so the invariants are
// enforced in exactly one place.
package command

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/uniguide-hub/uniguide-server/internal/domain/account"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/pkg/retry"
)

// EventPublisher publishes domain events to interested handlers.
type EventPublisher interface {
	Publish(event shared.Event) error
}

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER STUDENT COMMAND
// Provisions the account, an empty profile and a stage-1 progression in
// one transaction. First-time identity arrival must be idempotent:
// concurrent duplicates resolve by re-reading, never by failing.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentCommand contains the data needed to register a student.
type RegisterStudentCommand struct {
	FullName string
	Email    string
	Password string
}

// Validate validates the command.
func (c RegisterStudentCommand) Validate() error {
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Password) == "" {
		return shared.ErrWeakCredentials
	}
	return nil
}

// RegisterStudentResult contains the result of registration.
type RegisterStudentResult struct {
	StudentID string
	Email     string
	FullName  string

	// AlreadyExisted is true when a concurrent or repeated registration
	// found the account already provisioned.
	AlreadyExisted bool
}

// RegisterStudentHandler handles student registration.
type RegisterStudentHandler struct {
	accounts account.Repository
	events   EventPublisher
}

// NewRegisterStudentHandler creates a new RegisterStudentHandler.
func NewRegisterStudentHandler(accounts account.Repository, events EventPublisher) *RegisterStudentHandler {
	return &RegisterStudentHandler{accounts: accounts, events: events}
}

// Handle executes the command.
func (h *RegisterStudentHandler) Handle(ctx context.Context, cmd RegisterStudentCommand) (*RegisterStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.WrapError("account", "Register", shared.ErrBadRequest, "failed to hash password", err)
	}

	acct, err := account.New(uuid.NewString(), cmd.FullName, cmd.Email, string(hash))
	if err != nil {
		return nil, err
	}

	var result *RegisterStudentResult
	err = retry.Do(ctx, retry.Quick(), func() error {
		createErr := h.accounts.CreateWithJourney(ctx, acct)
		if createErr == nil {
			result = &RegisterStudentResult{
				StudentID: acct.ID,
				Email:     acct.Email,
				FullName:  acct.FullName,
			}
			return nil
		}

		if errors.Is(createErr, shared.ErrConflict) {
			// Lost the creation race (or repeat call): adopt the row the
			// winner wrote.
			existing, getErr := h.accounts.GetByEmail(ctx, acct.Email)
			if getErr != nil {
				// The winner's transaction may not be visible yet.
				return retry.Retryable(getErr)
			}
			result = &RegisterStudentResult{
				StudentID:      existing.ID,
				Email:          existing.Email,
				FullName:       existing.FullName,
				AlreadyExisted: true,
			}
			return nil
		}

		return retry.Permanent(createErr)
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyExisted && h.events != nil {
		_ = h.events.Publish(shared.NewStudentRegisteredEvent(result.StudentID, result.Email))
	}

	return result, nil
}
