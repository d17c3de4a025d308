// Package progress contains the progression state machine that gates
// feature access across the student application journey. This is core
// business logic with no external dependencies.
package progress

import (
	"time"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// STAGE VALUE OBJECT
// ══════════════════════════════════════════════════════════════════════════════

// Stage identifies a step of the fixed application journey.
type Stage int

const (
	// StageBuildingProfile - the student is completing the onboarding profile.
	StageBuildingProfile Stage = 1
	// StageDiscovery - university discovery and shortlisting is open.
	StageDiscovery Stage = 2
	// StageFinalizing - counselling done, the student picks a final choice.
	StageFinalizing Stage = 3
	// StageApplication - a university is locked, application tracking is open.
	StageApplication Stage = 4
)

// IsValid checks that the stage is within the journey.
func (s Stage) IsValid() bool {
	return s >= StageBuildingProfile && s <= StageApplication
}

// Int returns the underlying int value.
func (s Stage) Int() int {
	return int(s)
}

// Name returns the human-readable stage name.
func (s Stage) Name() string {
	switch s {
	case StageBuildingProfile:
		return "Building Profile"
	case StageDiscovery:
		return "Discovery"
	case StageFinalizing:
		return "Finalizing"
	case StageApplication:
		return "Application"
	default:
		return "Unknown"
	}
}

// JourneyPercent returns how far through the journey this stage sits.
func (s Stage) JourneyPercent() int {
	switch s {
	case StageBuildingProfile:
		return 25
	case StageDiscovery:
		return 50
	case StageFinalizing:
		return 75
	case StageApplication:
		return 100
	default:
		return 0
	}
}

// Description returns the short call to action shown for the stage.
func (s Stage) Description() string {
	switch s {
	case StageBuildingProfile:
		return "Complete your academic profile"
	case StageDiscovery:
		return "Explore and shortlist universities"
	case StageFinalizing:
		return "Lock your target university"
	case StageApplication:
		return "Complete application requirements"
	default:
		return ""
	}
}

// LandingPath returns the canonical landing resource for the stage. Gate
// failures tell the caller to redirect here.
func (s Stage) LandingPath() string {
	switch s {
	case StageBuildingProfile:
		return "/onboarding/profile"
	case StageDiscovery:
		return "/discovery"
	case StageFinalizing:
		return "/counsellor"
	case StageApplication:
		return "/shortlist"
	default:
		return "/onboarding/profile"
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// GATE ERROR
// ══════════════════════════════════════════════════════════════════════════════

// GateError reports a failed stage gate check. It carries everything the
// caller needs to redirect the student to the right place.
type GateError struct {
	CurrentStage  Stage
	RequiredStage Stage
	RedirectTo    string
}

// Error implements the error interface.
func (e *GateError) Error() string {
	return "stage gate blocked: at stage " + e.CurrentStage.Name() +
		", stage " + e.RequiredStage.Name() + " required"
}

// Is makes GateError match shared.ErrForbidden.
func (e *GateError) Is(target error) bool {
	return target == shared.ErrForbidden
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS ENTITY (STATE MACHINE)
// ══════════════════════════════════════════════════════════════════════════════

// Progress holds a student's journey flags and current stage. One row per
// student, created at account creation with CurrentStage=1.
//
// Invariant: CurrentStage is monotonically non-decreasing, except for the
// single explicit unlock rollback 4→3.
type Progress struct {
	// StudentID - the owning student (1:1).
	StudentID string

	// OnboardingCompleted - the onboarding profile has been finished.
	OnboardingCompleted bool

	// CounsellorCompleted - the AI counsellor session has been finished.
	CounsellorCompleted bool

	// ApplicationLocked - a university is currently locked.
	ApplicationLocked bool

	// CurrentStage - the stage the student has reached.
	CurrentStage Stage

	// CreatedAt - when the progression row was created.
	CreatedAt time.Time

	// UpdatedAt - last transition time.
	UpdatedAt time.Time
}

// New creates a fresh progression for a new account at stage 1.
func New(studentID string) *Progress {
	now := time.Now()
	return &Progress{
		StudentID:    studentID,
		CurrentStage: StageBuildingProfile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Allow is the stage gate predicate consulted before any gated operation.
// Returns a GateError (kind Forbidden) when the student has not reached
// the required stage yet; the redirect points at the current stage's
// canonical landing resource.
func (p *Progress) Allow(required Stage) error {
	if p.CurrentStage >= required {
		return nil
	}
	return &GateError{
		CurrentStage:  p.CurrentStage,
		RequiredStage: required,
		RedirectTo:    p.CurrentStage.LandingPath(),
	}
}

// CompleteOnboarding marks onboarding done and advances to stage 2.
// Idempotent: calling again when already past stage 2 changes nothing and
// reports false.
func (p *Progress) CompleteOnboarding() bool {
	changed := !p.OnboardingCompleted || p.CurrentStage < StageDiscovery
	p.OnboardingCompleted = true
	p.CurrentStage = max(p.CurrentStage, StageDiscovery)
	if changed {
		p.UpdatedAt = time.Now()
	}
	return changed
}

// CompleteCounsellor marks the counsellor session done and advances to
// stage 3. Requires the student to have reached stage 2: skipping the
// discovery stage outright is not allowed.
func (p *Progress) CompleteCounsellor() error {
	if p.CurrentStage < StageDiscovery {
		return shared.ErrCounsellorTooEarly
	}
	p.CounsellorCompleted = true
	p.CurrentStage = max(p.CurrentStage, StageFinalizing)
	p.UpdatedAt = time.Now()
	return nil
}

// LockUniversity records that a university was locked and advances to
// stage 4. The at-most-one-locked invariant itself is enforced by the
// shortlist manager; this transition only requires stage 3.
func (p *Progress) LockUniversity() error {
	if err := p.Allow(StageFinalizing); err != nil {
		return err
	}
	p.ApplicationLocked = true
	p.CurrentStage = max(p.CurrentStage, StageApplication)
	p.UpdatedAt = time.Now()
	return nil
}

// UnlockUniversity records that the locked university was released. The
// stage rolls back to 3 only from stage 4; a student re-opening an older
// application mode keeps their stage.
func (p *Progress) UnlockUniversity() {
	p.ApplicationLocked = false
	if p.CurrentStage >= StageApplication {
		p.CurrentStage = StageFinalizing
	}
	p.UpdatedAt = time.Now()
}

// ══════════════════════════════════════════════════════════════════════════════
// JOURNEY VIEW
// ══════════════════════════════════════════════════════════════════════════════

// StageView describes one stage of the journey for presentation.
type StageView struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Progress       int    `json:"progress"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	IsPassed       bool   `json:"isPassed"`
	IsLocked       bool   `json:"isLocked"`
	BlockingReason string `json:"blockingReason,omitempty"`
}

// JourneyView is the full four-stage journey with the blocking reason for
// each stage the student has not unlocked yet.
type JourneyView struct {
	Current StageView   `json:"current"`
	All     []StageView `json:"all"`
}

// blockingReason names what unlocks the given stage.
func blockingReason(s Stage) string {
	switch s {
	case StageDiscovery:
		return "Complete your profile in the Onboarding flow"
	case StageFinalizing:
		return "Complete a session with the AI Counsellor"
	case StageApplication:
		return "Lock a university from your shortlist"
	default:
		return ""
	}
}

// Journey builds the presentation view of the whole journey.
func (p *Progress) Journey() JourneyView {
	all := make([]StageView, 0, 4)
	var current StageView
	for s := StageBuildingProfile; s <= StageApplication; s++ {
		v := StageView{
			ID:          s.Int(),
			Name:        s.Name(),
			Progress:    s.JourneyPercent(),
			Description: s.Description(),
			IsActive:    s == p.CurrentStage,
			IsPassed:    s < p.CurrentStage,
			IsLocked:    s > p.CurrentStage,
		}
		if v.IsLocked {
			v.BlockingReason = blockingReason(s)
		}
		if v.IsActive {
			current = v
		}
		all = append(all, v)
	}
	return JourneyView{Current: current, All: all}
}
