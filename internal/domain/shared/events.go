// Package shared contains common domain types, errors, and events that are
// used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in a student's application journey.
const (
	// Account events
	EventStudentRegistered EventType = "account.registered"

	// Profile events
	EventProfileUpdated EventType = "profile.updated"

	// Progress events
	EventOnboardingCompleted EventType = "progress.onboarding_completed"
	EventCounsellorCompleted EventType = "progress.counsellor_completed"

	// Shortlist events
	EventShortlistAdded      EventType = "shortlist.added"
	EventShortlistRemoved    EventType = "shortlist.removed"
	EventUniversityLocked    EventType = "shortlist.locked"
	EventUniversityUnlocked  EventType = "shortlist.unlocked"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	// For this service that is always the owning student's ID.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// EventHandler processes a published domain event.
type EventHandler func(event Event) error

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, studentID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: studentID,
	}
}

// StudentRegisteredEvent is emitted when a new student account is provisioned.
type StudentRegisteredEvent struct {
	BaseEvent
	Email string `json:"email"`
}

// Payload implements Event interface.
func (e StudentRegisteredEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"email": e.Email}
}

// NewStudentRegisteredEvent creates a new StudentRegisteredEvent.
func NewStudentRegisteredEvent(studentID, email string) StudentRegisteredEvent {
	return StudentRegisteredEvent{
		BaseEvent: NewBaseEvent(EventStudentRegistered, studentID),
		Email:     email,
	}
}

// ProfileUpdatedEvent is emitted when a profile section is written.
type ProfileUpdatedEvent struct {
	BaseEvent
	Section string `json:"section"`
}

// Payload implements Event interface.
func (e ProfileUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"section": e.Section}
}

// NewProfileUpdatedEvent creates a new ProfileUpdatedEvent.
func NewProfileUpdatedEvent(studentID, section string) ProfileUpdatedEvent {
	return ProfileUpdatedEvent{
		BaseEvent: NewBaseEvent(EventProfileUpdated, studentID),
		Section:   section,
	}
}

// StageAdvancedEvent is emitted when a progress transition commits.
// Covers onboarding and counsellor completion.
type StageAdvancedEvent struct {
	BaseEvent
	Stage int `json:"stage"`
}

// Payload implements Event interface.
func (e StageAdvancedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"stage": e.Stage}
}

// NewStageAdvancedEvent creates a new StageAdvancedEvent.
func NewStageAdvancedEvent(eventType EventType, studentID string, stage int) StageAdvancedEvent {
	return StageAdvancedEvent{
		BaseEvent: NewBaseEvent(eventType, studentID),
		Stage:     stage,
	}
}

// ShortlistChangedEvent is emitted on add, remove, lock and unlock.
type ShortlistChangedEvent struct {
	BaseEvent
	EntryID        string `json:"entry_id"`
	UniversityName string `json:"university_name"`
	Reason         string `json:"reason,omitempty"`
}

// Payload implements Event interface.
func (e ShortlistChangedEvent) Payload() map[string]interface{} {
	p := map[string]interface{}{
		"entry_id":        e.EntryID,
		"university_name": e.UniversityName,
	}
	if e.Reason != "" {
		p["reason"] = e.Reason
	}
	return p
}

// NewShortlistChangedEvent creates a new ShortlistChangedEvent.
func NewShortlistChangedEvent(eventType EventType, studentID, entryID, universityName, reason string) ShortlistChangedEvent {
	return ShortlistChangedEvent{
		BaseEvent:      NewBaseEvent(eventType, studentID),
		EntryID:        entryID,
		UniversityName: universityName,
		Reason:         reason,
	}
}
