package tasks

import (
	"context"
	"time"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
	"github.com/uniguide-hub/uniguide-server/pkg/timeutil"
)

// Checklist item status.
const (
	ChecklistPending = "pending"
	ChecklistDone    = "done"
)

// ChecklistItem is a persisted application to-do row tied to a locked
// university. Unlike generated tasks these carry due dates and survive
// reads.
type ChecklistItem struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"-"`
	UniversityID string    `json:"university_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Priority     string    `json:"priority"`
	DueDate      time.Time `json:"due_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsDone reports whether the item is completed.
func (c ChecklistItem) IsDone() bool {
	return c.Status == ChecklistDone
}

// checklistSeed describes one generated checklist row.
type checklistSeed struct {
	name       string
	category   string
	priority   string
	daysOffset int
}

// Base checklist generated for every locked university.
var baseChecklist = []checklistSeed{
	{"Draft Statement of Purpose (SOP)", "Essay", "High", 14},
	{"Request 3 Letters of Recommendation", "Document", "High", 7},
	{"Order Official Transcripts", "Document", "Medium", 10},
	{"Complete Online Application", "Application", "High", 30},
}

// Country-specific deviations appended after the base list.
var countryChecklist = map[string]checklistSeed{
	"USA": {"Send GRE/SAT Scores", "Test", "Medium", 20},
	"UK":  {"Write Personal Statement (UCAS)", "Essay", "High", 14},
}

var defaultCountryItem = checklistSeed{"Check English Proficiency Req (IELTS/TOEFL)", "Test", "High", 5}

// BuildChecklist generates the application checklist for a locked
// university. IDs are assigned by newID; due dates count from now.
func BuildChecklist(locked *shortlist.Entry, now time.Time, newID func() string) []ChecklistItem {
	seeds := append([]checklistSeed{}, baseChecklist...)

	country := locked.Data.Country
	if item, ok := countryChecklist[country]; ok {
		seeds = append(seeds, item)
	} else {
		seeds = append(seeds, defaultCountryItem)
	}

	items := make([]ChecklistItem, 0, len(seeds))
	for _, s := range seeds {
		items = append(items, ChecklistItem{
			ID:           newID(),
			StudentID:    locked.StudentID,
			UniversityID: locked.ID,
			Name:         s.name,
			Category:     s.category,
			Priority:     s.priority,
			DueDate:      timeutil.DueIn(now, s.daysOffset),
			Status:       ChecklistPending,
			CreatedAt:    now,
		})
	}
	return items
}

// ChecklistRepository defines storage for persisted checklist rows.
type ChecklistRepository interface {
	// CreateBatch inserts generated rows.
	CreateBatch(ctx context.Context, items []ChecklistItem) error

	// ListByStudent returns the student's rows ordered by due date.
	ListByStudent(ctx context.Context, studentID string) ([]ChecklistItem, error)

	// SetStatus updates one row's status with an ownership check.
	// Returns shared.ErrChecklistItemNotFound when absent or not owned.
	SetStatus(ctx context.Context, studentID, itemID, status string) error
}
