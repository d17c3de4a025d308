// Package profile contains the student profile aggregate: structured
// academic, goal, budget and exam data plus student-owned custom tasks.
// The strength scorer over this data lives in strength.go.
package profile

import (
	"strconv"
	"strings"
	"time"
)

// Status reports whether the onboarding profile has been finished.
type Status string

const (
	// StatusIncomplete - the profile is still being built.
	StatusIncomplete Status = "incomplete"
	// StatusComplete - onboarding finished; set together with the
	// progress transition to stage 2.
	StatusComplete Status = "complete"
)

// IsValid checks that the status is one of the known values.
func (s Status) IsValid() bool {
	return s == StatusIncomplete || s == StatusComplete
}

// Section identifies one independently writable profile section.
type Section string

const (
	SectionAcademic Section = "academic"
	SectionGoals    Section = "goals"
	SectionBudget   Section = "budget"
	SectionExams    Section = "exams"
)

// IsValid checks that the section is writable.
func (s Section) IsValid() bool {
	switch s {
	case SectionAcademic, SectionGoals, SectionBudget, SectionExams:
		return true
	default:
		return false
	}
}

// AcademicData holds the academic background section. Numeric values are
// kept as submitted strings and parsed on read, so an absent field is
// distinguishable from zero.
type AcademicData struct {
	CurrentDegree string `json:"currentDegree,omitempty"`
	Major         string `json:"major,omitempty"`
	GPA           string `json:"gpa,omitempty"`
	GradYear      string `json:"gradYear,omitempty"`
}

// GPAValue parses the GPA. The second return is false when no GPA was
// provided or it does not parse.
func (a AcademicData) GPAValue() (float64, bool) {
	s := strings.TrimSpace(a.GPA)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// StudyGoals holds the target-program section.
type StudyGoals struct {
	TargetDegree string   `json:"targetDegree,omitempty"`
	TargetField  string   `json:"targetField,omitempty"`
	Intake       string   `json:"intake,omitempty"`
	Countries    []string `json:"countries,omitempty"`
}

// Budget holds the funding section. BudgetRange is a "low-high" string,
// e.g. "20000-40000".
type Budget struct {
	BudgetRange   string `json:"budgetRange,omitempty"`
	FundingSource string `json:"fundingSource,omitempty"`
}

// DefaultBudgetCeiling is assumed when no parseable range was provided.
const DefaultBudgetCeiling = 50000

// Ceiling returns the upper bound of the budget range, falling back to
// DefaultBudgetCeiling when the range is absent or unparseable.
func (b Budget) Ceiling() int {
	parts := strings.SplitN(b.BudgetRange, "-", 2)
	if len(parts) != 2 {
		return DefaultBudgetCeiling
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || v <= 0 {
		return DefaultBudgetCeiling
	}
	return v
}

// SOPStatus values tracked in the exams section.
const (
	SOPNotStarted = "Not Started"
	SOPDraft      = "Draft"
	SOPReady      = "Ready"
)

// Exams holds exam scores and the SOP status. Score fields keep the
// submitted string form; accessors parse them.
type Exams struct {
	IELTSScore string `json:"ieltsScore,omitempty"`
	TOEFLScore string `json:"toeflScore,omitempty"`
	GREScore   string `json:"greScore,omitempty"`
	GMATScore  string `json:"gmatScore,omitempty"`
	SOPStatus  string `json:"sopStatus,omitempty"`
}

func parseScore(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IELTS returns the parsed IELTS band, if any.
func (e Exams) IELTS() (float64, bool) { return parseScore(e.IELTSScore) }

// TOEFL returns the parsed TOEFL score, if any.
func (e Exams) TOEFL() (float64, bool) { return parseScore(e.TOEFLScore) }

// GRE returns the parsed GRE score, if any.
func (e Exams) GRE() (float64, bool) { return parseScore(e.GREScore) }

// GMAT returns the parsed GMAT score, if any.
func (e Exams) GMAT() (float64, bool) { return parseScore(e.GMATScore) }

// CustomTask is a student- or counsellor-added task stored on the profile.
// Unlike generated tasks these are persisted and never regenerated.
type CustomTask struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Critical bool   `json:"critical,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Profile is the per-student structured data aggregate (1:1 with the
// student account). Created on first section write, mutated per section.
type Profile struct {
	StudentID   string
	Academic    AcademicData
	Goals       StudyGoals
	Budget      Budget
	Exams       Exams
	CustomTasks []CustomTask
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates an empty incomplete profile for the student.
func New(studentID string) *Profile {
	now := time.Now()
	return &Profile{
		StudentID:   studentID,
		Status:      StatusIncomplete,
		CustomTasks: []CustomTask{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsComplete reports whether onboarding finished for this profile.
func (p *Profile) IsComplete() bool {
	return p.Status == StatusComplete
}
