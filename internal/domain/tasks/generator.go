// Package tasks derives stage-appropriate task lists from the profile,
// progression, strength report and locked shortlist entries. Generated
// tasks are value objects recomputed on every read; only custom tasks and
// the stage-4 application checklist are persisted.
package tasks

import (
	"fmt"
	"strings"

	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
)

// Task is one derived to-do item.
type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Critical bool   `json:"critical"`
	Type     string `json:"type"`
}

// Task type tags.
const (
	TypeProfile     string = "profile"
	TypeExam        string = "exam"
	TypeDiscovery   string = "discovery"
	TypeCounsellor  string = "counsellor"
	TypeFinalize    string = "finalize"
	TypeSOP         string = "sop"
	TypeLOR         string = "lor"
	TypeApplication string = "application"
	TypeVisa        string = "visa"
	TypeMissing     string = "missing"
	TypeCustom      string = "custom"
)

// Generate derives the task list for the student's current stage, then
// appends missing-item tasks from the strength report and the student's
// custom tasks verbatim.
func Generate(p *profile.Profile, stage progress.Stage, strength profile.Strength, locked []*shortlist.Entry) []Task {
	var out []Task

	switch stage {
	case progress.StageBuildingProfile:
		if !p.IsComplete() {
			out = append(out, Task{
				ID:       "profile-complete",
				Title:    "Complete Onboarding Profile",
				Critical: true,
				Type:     TypeProfile,
			})
		}
		// Any exam score, English or graduate, counts as a booked exam.
		if strength.Exams.Score == 0 {
			out = append(out, Task{
				ID:       "book-english-test",
				Title:    "Book IELTS or TOEFL Exam",
				Critical: true,
				Type:     TypeExam,
			})
		}

	case progress.StageDiscovery:
		out = append(out,
			Task{
				ID:    "shortlist-5",
				Title: "Shortlist 5 Universities",
				Type:  TypeDiscovery,
			},
			Task{
				ID:       "counsellor-session",
				Title:    "Complete AI Counsellor Session",
				Critical: true,
				Type:     TypeCounsellor,
			},
		)

	case progress.StageFinalizing:
		out = append(out, Task{
			ID:       "lock-university",
			Title:    "Lock Your Target University",
			Done:     len(locked) > 0,
			Critical: true,
			Type:     TypeFinalize,
		})

	case progress.StageApplication:
		for _, uni := range locked {
			out = append(out,
				Task{
					ID:       "sop-" + uni.ID,
					Title:    fmt.Sprintf("Draft SOP for %s", uni.UniversityName),
					Critical: true,
					Type:     TypeSOP,
				},
				Task{
					ID:       "lor-" + uni.ID,
					Title:    "Request Letters of Recommendation",
					Critical: true,
					Type:     TypeLOR,
				},
				Task{
					ID:       "app-" + uni.ID,
					Title:    fmt.Sprintf("Submit Application to %s", uni.UniversityName),
					Critical: true,
					Type:     TypeApplication,
				},
			)
		}
		out = append(out, Task{
			ID:    "visa-check",
			Title: "Check Visa Requirements",
			Type:  TypeVisa,
		})
	}

	// Anything still missing from the strength report becomes a synthetic
	// critical task, unless a task for it already exists.
	for _, item := range strength.Missing {
		id := missingTaskID(item)
		if hasTask(out, id) {
			continue
		}
		out = append(out, Task{
			ID:       id,
			Title:    "Complete: " + item,
			Critical: true,
			Type:     TypeMissing,
		})
	}

	// Custom tasks pass through untouched; they are never regenerated.
	for _, ct := range p.CustomTasks {
		out = append(out, Task{
			ID:       ct.ID,
			Title:    ct.Title,
			Done:     ct.Done,
			Critical: ct.Critical,
			Type:     ct.Type,
		})
	}

	return out
}

func missingTaskID(item string) string {
	return "missing-" + strings.ReplaceAll(strings.ToLower(item), " ", "-")
}

func hasTask(tasks []Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
