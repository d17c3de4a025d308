package matching

import (
	"fmt"

	"github.com/uniguide-hub/uniguide-server/internal/domain/catalog"
	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
)

// Affordability messages shown with the cost breakdown.
const (
	MessageWithinBudget  = "Within Budget"
	MessageExceedsBudget = "Exceeds Budget"
)

// Cost is the yearly cost estimate for one university against the
// student's budget.
type Cost struct {
	Total      int    `json:"total"`
	Tuition    int    `json:"tuition"`
	Living     int    `json:"living"`
	Affordable bool   `json:"affordable"`
	Message    string `json:"message"`

	// Display is the compact per-year figure, e.g. "$45.0k/yr".
	Display string `json:"display"`
}

// EstimateCost totals tuition and living cost and compares it to the
// upper bound of the student's budget range.
func EstimateCost(b profile.Budget, u catalog.University) Cost {
	tuition := u.Tuition()
	living := u.Living()
	total := tuition + living

	affordable := total <= b.Ceiling()
	message := MessageWithinBudget
	if !affordable {
		message = MessageExceedsBudget
	}

	return Cost{
		Total:      total,
		Tuition:    tuition,
		Living:     living,
		Affordable: affordable,
		Message:    message,
		Display:    fmt.Sprintf("$%.1fk/yr", float64(total)/1000),
	}
}
