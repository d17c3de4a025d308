// Package matching scores catalog universities against a student profile
// and derives a coarse admission-likelihood label. Pure functions, no
// external dependencies.
package matching

import (
	"sort"
	"strings"

	"github.com/uniguide-hub/uniguide-server/internal/domain/catalog"
	"github.com/uniguide-hub/uniguide-server/internal/domain/profile"
)

// Label is the coarse admission-likelihood category.
type Label string

const (
	// LabelSafe - strong fit with a forgiving acceptance rate.
	LabelSafe Label = "Safe"
	// LabelTarget - realistic fit.
	LabelTarget Label = "Target"
	// LabelDream - reach school.
	LabelDream Label = "Dream"
)

// Scoring constants. The base is adjusted by GPA fit and acceptance-rate
// risk, then the label thresholds are applied in documented order.
const (
	baseScore = 50

	gpaMeetsBonus       = 20
	gpaSlightlyBelow    = -10
	gpaSignificantBelow = -30
	gpaSlackBand        = 0.2

	competitiveRatePenalty = -10
	generousRateBonus      = 10
	competitiveRateCutoff  = 10.0
	generousRateCutoff     = 50.0

	safeScoreFloor     = 70
	safeAcceptanceRate = 30.0
	targetScoreFloor   = 50

	// Top-10 schools stay Dream unless the profile is near perfect.
	topRankedCutoff   = 10
	topRankedMinScore = 90

	// Assumed when the profile has no GPA yet.
	assumedGPA = 3.0
)

// requiredGPATiers maps ranking tiers to the GPA a typical admit needs.
// Ordered best ranking first; the first matching tier wins.
var requiredGPATiers = []struct {
	maxRanking  int
	requiredGPA float64
}{
	{20, 3.8},
	{100, 3.4},
}

const defaultRequiredGPA = 3.0

// requiredGPAFor returns the GPA threshold for a ranking tier.
func requiredGPAFor(ranking int) float64 {
	for _, t := range requiredGPATiers {
		if ranking < t.maxRanking {
			return t.requiredGPA
		}
	}
	return defaultRequiredGPA
}

// Result is the outcome of matching one university.
type Result struct {
	Score     int    `json:"score"`
	Label     Label  `json:"label"`
	FitReason string `json:"fitReason"`
}

// Match scores the university against the profile.
func Match(p *profile.Profile, u catalog.University) Result {
	score := baseScore
	var reasons []string

	gpa, ok := p.Academic.GPAValue()
	if !ok {
		gpa = assumedGPA
	}

	required := requiredGPAFor(u.Ranking)
	switch {
	case gpa >= required:
		score += gpaMeetsBonus
		reasons = append(reasons, "Your GPA meets the requirements.")
	case gpa >= required-gpaSlackBand:
		score += gpaSlightlyBelow
		reasons = append(reasons, "GPA is slightly below average admits.")
	default:
		score += gpaSignificantBelow
		reasons = append(reasons, "GPA is significantly below average.")
	}

	if u.AcceptanceRate < competitiveRateCutoff {
		score += competitiveRatePenalty
		reasons = append(reasons, "Highly competitive acceptance rate.")
	} else if u.AcceptanceRate > generousRateCutoff {
		score += generousRateBonus
		reasons = append(reasons, "Good acceptance chance.")
	}

	// Label thresholds are evaluated in this order on purpose: a low
	// score stays Dream even when the acceptance rate is generous.
	var label Label
	switch {
	case score >= safeScoreFloor && u.AcceptanceRate > safeAcceptanceRate:
		label = LabelSafe
	case score >= targetScoreFloor:
		label = LabelTarget
	default:
		label = LabelDream
	}

	if u.Ranking <= topRankedCutoff && score < topRankedMinScore {
		label = LabelDream
	}

	return Result{
		Score:     score,
		Label:     label,
		FitReason: strings.Join(reasons, " "),
	}
}

// ScoredUniversity pairs a catalog record with its match and cost results.
type ScoredUniversity struct {
	University catalog.University `json:"university"`
	Match      Result             `json:"match"`
	Cost       Cost               `json:"cost"`
}

// Rank matches and cost-checks every university and sorts by score
// descending. The sort is stable, so ties keep catalog order.
func Rank(p *profile.Profile, universities []catalog.University) []ScoredUniversity {
	out := make([]ScoredUniversity, 0, len(universities))
	for _, u := range universities {
		out = append(out, ScoredUniversity{
			University: u,
			Match:      Match(p, u),
			Cost:       EstimateCost(p.Budget, u),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.Score > out[j].Match.Score
	})
	return out
}
