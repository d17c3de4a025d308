package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// STRENGTH SCORER
//
// Pure function over a Profile snapshot. Deterministic and side-effect
// free, so the same snapshot always re-derives the same result for tests
// and for counsellor context construction.
//
// The thresholds are tier tables rather than branching so each table is
// independently testable.
// ══════════════════════════════════════════════════════════════════════════════

// CategoryStrength is the per-category breakdown of the score.
type CategoryStrength struct {
	Status  string `json:"status"`
	Score   int    `json:"score"`
	Details string `json:"details"`
}

// OverallStrength is the summary score and label.
type OverallStrength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// Strength is the full profile-strength report.
type Strength struct {
	Overall         OverallStrength  `json:"overall"`
	Academics       CategoryStrength `json:"academics"`
	Exams           CategoryStrength `json:"exams"`
	SOP             CategoryStrength `json:"sop"`
	Missing         []string         `json:"missing"`
	Recommendations []string         `json:"recommendations"`
}

// Category maxima and label thresholds.
const (
	maxAcademicsScore = 40
	maxExamsScore     = 35
	maxSOPScore       = 25

	strongThreshold  = 80
	averageThreshold = 50
)

// Missing item names, also consumed by the task generator.
const (
	MissingGPA         = "GPA"
	MissingEnglishTest = "English Test"
	MissingSOP         = "Statement of Purpose"
)

// scoreTier maps a minimum value to a score with presentation metadata.
// Tables are ordered highest minimum first; the first matching tier wins.
type scoreTier struct {
	min     float64
	score   int
	status  string
	details string // format string receiving the formatted value
}

// formatScore renders a score the way students typed it: no trailing zeros.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var gpaTiers = []scoreTier{
	{3.7, 40, "Strong", "GPA %s is excellent"},
	{3.3, 35, "Strong", "GPA %s is competitive"},
	{3.0, 25, "Average", "GPA %s meets minimum requirements"},
	{0, 15, "Weak", "GPA %s may limit options"},
}

var ieltsTiers = []scoreTier{
	{7.5, 20, "", "IELTS %s (Excellent)"},
	{6.5, 15, "", "IELTS %s (Good)"},
	{0, 10, "", "IELTS %s (Minimum)"},
}

var toeflTiers = []scoreTier{
	{100, 20, "", "TOEFL %s (Excellent)"},
	{90, 15, "", "TOEFL %s (Good)"},
	{0, 10, "", "TOEFL %s (Minimum)"},
}

var greTiers = []scoreTier{
	{320, 15, "", "GRE %s (Excellent)"},
	{310, 12, "", "GRE %s (Good)"},
	{0, 8, "", "GRE %s (Average)"},
}

func pickTier(tiers []scoreTier, value float64) scoreTier {
	for _, t := range tiers {
		if value >= t.min {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// overallLabel derives the summary label from the total score.
func overallLabel(total int) string {
	switch {
	case total >= strongThreshold:
		return "Strong"
	case total >= averageThreshold:
		return "Average"
	default:
		return "Weak"
	}
}

// ComputeStrength scores the profile across academics, exams and SOP,
// collects missing items and recommendations, and labels the total.
func ComputeStrength(p *Profile) Strength {
	s := Strength{
		Academics:       CategoryStrength{Status: "Weak"},
		Exams:           CategoryStrength{Status: "Not Started"},
		SOP:             CategoryStrength{Status: "Not Started"},
		Missing:         []string{},
		Recommendations: []string{},
	}

	// Academics (0-40)
	if gpa, ok := p.Academic.GPAValue(); ok {
		t := pickTier(gpaTiers, gpa)
		s.Academics = CategoryStrength{
			Status:  t.status,
			Score:   t.score,
			Details: fmt.Sprintf(t.details, formatScore(gpa)),
		}
		if t.score == 15 {
			s.Recommendations = append(s.Recommendations, "Consider programs with holistic admissions")
		}
	} else {
		s.Missing = append(s.Missing, MissingGPA)
		s.Academics.Details = "GPA not provided"
	}

	// Exams (0-35): English tier plus GRE/GMAT tier.
	examScore := 0
	var examDetails []string

	if ielts, ok := p.Exams.IELTS(); ok {
		t := pickTier(ieltsTiers, ielts)
		examScore += t.score
		examDetails = append(examDetails, fmt.Sprintf(t.details, formatScore(ielts)))
		if t.score == 10 {
			s.Recommendations = append(s.Recommendations, "Consider retaking IELTS for better score")
		}
	} else if toefl, ok := p.Exams.TOEFL(); ok {
		t := pickTier(toeflTiers, toefl)
		examScore += t.score
		examDetails = append(examDetails, fmt.Sprintf(t.details, formatScore(toefl)))
	} else {
		s.Missing = append(s.Missing, MissingEnglishTest)
		examDetails = append(examDetails, "English proficiency test pending")
	}

	if gre, ok := p.Exams.GRE(); ok {
		t := pickTier(greTiers, gre)
		examScore += t.score
		examDetails = append(examDetails, fmt.Sprintf(t.details, formatScore(gre)))
	} else if gmat, ok := p.Exams.GMAT(); ok {
		gmatScore := int(math.Min(15, math.Floor(gmat/50)))
		examScore += gmatScore
		examDetails = append(examDetails, fmt.Sprintf("GMAT %s", formatScore(gmat)))
	}

	examStatus := "Not Started"
	switch {
	case examScore == 0:
		examStatus = "Not Started"
	case examScore < 20:
		examStatus = "In Progress"
	default:
		examStatus = "Completed"
	}
	s.Exams = CategoryStrength{
		Status:  examStatus,
		Score:   examScore,
		Details: strings.Join(examDetails, ", "),
	}

	// SOP (0-25)
	switch p.Exams.SOPStatus {
	case SOPReady:
		s.SOP = CategoryStrength{Status: SOPReady, Score: 25, Details: "SOP completed and polished"}
	case SOPDraft:
		s.SOP = CategoryStrength{Status: SOPDraft, Score: 15, Details: "SOP in progress - needs refinement"}
		s.Recommendations = append(s.Recommendations, "Finalize your Statement of Purpose")
	default:
		s.SOP = CategoryStrength{Status: SOPNotStarted, Score: 0, Details: "SOP not started yet"}
		s.Missing = append(s.Missing, MissingSOP)
		s.Recommendations = append(s.Recommendations, "Start drafting your Statement of Purpose")
	}

	total := s.Academics.Score + s.Exams.Score + s.SOP.Score
	s.Overall = OverallStrength{Score: total, Label: overallLabel(total)}

	return s
}
