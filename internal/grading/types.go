// Package grading turns free-form collaborator text into a strictly
// validated structured grading result. Grade never fails: after bounded
// retries it degrades to a conservative fallback that is visibly flagged,
// so the attempt pipeline never halts on a generation failure.
package grading

import (
	"fmt"
	"strings"
)

// RubricDimension is one expected grading dimension for an item.
type RubricDimension struct {
	Category string
	MaxScore float64
}

// RubricLine is one graded rubric entry in the output.
type RubricLine struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
	Feedback string  `json:"feedback"`
}

// Output is the validated grading result. The same shape is produced by
// AI grading, the MCQ bypass, and the degraded fallback.
type Output struct {
	ScoreNorm float64 `json:"scoreNorm"`
	ScoreRaw  float64 `json:"scoreRaw"`
	MaxScore  float64 `json:"maxScore"`

	RubricBreakdown []RubricLine `json:"rubricBreakdown"`

	Feedback     string   `json:"feedback"`
	ErrorTags    []string `json:"errorTags"`
	MissedPoints []string `json:"missedPoints"`
	NextDrills   []string `json:"nextDrills"`

	// EvidenceRequests lists follow-up material the grader wants from
	// the candidate (cited authority, calculation steps).
	EvidenceRequests []string `json:"evidenceRequests"`

	ModelOutline string `json:"modelOutline"`

	// Degraded marks a fallback result that needs manual review. It is
	// set only by this package and must never be treated as a normal
	// grade downstream.
	Degraded       bool   `json:"degraded"`
	DegradedReason string `json:"degradedReason,omitempty"`
}

// Submission is everything known about the attempt to be graded.
// Optional fields left empty are omitted from the prompt entirely.
type Submission struct {
	AttemptID string
	UserID    string
	ItemID    string
	SkillName string

	QuestionText string
	AnswerText   string

	// Optional prompt sections.
	Context           string
	ModelAnswer       string
	KeyPoints         []string
	AuthorityExcerpts []string
	LectureExcerpts   []string

	// RubricDimensions are the expected grading dimensions. Required for
	// AI grading; also the shape of the fallback rubric.
	RubricDimensions []RubricDimension

	// MCQ fields. When both are set the generation collaborator is
	// bypassed entirely.
	SelectedOption string
	CorrectOption  string
	IsMCQ          bool
}

// ParseError indicates no JSON object could be located in the response.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "parse grading response: " + e.Msg
}

// ValidationError collects every schema violation found in a parsed
// response. It is never fail-fast: all violated fields are reported
// together.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("grading response invalid (%d violations): %s",
		len(e.Violations), strings.Join(e.Violations, "; "))
}
