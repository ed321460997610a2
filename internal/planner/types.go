// Package planner builds the daily task list: a greedy, budgeted,
// explainable selection over scored (skill, item) candidates.
package planner

import (
	"time"

	"github.com/abhisek/examcoach/internal/catalog"
	"github.com/abhisek/examcoach/internal/mastery"
)

// Selection limits.
const (
	// MaxTasksPerDay caps the plan length regardless of budget.
	MaxTasksPerDay = 6

	// MaxTasksPerSkill prevents one weak skill from swallowing the day.
	MaxTasksPerSkill = 2
)

// Factor weights for the total score.
const (
	weightLearningGain   = 0.35
	weightRetentionGain  = 0.20
	weightExamROI        = 0.25
	weightErrorClosure   = 0.15
	weightBurnoutPenalty = 0.05
)

// SkillState is the planner's snapshot of one skill for the user.
type SkillState struct {
	Skill  catalog.Skill
	Record *mastery.Record // nil if never practiced
}

// Candidate is one plannable (skill, item) pair, both guaranteed to be
// real catalog ids by the caller.
type Candidate struct {
	SkillID string
	Item    catalog.Item
}

// Input is the full user state the plan is computed from. It is a
// snapshot; the computation is a single synchronous batch per (user, day)
// and identical inputs yield identical plans.
type Input struct {
	UserID string
	Date   time.Time

	// TimeBudgetMins bounds the plan. Zero or negative yields an empty
	// plan without error.
	TimeBudgetMins int

	DaysUntilExam int

	Skills     []SkillState
	Candidates []Candidate

	// CoverageDebt is the per-skill debt score in [0,1], read from the
	// coverage bookkeeping.
	CoverageDebt map[string]float64

	// ErrorCounts is the per-skill count of error-tag incidences in the
	// last 30 days.
	ErrorCounts map[string]int

	// RecentSkillMinutes is practice minutes per skill in the last 24h.
	RecentSkillMinutes map[string]int

	// RecentFormatCounts is attempts per format in the last 24h.
	RecentFormatCounts map[catalog.Format]int
}

// Factors is the per-candidate score breakdown. Each field is the raw
// factor value in [0,1] before weighting.
type Factors struct {
	LearningGain   float64
	RetentionGain  float64
	ExamROI        float64
	ErrorClosure   float64
	BurnoutPenalty float64

	Total float64
}

// Contributor is one weighted factor with its plain-language reading,
// used for the "why selected" explanation.
type Contributor struct {
	Name     string
	Weighted float64
	Detail   string
}

// Task is one admitted plan entry. Every task carries its full score
// breakdown so the selection is machine-checkable after the fact.
type Task struct {
	SkillID string
	ItemID  string

	TaskType string
	Format   catalog.Format
	Mode     catalog.Mode

	EstimatedMinutes int
	PriorityScore    float64
	Factors          Factors

	Rationale   string
	WhySelected []Contributor // top-3 weighted contributors
}

// Plan is the generated daily plan.
type Plan struct {
	UserID       string
	Date         time.Time
	Phase        Phase
	Tasks        []Task
	TotalMinutes int
}
