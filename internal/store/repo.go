package store

import (
	"context"
	"time"

	"github.com/abhisek/examcoach/internal/attempt"
	"github.com/abhisek/examcoach/internal/gate"
	"github.com/abhisek/examcoach/internal/mastery"
	"github.com/abhisek/examcoach/internal/planner"
)

// AttemptQuery filters attempt history reads.
type AttemptQuery struct {
	SkillID string    // only attempts testing this skill
	Since   time.Time // only attempts submitted at or after
	Limit   int       // 0 = unlimited
}

// MasteryRepo persists per-(user, skill) mastery records.
type MasteryRepo interface {
	// Get returns the record, or nil if the skill was never practiced.
	Get(ctx context.Context, userID, skillID string) (*mastery.Record, error)

	// GetAll returns every record for the user, keyed by skill id.
	GetAll(ctx context.Context, userID string) (map[string]*mastery.Record, error)

	// Save upserts a record.
	Save(ctx context.Context, rec *mastery.Record) error
}

// AttemptRepo is the append-only attempt ledger.
type AttemptRepo interface {
	// Append stores a graded attempt. Attempts are never updated.
	Append(ctx context.Context, att attempt.Attempt) error

	// List returns matching attempts, newest first.
	List(ctx context.Context, userID string, q AttemptQuery) ([]attempt.Attempt, error)

	// ErrorTagCounts returns per-tag incidence for a skill since the
	// given time.
	ErrorTagCounts(ctx context.Context, userID, skillID string, since time.Time) (map[string]int, error)
}

// GateRepo persists verification decisions.
type GateRepo interface {
	// Save upserts the verification for (user, skill).
	Save(ctx context.Context, v gate.Verification) error

	// Get returns the verification, or nil if the skill was never
	// verified.
	Get(ctx context.Context, userID, skillID string) (*gate.Verification, error)

	// Revoke marks an existing verification revoked.
	Revoke(ctx context.Context, userID, skillID, reason string, at time.Time) error
}

// PlanRepo persists generated daily plans.
type PlanRepo interface {
	// Save stores the plan for its (user, date), replacing any earlier
	// plan generated for the same day.
	Save(ctx context.Context, p *planner.Plan) error

	// Get returns the plan for the day, or nil if none was generated.
	Get(ctx context.Context, userID string, date time.Time) (*planner.Plan, error)
}
