package mastery

import (
	"time"

	"github.com/abhisek/examcoach/internal/attempt"
	"github.com/abhisek/examcoach/internal/catalog"
)

// Service applies graded attempts to mastery records. The update rule
// itself is pure; the service adds catalog validation and record
// bookkeeping. Persistence of the mutated records is the caller's
// responsibility, serialized per (user, skill).
type Service struct {
	catalog *catalog.Catalog
}

// NewService creates a mastery service over the given catalog.
func NewService(c *catalog.Catalog) *Service {
	return &Service{catalog: c}
}

// SkillUpdate pairs one tested skill with the update applied to it.
type SkillUpdate struct {
	SkillID string
	Update  Update
	Record  *Record
}

// ApplyAttempt runs the update rule for every skill the attempt tests.
// records is the user's current state keyed by skill id; missing records
// are created on first touch and returned in the result.
//
// Deltas are applied independently per skill with no cross-skill
// normalization, so a multi-skill attempt moves more total mastery mass
// than a single-skill one. Flagged for product review; see DESIGN.md.
func (s *Service) ApplyAttempt(records map[string]*Record, att attempt.Attempt, now time.Time) ([]SkillUpdate, error) {
	if len(att.Skills) == 0 {
		return nil, &InputError{Field: "skills", Msg: "attempt tests no skills"}
	}

	// Validate every tested skill before mutating anything, so a bad
	// attempt never half-applies.
	for _, sc := range att.Skills {
		if !s.catalog.HasSkill(sc.SkillID) {
			return nil, &InputError{Field: "skillId", Msg: "unknown skill " + sc.SkillID}
		}
	}

	updates := make([]SkillUpdate, 0, len(att.Skills))
	for _, sc := range att.Skills {
		rec, ok := records[sc.SkillID]
		if !ok {
			rec = NewRecord(att.UserID, sc.SkillID)
			records[sc.SkillID] = rec
		}

		upd, err := UpdateMastery(
			State{PMastery: rec.PMastery, Stability: rec.Stability},
			Facts{
				ScoreNorm:      att.ScoreNorm,
				Format:         att.Format,
				Mode:           att.Mode,
				Difficulty:     att.Difficulty,
				CoverageWeight: sc.Weight,
			},
		)
		if err != nil {
			return nil, err
		}

		rec.PMastery = upd.PMastery
		rec.Stability = upd.Stability
		rec.LastPracticedAt = now
		rec.RepsCount++
		rec.NextReviewDate = now.AddDate(0, 0, rec.ReviewIntervalDays())

		updates = append(updates, SkillUpdate{SkillID: sc.SkillID, Update: upd, Record: rec})
	}

	return updates, nil
}
