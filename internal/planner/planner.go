package planner

import (
	"fmt"
	"sort"

	"github.com/abhisek/examcoach/internal/catalog"
)

// GeneratePlan scores every candidate, sorts by total score, and greedily
// admits tasks under the time budget. Deterministic for identical inputs:
// repeated calls produce the same plan.
func GeneratePlan(in Input) (*Plan, error) {
	plan := &Plan{
		UserID: in.UserID,
		Date:   in.Date,
		Phase:  DeterminePhase(in.DaysUntilExam),
	}

	if in.TimeBudgetMins <= 0 {
		return plan, nil
	}

	states := make(map[string]SkillState, len(in.Skills))
	for _, s := range in.Skills {
		states[s.Skill.ID] = s
	}

	type scored struct {
		candidate Candidate
		state     SkillState
		factors   Factors
	}

	var pool []scored
	for _, c := range in.Candidates {
		state, ok := states[c.SkillID]
		if !ok {
			return nil, fmt.Errorf("candidate references skill %q with no supplied state", c.SkillID)
		}
		pool = append(pool, scored{
			candidate: c,
			state:     state,
			factors:   scoreCandidate(in, c, state),
		})
	}

	// Descending by total score; skill then item id break ties so the
	// plan is stable across runs.
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].factors.Total != pool[j].factors.Total {
			return pool[i].factors.Total > pool[j].factors.Total
		}
		if pool[i].candidate.SkillID != pool[j].candidate.SkillID {
			return pool[i].candidate.SkillID < pool[j].candidate.SkillID
		}
		return pool[i].candidate.Item.ID < pool[j].candidate.Item.ID
	})

	remaining := in.TimeBudgetMins
	perSkill := make(map[string]int)

	for _, s := range pool {
		if len(plan.Tasks) >= MaxTasksPerDay {
			break
		}
		if perSkill[s.candidate.SkillID] >= MaxTasksPerSkill {
			continue
		}
		if s.candidate.Item.EstimatedMins > remaining {
			// Skip rather than exceed the budget; a smaller item
			// further down may still fit.
			continue
		}

		task := buildTask(in, s.candidate, s.state, s.factors)
		plan.Tasks = append(plan.Tasks, task)
		plan.TotalMinutes += task.EstimatedMinutes
		remaining -= task.EstimatedMinutes
		perSkill[s.candidate.SkillID]++
	}

	return plan, nil
}

// buildTask assembles the admitted task with its type, mode, and
// explanation.
func buildTask(in Input, c Candidate, state SkillState, f Factors) Task {
	taskType := deriveTaskType(in, state, f)
	mode := deriveMode(DeterminePhase(in.DaysUntilExam), taskType, c.Item.Format)

	task := Task{
		SkillID:          c.SkillID,
		ItemID:           c.Item.ID,
		TaskType:         taskType,
		Format:           c.Item.Format,
		Mode:             mode,
		EstimatedMinutes: c.Item.EstimatedMins,
		PriorityScore:    f.Total,
		Factors:          f,
	}

	task.WhySelected = topContributors(in, state, f)
	task.Rationale = buildRationale(state, task)
	return task
}

// deriveMode picks the assessment mode. A verification proof is always
// timed; the critical phase forces timed mode broadly, with flashcards
// exempt since a timed flashcard rep proves nothing.
func deriveMode(phase Phase, taskType string, format catalog.Format) catalog.Mode {
	if taskType == "timed_proof" {
		return catalog.ModeTimed
	}
	if phase == PhaseCritical && format != catalog.FormatFlashcard {
		return catalog.ModeTimed
	}
	return catalog.ModePractice
}
