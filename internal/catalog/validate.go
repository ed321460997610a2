package catalog

import (
	"fmt"
	"strings"
)

// validate performs all structural checks on the skill and item sets.
// Returns a combined error describing all problems found, or nil if valid.
func validate(skills []Skill, items []Item) error {
	var errs []string

	skillIDs := make(map[string]bool, len(skills))
	for _, s := range skills {
		if s.ID == "" {
			errs = append(errs, "skill with empty ID")
			continue
		}
		if skillIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		skillIDs[s.ID] = true

		if s.ExamWeight < 0 || s.ExamWeight > 1 {
			errs = append(errs, fmt.Sprintf("skill %q: exam weight %.2f outside [0,1]", s.ID, s.ExamWeight))
		}
		if s.Difficulty < MinDifficulty || s.Difficulty > MaxDifficulty {
			errs = append(errs, fmt.Sprintf("skill %q: difficulty %d outside [%d,%d]", s.ID, s.Difficulty, MinDifficulty, MaxDifficulty))
		}
		if len(s.Formats) == 0 {
			errs = append(errs, fmt.Sprintf("skill %q: no supported formats", s.ID))
		}
		for _, f := range s.Formats {
			if !f.Valid() {
				errs = append(errs, fmt.Sprintf("skill %q: unknown format %q", s.ID, f))
			}
		}
	}

	itemIDs := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" {
			errs = append(errs, "item with empty ID")
			continue
		}
		if itemIDs[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate item ID: %q", it.ID))
		}
		itemIDs[it.ID] = true

		if !it.Format.Valid() {
			errs = append(errs, fmt.Sprintf("item %q: unknown format %q", it.ID, it.Format))
		}
		if len(it.Skills) == 0 {
			errs = append(errs, fmt.Sprintf("item %q: tests no skills", it.ID))
		}
		for _, sc := range it.Skills {
			if !skillIDs[sc.SkillID] {
				errs = append(errs, fmt.Sprintf("item %q references nonexistent skill %q", it.ID, sc.SkillID))
			}
			if sc.Weight < 0 || sc.Weight > 1 {
				errs = append(errs, fmt.Sprintf("item %q: coverage weight %.2f for %q outside (0,1]", it.ID, sc.Weight, sc.SkillID))
			}
		}
		if it.Difficulty < MinDifficulty || it.Difficulty > MaxDifficulty {
			errs = append(errs, fmt.Sprintf("item %q: difficulty %d outside [%d,%d]", it.ID, it.Difficulty, MinDifficulty, MaxDifficulty))
		}
		if it.EstimatedMins <= 0 {
			errs = append(errs, fmt.Sprintf("item %q: non-positive estimated minutes", it.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
