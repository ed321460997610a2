package planner

import (
	"fmt"
	"sort"
)

// topContributors ranks the weighted factor contributions and returns
// the three largest, each with a plain-language detail the user can
// read back.
func topContributors(in Input, state SkillState, f Factors) []Contributor {
	pm := 0.0
	days := -1.0
	if state.Record != nil {
		pm = state.Record.PMastery
		days = state.Record.DaysSincePractice(in.Date)
	}

	retentionDetail := "never practiced"
	if days >= 0 {
		retentionDetail = fmt.Sprintf("last practiced %.0f days ago", days)
	}

	all := []Contributor{
		{
			Name:     "learning_gain",
			Weighted: weightLearningGain * f.LearningGain,
			Detail:   fmt.Sprintf("mastery at %.0f%%, room to grow", pm*100),
		},
		{
			Name:     "retention",
			Weighted: weightRetentionGain * f.RetentionGain,
			Detail:   retentionDetail,
		},
		{
			Name:     "exam_roi",
			Weighted: weightExamROI * f.ExamROI,
			Detail:   fmt.Sprintf("exam weight %.0f%%, %d days to exam", state.Skill.ExamWeight*100, in.DaysUntilExam),
		},
		{
			Name:     "error_closure",
			Weighted: weightErrorClosure * f.ErrorClosure,
			Detail:   fmt.Sprintf("%d recent errors on this skill", in.ErrorCounts[state.Skill.ID]),
		},
		{
			Name:     "recent_load",
			Weighted: -weightBurnoutPenalty * f.BurnoutPenalty,
			Detail:   fmt.Sprintf("%d minutes on this skill in the last day", in.RecentSkillMinutes[state.Skill.ID]),
		},
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Weighted > all[j].Weighted
	})
	return all[:3]
}

// buildRationale renders a one-line explanation for the task list.
func buildRationale(state SkillState, t Task) string {
	name := state.Skill.Name

	switch t.TaskType {
	case "timed_proof":
		return fmt.Sprintf("%s is near mastery; a timed pass moves it toward verified", name)
	case "first_pass":
		return fmt.Sprintf("%s has not been practiced yet; a first pass sets the baseline", name)
	case "review":
		return fmt.Sprintf("%s is past its review date; reviewing now protects retention", name)
	case "error_clinic":
		return fmt.Sprintf("%s keeps producing the same errors; targeted drilling closes them", name)
	default:
		return fmt.Sprintf("%s benefits most from %s practice today", name, t.Format)
	}
}
