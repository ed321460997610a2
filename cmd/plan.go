package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/examcoach/internal/catalog"
	"github.com/abhisek/examcoach/internal/coverage"
	"github.com/abhisek/examcoach/internal/planner"
	"github.com/abhisek/examcoach/internal/store"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate today's study plan",
	Long: "Scores every (skill, item) pairing against current mastery, review\n" +
		"schedule, exam proximity, and recent errors, then fills the time\n" +
		"budget with the highest-value tasks. Regenerating on the same day\n" +
		"replaces the stored plan.",
	RunE: runPlan,
}

func init() {
	planCmd.Flags().Int("minutes", 90, "Time budget in minutes")
	planCmd.Flags().String("exam-date", "", "Exam date as YYYY-MM-DD (required)")
	planCmd.MarkFlagRequired("exam-date")
}

func runPlan(cmd *cobra.Command, args []string) error {
	minutes, _ := cmd.Flags().GetInt("minutes")
	examDateStr, _ := cmd.Flags().GetString("exam-date")
	examDate, err := time.Parse("2006-01-02", examDateStr)
	if err != nil {
		return fmt.Errorf("invalid --exam-date %q: %w", examDateStr, err)
	}

	s, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	user := userID(cmd)
	now := time.Now()

	in, err := buildPlannerInput(ctx, s, user, now, examDate, minutes)
	if err != nil {
		return err
	}

	plan, err := planner.GeneratePlan(in)
	if err != nil {
		return fmt.Errorf("generate plan: %w", err)
	}
	if err := s.PlanRepo().Save(ctx, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	printPlan(plan)
	return nil
}

// buildPlannerInput assembles the planner's snapshot from stored state:
// mastery records, the 30-day error ledger, and the last 24h of load.
func buildPlannerInput(ctx context.Context, s *store.Store, user string, now, examDate time.Time, minutes int) (planner.Input, error) {
	cat := catalog.Default()

	in := planner.Input{
		UserID:             user,
		Date:               now,
		TimeBudgetMins:     minutes,
		DaysUntilExam:      int(examDate.Sub(now).Hours() / 24),
		CoverageDebt:       map[string]float64{},
		ErrorCounts:        map[string]int{},
		RecentSkillMinutes: map[string]int{},
		RecentFormatCounts: map[catalog.Format]int{},
	}

	records, err := s.MasteryRepo().GetAll(ctx, user)
	if err != nil {
		return planner.Input{}, fmt.Errorf("load mastery: %w", err)
	}
	history, err := s.AttemptRepo().List(ctx, user, store.AttemptQuery{Since: now.AddDate(0, 0, -30)})
	if err != nil {
		return planner.Input{}, fmt.Errorf("load attempt history: %w", err)
	}
	phase := planner.DeterminePhase(in.DaysUntilExam)

	for _, skill := range cat.Skills() {
		in.Skills = append(in.Skills, planner.SkillState{
			Skill:  skill,
			Record: records[skill.ID],
		})
		for _, item := range cat.ItemsForSkill(skill.ID) {
			in.Candidates = append(in.Candidates, planner.Candidate{SkillID: skill.ID, Item: item})
		}

		debt := coverage.Compute(user, skill.ID, string(phase), history)
		if score := debt.Score(); score > 0 {
			in.CoverageDebt[skill.ID] = score
		}

		tags, err := s.AttemptRepo().ErrorTagCounts(ctx, user, skill.ID, now.AddDate(0, 0, -30))
		if err != nil {
			return planner.Input{}, fmt.Errorf("load error history: %w", err)
		}
		for _, n := range tags {
			in.ErrorCounts[skill.ID] += n
		}
	}

	recent, err := s.AttemptRepo().List(ctx, user, store.AttemptQuery{Since: now.Add(-24 * time.Hour)})
	if err != nil {
		return planner.Input{}, fmt.Errorf("load recent attempts: %w", err)
	}
	for _, att := range recent {
		in.RecentFormatCounts[att.Format]++
		for _, sc := range att.Skills {
			in.RecentSkillMinutes[sc.SkillID] += att.TimeTakenSec / 60
		}
	}

	return in, nil
}

func printPlan(p *planner.Plan) {
	fmt.Printf("Plan for %s  (phase: %s, %d min)\n\n",
		p.Date.Format("2006-01-02"), p.Phase, p.TotalMinutes)

	if len(p.Tasks) == 0 {
		fmt.Println("No tasks fit the budget.")
		return
	}

	for i, t := range p.Tasks {
		fmt.Printf("%d. [%s/%s] %s  (%d min, %s)\n",
			i+1, t.Format, t.Mode, t.ItemID, t.EstimatedMinutes, t.TaskType)
		fmt.Printf("   %s\n", t.Rationale)

		var parts []string
		for _, c := range t.WhySelected {
			parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, c.Detail))
		}
		fmt.Printf("   why: %s\n", strings.Join(parts, "; "))
	}
}
