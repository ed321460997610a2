package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/examcoach/internal/attempt"
	"github.com/abhisek/examcoach/internal/catalog"
	"github.com/abhisek/examcoach/internal/grading"
	"github.com/abhisek/examcoach/internal/llm"
	"github.com/abhisek/examcoach/internal/mastery"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade an answer and apply it to mastery",
	Long: "Grades a free-form answer with the configured LLM (or scores an MCQ\n" +
		"selection directly), appends the attempt to the ledger, and updates\n" +
		"mastery for every skill the item covers.",
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().String("item", "", "Item id from the catalog (required)")
	gradeCmd.Flags().String("answer-file", "", "File containing the answer text")
	gradeCmd.Flags().String("question", "", "Question text shown to the candidate")
	gradeCmd.Flags().String("mode", string(catalog.ModePractice), "Attempt mode: practice, timed, or exam_sim")
	gradeCmd.Flags().Int("time-sec", 0, "Seconds the attempt took")
	gradeCmd.Flags().String("selected", "", "Selected MCQ option (MCQ items only)")
	gradeCmd.Flags().String("correct", "", "Correct MCQ option (MCQ items only)")
	gradeCmd.MarkFlagRequired("item")
}

func runGrade(cmd *cobra.Command, args []string) error {
	itemID, _ := cmd.Flags().GetString("item")
	modeStr, _ := cmd.Flags().GetString("mode")
	timeSec, _ := cmd.Flags().GetInt("time-sec")
	selected, _ := cmd.Flags().GetString("selected")
	correct, _ := cmd.Flags().GetString("correct")

	mode := catalog.Mode(modeStr)
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q", modeStr)
	}

	cat := catalog.Default()
	item, err := cat.Item(itemID)
	if err != nil {
		return err
	}

	sub := grading.Submission{
		AttemptID: attempt.NewID(),
		UserID:    userID(cmd),
		ItemID:    item.ID,
	}
	if primary, perr := cat.Skill(item.Skills[0].SkillID); perr == nil {
		sub.SkillName = primary.Name
	}

	if item.Format == catalog.FormatMCQ {
		if selected == "" || correct == "" {
			return fmt.Errorf("mcq item %s needs --selected and --correct", item.ID)
		}
		sub.IsMCQ = true
		sub.SelectedOption = selected
		sub.CorrectOption = correct
	} else {
		answerFile, _ := cmd.Flags().GetString("answer-file")
		if answerFile == "" {
			return fmt.Errorf("--answer-file is required for %s items", item.Format)
		}
		answer, rerr := os.ReadFile(answerFile)
		if rerr != nil {
			return fmt.Errorf("read answer: %w", rerr)
		}
		sub.AnswerText = string(answer)
		sub.QuestionText, _ = cmd.Flags().GetString("question")
		if strings.TrimSpace(sub.QuestionText) == "" {
			sub.QuestionText = item.Title
		}
		sub.RubricDimensions = rubricFor(item.Format)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	var grader *grading.Grader
	if sub.IsMCQ {
		// Deterministic path; no generation collaborator needed.
		grader = grading.New(nil, logger, grading.DefaultConfig())
	} else {
		provider, perr := buildProvider(ctx, logger)
		if perr != nil {
			return perr
		}
		grader = grading.New(provider, logger, grading.DefaultConfig())
	}

	out := grader.Grade(ctx, sub)

	s, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	now := time.Now()
	att := attempt.Attempt{
		ID:           sub.AttemptID,
		UserID:       sub.UserID,
		ItemID:       item.ID,
		Skills:       item.Skills,
		Format:       item.Format,
		Mode:         mode,
		ScoreNorm:    out.ScoreNorm,
		Difficulty:   item.Difficulty,
		TimeTakenSec: timeSec,
		ErrorTags:    out.ErrorTags,
		SubmittedAt:  now,
	}
	if err := s.AttemptRepo().Append(ctx, att); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	records, err := s.MasteryRepo().GetAll(ctx, sub.UserID)
	if err != nil {
		return fmt.Errorf("load mastery: %w", err)
	}
	updates, err := mastery.NewService(cat).ApplyAttempt(records, att, now)
	if err != nil {
		return fmt.Errorf("apply attempt: %w", err)
	}
	for _, u := range updates {
		if err := s.MasteryRepo().Save(ctx, u.Record); err != nil {
			return fmt.Errorf("save mastery for %s: %w", u.SkillID, err)
		}
	}

	printGradeResult(out, updates)
	return nil
}

// rubricFor returns the grading dimensions for a free-form format.
func rubricFor(f catalog.Format) []grading.RubricDimension {
	switch f {
	case catalog.FormatDrafting:
		return []grading.RubricDimension{
			{Category: "Structure and form", MaxScore: 10},
			{Category: "Substantive accuracy", MaxScore: 10},
			{Category: "Authority and citation", MaxScore: 5},
		}
	case catalog.FormatOral:
		return []grading.RubricDimension{
			{Category: "Issue spotting", MaxScore: 10},
			{Category: "Reasoning under questioning", MaxScore: 10},
		}
	default:
		return []grading.RubricDimension{
			{Category: "Issue spotting", MaxScore: 10},
			{Category: "Rule statement and application", MaxScore: 10},
			{Category: "Conclusion and structure", MaxScore: 5},
		}
	}
}

// buildProvider resolves LLM configuration from EXAMCOACH_* env vars
// first, then falls back to probing standard vendor API key vars.
func buildProvider(ctx context.Context, logger *zap.Logger) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: %w", err)
		}
		cfg = discovered
	}
	return llm.NewProvider(ctx, cfg, logger)
}

func printGradeResult(out *grading.Output, updates []mastery.SkillUpdate) {
	if out.Degraded {
		fmt.Printf("! Auto-grading unavailable (%s); provisional half credit recorded.\n\n", out.DegradedReason)
	}
	fmt.Printf("Score: %.0f/%.0f (%.0f%%)\n", out.ScoreRaw, out.MaxScore, out.ScoreNorm*100)
	for _, line := range out.RubricBreakdown {
		fmt.Printf("  %-24s %.1f/%.1f  %s\n", line.Category, line.Score, line.MaxScore, line.Feedback)
	}
	if out.Feedback != "" {
		fmt.Printf("\n%s\n", out.Feedback)
	}
	if len(out.ErrorTags) > 0 {
		fmt.Printf("\nError tags: %s\n", strings.Join(out.ErrorTags, ", "))
	}
	if len(out.NextDrills) > 0 {
		fmt.Printf("Suggested drills: %s\n", strings.Join(out.NextDrills, ", "))
	}

	fmt.Println("\nMastery updates:")
	for _, u := range updates {
		arrow := "+"
		if u.Update.Delta < 0 {
			arrow = ""
		}
		fmt.Printf("  %-28s %.1f%% (%s%.2f)\n", u.SkillID, u.Record.PMastery*100, arrow, u.Update.Delta)
	}
}
