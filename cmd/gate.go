package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/examcoach/internal/catalog"
	"github.com/abhisek/examcoach/internal/gate"
	"github.com/abhisek/examcoach/internal/store"
	"github.com/spf13/cobra"
)

var gateCmd = &cobra.Command{
	Use:   "gate <skill-id>",
	Short: "Check a skill against the verification gate",
	Long: "Evaluates whether a skill has earned verified status: mastery at or\n" +
		"above the threshold, two passing timed attempts at least a day apart,\n" +
		"and no recurring top error in the latest pass. A passing check is\n" +
		"recorded; a failing one lists every unmet condition.",
	Args: cobra.ExactArgs(1),
	RunE: runGate,
}

func runGate(cmd *cobra.Command, args []string) error {
	skillID := args[0]

	cat := catalog.Default()
	skill, err := cat.Skill(skillID)
	if err != nil {
		return err
	}

	s, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	user := userID(cmd)
	now := time.Now()

	rec, err := s.MasteryRepo().Get(ctx, user, skillID)
	if err != nil {
		return fmt.Errorf("load mastery: %w", err)
	}
	pMastery := 0.0
	if rec != nil {
		pMastery = rec.PMastery
	}

	attempts, err := s.AttemptRepo().List(ctx, user, store.AttemptQuery{SkillID: skillID})
	if err != nil {
		return fmt.Errorf("load attempts: %w", err)
	}
	// The gate wants chronological order; the ledger reads newest first.
	sort.Slice(attempts, func(i, j int) bool {
		return attempts[i].SubmittedAt.Before(attempts[j].SubmittedAt)
	})

	topTags, err := topErrorTags(ctx, s, user, skillID)
	if err != nil {
		return err
	}

	in := gate.CheckInput{
		UserID:       user,
		SkillID:      skillID,
		Attempts:     attempts,
		PMastery:     pMastery,
		TopErrorTags: topTags,
	}
	res := gate.Check(in)

	if !res.IsVerified {
		fmt.Printf("%s is NOT verified:\n", skill.Name)
		for _, r := range res.Reasons {
			fmt.Printf("  - %s\n", r)
		}
		return nil
	}

	v := gate.NewVerification(in, res, now)
	if err := s.GateRepo().Save(ctx, v); err != nil {
		return fmt.Errorf("save verification: %w", err)
	}
	if rec != nil {
		rec.IsVerified = true
		rec.VerifiedAt = now
		if err := s.MasteryRepo().Save(ctx, rec); err != nil {
			return fmt.Errorf("save mastery: %w", err)
		}
	}

	fmt.Printf("%s VERIFIED: %d timed passes %.0fh apart at %.0f%% mastery.\n",
		skill.Name, res.PassCount, res.HoursBetweenPasses, pMastery*100)
	return nil
}

// topErrorTags returns the skill's three most frequent error tags over
// the full ledger, most frequent first.
func topErrorTags(ctx context.Context, s *store.Store, user, skillID string) ([]string, error) {
	counts, err := s.AttemptRepo().ErrorTagCounts(ctx, user, skillID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("load error history: %w", err)
	}

	type tagCount struct {
		tag string
		n   int
	}
	ranked := make([]tagCount, 0, len(counts))
	for tag, n := range counts {
		ranked = append(ranked, tagCount{tag, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return ranked[i].tag < ranked[j].tag
	})

	var top []string
	for i := 0; i < len(ranked) && i < gate.TopErrorTagCount; i++ {
		top = append(top, ranked[i].tag)
	}
	return top, nil
}
