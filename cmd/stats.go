package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/examcoach/internal/catalog"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-skill mastery and review schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		records, err := s.MasteryRepo().GetAll(ctx, userID(cmd))
		if err != nil {
			return fmt.Errorf("load mastery: %w", err)
		}

		fmt.Printf("%-28s  %-8s  %-9s  %-5s  %-11s  %s\n",
			"Skill", "Mastery", "Stability", "Reps", "Next review", "Verified")
		fmt.Println(strings.Repeat("─", 80))

		now := time.Now()
		for _, skill := range catalog.Default().Skills() {
			rec := records[skill.ID]
			if rec == nil {
				fmt.Printf("%-28s  %-8s  %-9s  %-5s  %-11s  %s\n",
					skill.Name, "—", "—", "0", "—", "")
				continue
			}

			review := rec.NextReviewDate.Format("2006-01-02")
			if rec.OverdueDays(now) > 0 {
				review += "!"
			}
			verified := ""
			if rec.IsVerified {
				verified = "✓ " + rec.VerifiedAt.Format("2006-01-02")
			}
			fmt.Printf("%-28s  %-8s  %-9.2f  %-5d  %-11s  %s\n",
				skill.Name,
				fmt.Sprintf("%.0f%%", rec.PMastery*100),
				rec.Stability,
				rec.RepsCount,
				review,
				verified)
		}
		return nil
	},
}
