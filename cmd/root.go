package cmd

import (
	"github.com/abhisek/examcoach/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "examcoach",
	Short: "AI exam coach for professional qualification exams",
	Long: "Examcoach tracks per-skill mastery from graded attempts, verifies\n" +
		"mastery with timed-exam gates, grades free-form answers with an LLM,\n" +
		"and generates an explainable daily study plan.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMCOACH_DB env var)")
	rootCmd.PersistentFlags().String("user", "default", "User id the command operates on")

	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(gateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then EXAMCOACH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

func userID(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	if u == "" {
		u = "default"
	}
	return u
}

// newLogger builds the CLI logger. Verbose output goes to stderr so
// stdout stays parseable.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
