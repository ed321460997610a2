package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/examcoach/internal/llm"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM provider configuration",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured provider responds",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := llm.WithPurpose(context.Background(), "healthcheck")
		provider, err := buildProvider(ctx, logger)
		if err != nil {
			return err
		}

		resp, err := provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}

		fmt.Printf("Provider responded (model %s, %d/%d tokens).\n",
			resp.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens)
		return nil
	},
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved provider configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				fmt.Println("No provider configured. Set EXAMCOACH_LLM_PROVIDER and its API")
				fmt.Println("key, or export one of GEMINI_API_KEY, OPENAI_API_KEY,")
				fmt.Println("ANTHROPIC_API_KEY, OPENROUTER_API_KEY.")
				return nil
			}
			cfg = discovered
			fmt.Println("(discovered from standard vendor env vars)")
		}

		fmt.Printf("Provider: %s\n", cfg.Provider)
		switch cfg.Provider {
		case "anthropic":
			fmt.Printf("Model:    %s\n", cfg.Anthropic.Model)
		case "openai":
			fmt.Printf("Model:    %s\n", cfg.OpenAI.Model)
		case "gemini":
			fmt.Printf("Model:    %s\n", cfg.Gemini.Model)
		case "openrouter":
			fmt.Printf("Model:    %s\n", cfg.OpenRouter.Model)
		}
		fmt.Printf("Timeout:  %s\n", cfg.Timeout)
		fmt.Printf("Retries:  %d\n", cfg.Retry.MaxAttempts)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmConfigCmd)
}
