package grading

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/examcoach/internal/llm"
)

// FallbackErrorTag is the sentinel tag carried by every degraded result.
const FallbackErrorTag = "auto-grading-degraded"

// Config tunes the grading loop.
type Config struct {
	// MaxAttempts is the total number of generation attempts before
	// degrading to the fallback.
	MaxAttempts int

	// RetryDelay is the base wait; attempt N waits N × RetryDelay.
	RetryDelay time.Duration

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the grading defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
		MaxTokens:   4096,
		Temperature: 0,
	}
}

// Grader grades submissions through the generation collaborator.
// Callers must deduplicate concurrent grading of the same attempt and
// bound the context so a stuck collaborator call degrades instead of
// blocking.
type Grader struct {
	provider llm.Provider
	logger   *zap.Logger
	config   Config
}

// New creates a Grader. A nil logger disables logging.
func New(provider llm.Provider, logger *zap.Logger, cfg Config) *Grader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Grader{provider: provider, logger: logger, config: cfg}
}

// Grade produces a validated grading result for the submission. It never
// returns an error: after exhausting retries it returns the degraded
// fallback, flagged in the payload and in the log.
func (g *Grader) Grade(ctx context.Context, sub Submission) *Output {
	if sub.IsMCQ {
		return gradeMCQ(sub)
	}

	ctx = llm.WithPurpose(ctx, "grading")
	userPrompt := buildUserPrompt(sub)

	var lastErr error
	for attemptNum := 1; attemptNum <= g.config.MaxAttempts; attemptNum++ {
		prompt := userPrompt
		if attemptNum > 1 {
			prompt += jsonReinforcement()
		}

		out, err := g.gradeOnce(ctx, prompt)
		if err == nil {
			return out
		}
		lastErr = err

		g.logger.Warn("grading attempt failed",
			zap.String("attempt_id", sub.AttemptID),
			zap.Int("attempt", attemptNum),
			zap.Error(err))

		if attemptNum == g.config.MaxAttempts {
			break
		}

		// Linear pacing: attempt N waits N × RetryDelay.
		wait := time.Duration(attemptNum) * g.config.RetryDelay
		select {
		case <-ctx.Done():
			// A cancelled or timed-out generation call degrades to
			// the fallback rather than surfacing an error.
			return g.degrade(sub, ctx.Err())
		case <-time.After(wait):
		}
	}

	return g.degrade(sub, lastErr)
}

func (g *Grader) gradeOnce(ctx context.Context, prompt string) (*Output, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      GradingSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(string(resp.Content))
	if err != nil {
		return nil, err
	}

	return validateOutput(raw)
}

func (g *Grader) degrade(sub Submission, cause error) *Output {
	g.logger.Error("grading degraded to fallback; needs manual review",
		zap.String("attempt_id", sub.AttemptID),
		zap.String("user_id", sub.UserID),
		zap.String("item_id", sub.ItemID),
		zap.Error(cause))

	out := Fallback(sub)
	if cause != nil {
		out.DegradedReason = cause.Error()
	}
	return out
}

// Fallback builds the conservative synthetic result used when automated
// grading cannot produce valid structured output: a 50% score, one
// half-credit rubric line per expected dimension, and a manual-review
// flag. Signal quality is sacrificed so the pipeline keeps moving.
func Fallback(sub Submission) *Output {
	dims := sub.RubricDimensions
	if len(dims) == 0 {
		dims = []RubricDimension{{Category: "Overall", MaxScore: 10}}
	}

	var raw, max float64
	lines := make([]RubricLine, 0, len(dims))
	for _, d := range dims {
		lines = append(lines, RubricLine{
			Category: d.Category,
			Score:    d.MaxScore / 2,
			MaxScore: d.MaxScore,
			Feedback: "Automated grading unavailable; provisional half credit.",
		})
		raw += d.MaxScore / 2
		max += d.MaxScore
	}

	return &Output{
		ScoreNorm:        0.5,
		ScoreRaw:         raw,
		MaxScore:         max,
		RubricBreakdown:  lines,
		Feedback:         "Automated grading failed; this result needs manual review.",
		ErrorTags:        []string{FallbackErrorTag},
		MissedPoints:     []string{},
		NextDrills:       []string{},
		EvidenceRequests: []string{},
		ModelOutline:     "",
		Degraded:         true,
	}
}
