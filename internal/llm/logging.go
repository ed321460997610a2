package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider is a decorator that records every generation request
// through a zap logger: purpose, latency, token usage, and estimated cost.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
}

// WithLogging wraps a Provider with request logging. A nil logger
// disables logging without changing behavior.
func WithLogging(p Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("purpose", purpose),
		zap.String("model", l.inner.ModelID()),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()),
	}

	if resp != nil {
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
		if cost := LookupCost(resp.Model); cost != nil {
			fields = append(fields,
				zap.Float64("cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
		}
	}

	if err != nil {
		fields = append(fields, zap.Error(err))
		l.logger.Warn("generation request failed", fields...)
		return resp, err
	}

	l.logger.Info("generation request completed", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
