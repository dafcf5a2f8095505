package insight

import (
	"context"
	"log/slog"

	"github.com/jredh-dev/velox/internal/config"
)

// FromConfig builds a Provider from the insight settings. Without an API key,
// or when the Gemini client cannot be created, the Provider answers
// MissingKey for every request.
func FromConfig(ctx context.Context, cfg config.InsightConfig, logger *slog.Logger, opts ...GeminiOption) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	providerOpts := []Option{
		WithRateLimit(cfg.Rate, cfg.Burst),
		WithTimeout(cfg.Timeout),
		WithLogger(logger),
	}

	if cfg.APIKey == "" {
		logger.InfoContext(ctx, "insight generation disabled: no api key")
		return New(nil, providerOpts...)
	}
	g, err := NewGemini(ctx, cfg.APIKey, cfg.Model, opts...)
	if err != nil {
		logger.WarnContext(ctx, "insight generation disabled", "error", err)
		return New(nil, providerOpts...)
	}
	logger.InfoContext(ctx, "insight generation enabled", "model", g.Model())
	return New(g, providerOpts...)
}
