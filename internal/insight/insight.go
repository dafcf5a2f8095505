// Package insight produces the short sales pitch shown next to a lot.
//
// A Provider never fails from the caller's point of view: without a
// generator it answers MissingKey, and any upstream problem (error, empty
// reply, rate limit, timeout, cancellation) becomes Unavailable. It has no
// access to catalog state.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/jredh-dev/velox/internal/money"
)

const (
	MissingKey  = "Chave de API não configurada."
	Unavailable = "Não foi possível gerar a análise no momento."
)

// DefaultTimeout bounds one upstream call.
const DefaultTimeout = 15 * time.Second

var errEmpty = errors.New("insight: empty response")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Provider wraps a Generator with the fallback texts, request coalescing,
// rate limiting and a per-call timeout.
type Provider struct {
	gen     Generator
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
	group   singleflight.Group
}

// Option configures a Provider.
type Option func(*Provider)

// WithRateLimit allows r upstream calls per second with the given burst.
// A non-positive r disables limiting.
func WithRateLimit(r float64, burst int) Option {
	return func(p *Provider) {
		if r <= 0 {
			p.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithTimeout bounds each upstream call.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger for upstream failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Provider. A nil gen means no API key is configured.
func New(gen Generator, opts ...Option) *Provider {
	p := &Provider{
		gen:     gen,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Configured reports whether a generator is present.
func (p *Provider) Configured() bool {
	return p.gen != nil
}

// Insight returns a pitch for the lot. Identical concurrent requests share
// one upstream call; a caller whose ctx ends gets Unavailable without waiting
// for it.
func (p *Provider) Insight(ctx context.Context, title string, price money.Amount) string {
	if p.gen == nil {
		return MissingKey
	}

	key := fmt.Sprintf("%s\x00%d", title, price)
	ch := p.group.DoChan(key, func() (any, error) {
		// The shared call outlives any single caller.
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		return p.generate(callCtx, title, price)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			p.logger.WarnContext(ctx, "insight generation failed", "title", title, "error", res.Err)
			return Unavailable
		}
		return res.Val.(string)
	case <-ctx.Done():
		return Unavailable
	}
}

func (p *Provider) generate(ctx context.Context, title string, price money.Amount) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}
	text, err := p.gen.Generate(ctx, Prompt(title, price))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmpty
	}
	return text, nil
}

// Prompt is the fixed auctioneer prompt for a lot.
func Prompt(title string, price money.Amount) string {
	return fmt.Sprintf(`Você é um leiloeiro oficial experiente e sofisticado no Brasil.
Escreva uma frase de venda curta, atraente e profissional (máximo 2 linhas) para um lote de leilão intitulado %q avaliado atualmente em %s.
Foque na exclusividade, oportunidade de investimento ou escassez.
Use português formal e persuasivo. Não use hashtags.`, title, price)
}
