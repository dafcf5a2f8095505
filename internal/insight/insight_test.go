package insight

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jredh-dev/velox/internal/money"
)

func TestMissingKey(t *testing.T) {
	p := New(nil)
	assert.False(t, p.Configured())
	assert.Equal(t, MissingKey, p.Insight(context.Background(), "Rolex", money.Reais(45000)))
}

func TestInsightText(t *testing.T) {
	var got string
	p := New(GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return "  Oportunidade única.\n", nil
	}))

	assert.True(t, p.Configured())
	assert.Equal(t, "Oportunidade única.", p.Insight(context.Background(), "Rolex Submariner", money.Reais(45000)))
	assert.Contains(t, got, `"Rolex Submariner"`)
	assert.Contains(t, got, "R$ 45.000,00")
}

func TestInsightFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  GeneratorFunc
	}{
		{"error", func(context.Context, string) (string, error) { return "", errors.New("boom") }},
		{"empty", func(context.Context, string) (string, error) { return "   ", nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.gen)
			assert.Equal(t, Unavailable, p.Insight(context.Background(), "x", 1))
		})
	}
}

func TestInsightTimeout(t *testing.T) {
	p := New(GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), WithTimeout(10*time.Millisecond))

	assert.Equal(t, Unavailable, p.Insight(context.Background(), "x", 1))
}

func TestInsightCallerCancel(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	p := New(GeneratorFunc(func(context.Context, string) (string, error) {
		<-release
		return "late", nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, Unavailable, p.Insight(ctx, "x", 1))
}

func TestInsightCoalesces(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	p := New(GeneratorFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		<-release
		return "compartilhado", nil
	}))

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Insight(context.Background(), "Porsche", money.Reais(700000))
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	// Give the other callers time to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "compartilhado", r)
	}
}

func TestInsightRateLimit(t *testing.T) {
	var calls atomic.Int32
	p := New(GeneratorFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		return "ok", nil
	}), WithRateLimit(0.001, 1), WithTimeout(20*time.Millisecond))

	assert.Equal(t, "ok", p.Insight(context.Background(), "a", 1))
	// The bucket is empty and refills far slower than the timeout.
	assert.Equal(t, Unavailable, p.Insight(context.Background(), "b", 1))
	assert.Equal(t, int32(1), calls.Load())
}

func TestPrompt(t *testing.T) {
	p := Prompt("Porsche 911 Carrera S 2021", money.Reais(700000))
	assert.Contains(t, p, "leiloeiro oficial")
	assert.Contains(t, p, "R$ 700.000,00")
	assert.Contains(t, p, "Não use hashtags.")
}
