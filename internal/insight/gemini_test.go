package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jredh-dev/velox/internal/config"
	"github.com/jredh-dev/velox/internal/money"
)

func newGeminiServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var prompts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent"), r.URL.Path)
		key := r.Header.Get("x-goog-api-key")
		if key == "" {
			key = r.URL.Query().Get("key")
		}
		assert.Equal(t, "test-key", key)

		var req struct {
			Contents []struct {
				Role  string `json:"role"`
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			prompts = append(prompts, req.Contents[0].Parts[0].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &prompts
}

func TestGeminiGenerate(t *testing.T) {
	srv, prompts := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Lote raro, "},{"text":"não perca."}]}}]}`)

	g, err := NewGemini(context.Background(), "test-key", "", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, g.Model())

	text, err := g.Generate(context.Background(), "olá")
	require.NoError(t, err)
	assert.Equal(t, "Lote raro, não perca.", text)
	assert.Equal(t, []string{"olá"}, *prompts)
}

func TestGeminiThroughProvider(t *testing.T) {
	srv, prompts := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"Exclusividade em Jardins."}]}}]}`)

	g, err := NewGemini(context.Background(), "test-key", DefaultModel, WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	p := New(g)
	assert.Equal(t, "Exclusividade em Jardins.", p.Insight(context.Background(), "Apartamento", money.Reais(2500000)))
	require.Len(t, *prompts, 1)
	assert.Contains(t, (*prompts)[0], "R$ 2.500.000,00")
}

func TestGeminiErrors(t *testing.T) {
	t.Run("upstream error", func(t *testing.T) {
		srv, _ := newGeminiServer(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"down"}}`)
		g, err := NewGemini(context.Background(), "test-key", "", WithBaseURL(srv.URL+"/"))
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), "x")
		assert.Error(t, err)
		assert.Equal(t, Unavailable, New(g).Insight(context.Background(), "x", 1))
	})

	t.Run("no candidates", func(t *testing.T) {
		srv, _ := newGeminiServer(t, http.StatusOK, `{"candidates":[]}`)
		g, err := NewGemini(context.Background(), "test-key", "", WithBaseURL(srv.URL+"/"))
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, errEmpty)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := NewGemini(context.Background(), "", "")
		assert.Error(t, err)
	})
}

func TestFromConfig(t *testing.T) {
	srv, _ := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"Raridade no mercado."}]}}]}`)

	p := FromConfig(context.Background(), config.InsightConfig{}, nil)
	assert.False(t, p.Configured())
	assert.Equal(t, MissingKey, p.Insight(context.Background(), "Porsche 911", money.Reais(800000)))

	p = FromConfig(context.Background(), config.InsightConfig{APIKey: "test-key", Rate: 10, Burst: 1},
		nil, WithBaseURL(srv.URL+"/"))
	assert.True(t, p.Configured())
	assert.Equal(t, "Raridade no mercado.", p.Insight(context.Background(), "Porsche 911", money.Reais(800000)))
}
