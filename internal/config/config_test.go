package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ENV", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "INSIGHT_TIMEOUT",
		"INSIGHT_RATE", "INSIGHT_BURST", "COUNTDOWN_COARSE", "COUNTDOWN_FINE", "BIDDER_NAME", "TIMEZONE", "LOG_FILE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.Insight.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Insight.Model)
	assert.Equal(t, 15*time.Second, cfg.Insight.Timeout)
	assert.Equal(t, 1.0, cfg.Insight.Rate)
	assert.Equal(t, 3, cfg.Insight.Burst)
	assert.Equal(t, time.Minute, cfg.Countdown.Coarse)
	assert.Equal(t, time.Second, cfg.Countdown.Fine)
	assert.Equal(t, "Você", cfg.Storefront.BidderName)
	assert.Empty(t, cfg.Storefront.LogFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("INSIGHT_TIMEOUT", "3s")
	t.Setenv("INSIGHT_RATE", "0.5")
	t.Setenv("INSIGHT_BURST", "nope")
	t.Setenv("COUNTDOWN_FINE", "-1s")
	t.Setenv("BIDDER_NAME", "Maria")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "legacy-key", cfg.Insight.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Insight.Timeout)
	assert.Equal(t, 0.5, cfg.Insight.Rate)
	assert.Equal(t, 3, cfg.Insight.Burst)
	assert.Equal(t, time.Second, cfg.Countdown.Fine)
	assert.Equal(t, "Maria", cfg.Storefront.BidderName)

	t.Setenv("GEMINI_API_KEY", "primary")
	assert.Equal(t, "primary", Load().Insight.APIKey)
}

func TestLocation(t *testing.T) {
	cfg := &Config{Storefront: StorefrontConfig{Timezone: "Not/AZone"}}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Storefront.Timezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("VELOX_TEST_A=from-file\nVELOX_TEST_B=from-file\n"), 0o600))

	t.Setenv("VELOX_TEST_A", "from-env")
	t.Setenv("VELOX_TEST_B", "")
	require.NoError(t, os.Unsetenv("VELOX_TEST_B"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-env", os.Getenv("VELOX_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("VELOX_TEST_B"))
}
