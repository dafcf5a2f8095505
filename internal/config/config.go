package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Insight    InsightConfig
	Countdown  CountdownConfig
	Storefront StorefrontConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type InsightConfig struct {
	APIKey  string // empty disables generation
	Model   string
	Timeout time.Duration // per upstream call
	Rate    float64       // calls per second, 0 = unlimited
	Burst   int
}

type CountdownConfig struct {
	Coarse time.Duration // catalog card refresh
	Fine   time.Duration // detail countdown refresh
}

type StorefrontConfig struct {
	BidderName string
	Timezone   string
	LogFile    string // TUI log destination, empty discards
}

// Load returns application configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Insight: InsightConfig{
			APIKey:  getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvDuration("INSIGHT_TIMEOUT", 15*time.Second),
			Rate:    getEnvFloat("INSIGHT_RATE", 1),
			Burst:   getEnvInt("INSIGHT_BURST", 3),
		},
		Countdown: CountdownConfig{
			Coarse: getEnvDuration("COUNTDOWN_COARSE", time.Minute),
			Fine:   getEnvDuration("COUNTDOWN_FINE", time.Second),
		},
		Storefront: StorefrontConfig{
			BidderName: getEnv("BIDDER_NAME", "Você"),
			Timezone:   getEnv("TIMEZONE", "America/Sao_Paulo"),
			LogFile:    getEnv("LOG_FILE", ""),
		},
	}
}

// LoadDotEnv reads variables from the given files (".env" when none) into
// the environment without overriding variables already set. Missing files
// are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Location resolves the storefront timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Storefront.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
