package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"line-scanner/internal/market"
)

// Defaults for configuration values.
const (
	DefaultEVThreshold     = 0.0
	DefaultStrongEV        = 0.05
	DefaultKellyFraction   = 0.25
	DefaultPollInterval    = 30 * time.Second
	DefaultDBPath          = "/data/scanner.db"
	DefaultAlertCooldown   = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
	DefaultRetention       = 7 * 24 * time.Hour
	DefaultMinArbMargin    = 0.0
	DefaultMinRungs        = 3
	DefaultMinDeviation    = 0.02
)

// DefaultLeagues is the slate scanned when LEAGUES is unset.
var DefaultLeagues = []market.League{market.LeagueNBA}

// Config holds all application configuration.
type Config struct {
	APIKey  string
	Leagues []market.League

	EVThreshold   float64
	StrongEV      float64
	KellyFraction float64
	MinArbMargin  float64
	MinRungs      int
	MinDeviation  float64

	// UsePowerDevig switches vig removal from proportional to the power
	// method, which treats longshot prices more fairly.
	UsePowerDevig bool

	PollInterval  time.Duration
	AlertCooldown time.Duration
	DBPath        string
	Retention     time.Duration
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		APIKey:        os.Getenv("LINES_API_KEY"),
		Leagues:       DefaultLeagues,
		EVThreshold:   DefaultEVThreshold,
		StrongEV:      DefaultStrongEV,
		KellyFraction: DefaultKellyFraction,
		MinArbMargin:  DefaultMinArbMargin,
		MinRungs:      DefaultMinRungs,
		MinDeviation:  DefaultMinDeviation,
		PollInterval:  DefaultPollInterval,
		AlertCooldown: DefaultAlertCooldown,
		DBPath:        DefaultDBPath,
		Retention:     DefaultRetention,
	}

	if v := os.Getenv("LEAGUES"); v != "" {
		var leagues []market.League
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part != "" {
				leagues = append(leagues, market.League(part))
			}
		}
		if len(leagues) > 0 {
			cfg.Leagues = leagues
		}
	}

	if v := os.Getenv("EV_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.EVThreshold = f
		}
	}

	if v := os.Getenv("STRONG_EV_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.StrongEV = f
		}
	}

	if v := os.Getenv("KELLY_FRACTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.KellyFraction = f
		}
	}

	if v := os.Getenv("MIN_ARB_MARGIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinArbMargin = f
		}
	}

	if v := os.Getenv("MIN_LADDER_RUNGS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinRungs = n
		}
	}

	if v := os.Getenv("MIN_DEVIATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinDeviation = f
		}
	}

	if os.Getenv("USE_POWER_DEVIG") == "true" {
		cfg.UsePowerDevig = true
	}

	if v := os.Getenv("POLL_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("ALERT_COOLDOWN_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.AlertCooldown = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("RETENTION_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			cfg.Retention = time.Duration(h) * time.Hour
		}
	}

	return cfg
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if cfg.EVThreshold < 0 || cfg.EVThreshold > 1 {
		return fmt.Errorf("EV_THRESHOLD must be between 0 and 1, got %f", cfg.EVThreshold)
	}
	if cfg.StrongEV < cfg.EVThreshold {
		return fmt.Errorf("STRONG_EV_THRESHOLD must be at least EV_THRESHOLD, got %f", cfg.StrongEV)
	}
	if cfg.KellyFraction <= 0 || cfg.KellyFraction > 1 {
		return fmt.Errorf("KELLY_FRACTION must be between 0 and 1, got %f", cfg.KellyFraction)
	}
	if cfg.MinArbMargin < 0 || cfg.MinArbMargin > 1 {
		return fmt.Errorf("MIN_ARB_MARGIN must be between 0 and 1, got %f", cfg.MinArbMargin)
	}
	if cfg.MinRungs < 2 {
		return fmt.Errorf("MIN_LADDER_RUNGS must be at least 2, got %d", cfg.MinRungs)
	}
	if cfg.MinDeviation < 0 || cfg.MinDeviation > 1 {
		return fmt.Errorf("MIN_DEVIATION must be between 0 and 1, got %f", cfg.MinDeviation)
	}
	if cfg.PollInterval < 10*time.Millisecond {
		return fmt.Errorf("POLL_INTERVAL_MS must be at least 10ms, got %v", cfg.PollInterval)
	}
	if len(cfg.Leagues) == 0 {
		return fmt.Errorf("LEAGUES must name at least one league")
	}
	return nil
}

// Describe returns a human-readable one-liner of the active settings.
func Describe(cfg Config) string {
	leagues := make([]string, len(cfg.Leagues))
	for i, l := range cfg.Leagues {
		leagues[i] = string(l)
	}
	return fmt.Sprintf(" leagues=%s ev>%.3f kelly=%.2f poll=%v db=%s",
		strings.Join(leagues, ","), cfg.EVThreshold, cfg.KellyFraction, cfg.PollInterval, cfg.DBPath)
}
