package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultListenAddr      = ":8080"
	defaultDatabaseURL     = "shalean.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTAccessTTL    = "24h"
	defaultPricingTimeout  = "5s"
	defaultCleanerCutRatio = 0.60
)

// Config is the API runtime configuration, read once at startup.
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	// PricingTimeout bounds the store fetch on the async pricing path;
	// beyond it the bundled defaults answer instead.
	PricingTimeout time.Duration

	// CleanerCutRatio is the share of (total - service fee) paid out to
	// the assigned cleaner.
	CleanerCutRatio float64
}

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL:     getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:       strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		CleanerCutRatio: defaultCleanerCutRatio,
	}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.PricingTimeout, err = parseDurationEnv("PRICING_TIMEOUT", defaultPricingTimeout)
	if err != nil {
		return nil, err
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
