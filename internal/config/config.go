package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the planner.
type Config struct {
	Addr        string
	DatabaseURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	FrontendURL        string

	TelegramToken string        // optional; notifications disabled when empty
	AgendaTime    string        // HH:MM local time for the daily agenda push
	SweepInterval time.Duration // how often overdue schedule items are swept
}

// Load reads configuration from .env and environment variables with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:               get("ADDR", ":5000"),
		DatabaseURL:        get("DATABASE_URL", "study_planner.db"),
		GoogleClientID:     strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleClientSecret: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET")),
		GoogleRedirectURI:  get("GOOGLE_REDIRECT_URI", "http://localhost:5000/auth/google/callback"),
		FrontendURL:        get("FRONTEND_URL", "http://localhost:3000"),
		TelegramToken:      strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		AgendaTime:         get("AGENDA_TIME", "08:00"),
		SweepInterval:      parseMinutes(os.Getenv("SWEEP_INTERVAL_MINUTES"), 30*time.Minute),
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return cfg, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}

	return cfg, nil
}

func parseMinutes(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}

// get returns the trimmed env value or the default when unset.
func get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
