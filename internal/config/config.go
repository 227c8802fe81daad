package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	// Station is the NWS station code observations are fetched for.
	Station string `validate:"required"`

	// UserAgent must carry contact info per the NWS usage policy.
	UserAgent string `validate:"required,contains=@"`

	BaseURL string `validate:"required,url"`

	// LocalZone is the display time zone for API responses.
	LocalZone *time.Location

	// PollInterval controls how often the latest observation is fetched.
	PollInterval time.Duration

	// HoursToKeep is the rolling retention window.
	HoursToKeep int `validate:"min=1"`

	// PageLimit is the page size for backfill range queries.
	PageLimit int `validate:"min=1,max=1000"`

	// Backfill paginates through the whole window, so it gets the longer
	// timeout; poll is a single best-effort request.
	BackfillTimeout time.Duration
	PollTimeout     time.Duration

	Port string
}

// Window returns the retention window as a duration.
func (c *AppConfig) Window() time.Duration {
	return time.Duration(c.HoursToKeep) * time.Hour
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Station:     getenvDefault("NWS_STATION", "KMPR"),
		UserAgent:   getenvDefault("NWS_USER_AGENT", "station-weather (contact@example.com)"),
		BaseURL:     getenvDefault("NWS_BASE_URL", "https://api.weather.gov"),
		HoursToKeep: getenvInt("HOURS_TO_KEEP", 48),
		PageLimit:   getenvInt("PAGE_LIMIT", 1000),
		Port:        getenvDefault("PORT", "8080"),
	}

	var err error
	cfg.PollInterval, err = getenvDuration("POLL_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	cfg.BackfillTimeout, err = getenvDuration("BACKFILL_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cfg.PollTimeout, err = getenvDuration("POLL_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	tzName := getenvDefault("LOCAL_TZ", "America/Chicago")
	zone, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCAL_TZ: %w", err)
	}
	cfg.LocalZone = zone

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
