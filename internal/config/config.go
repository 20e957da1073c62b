package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs from the environment.
type Config struct {
	Port             string
	DBPath           string
	DatabaseURL      string
	RedisAddr        string
	NominatimBaseURL string
	OSRMBaseURL      string
	UserAgent        string
	LogLevel         string
	PlanTimeout      time.Duration
	PickupHours      float64
	DropoffHours     float64
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:             Get("PORT", "8080"),
		DBPath:           Get("DB_PATH", "data/app.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		NominatimBaseURL: Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		OSRMBaseURL:      Get("OSRM_BASE_URL", "https://router.project-osrm.org"),
		UserAgent:        Get("GEO_USER_AGENT", "trip-planner-service/1.0"),
		LogLevel:         Get("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.PlanTimeout, err = getDuration("PLAN_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PickupHours, err = getFloat("PICKUP_HOURS", 1); err != nil {
		return Config{}, err
	}
	if cfg.DropoffHours, err = getFloat("DROPOFF_HOURS", 1); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return d, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return f, nil
}
