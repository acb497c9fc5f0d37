package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything tunable by environment.
type Config struct {
	Port        string
	DatabaseURL string

	Stakes         []int
	PayoutFraction float64
	DrawInterval   time.Duration
	GraceWindow    time.Duration
	CountdownSec   int
	RearmDelaySec  int
}

// Load reads .env (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "4000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Stakes:         parseStakes(getEnv("STAKES", "10,20,50,100")),
		PayoutFraction: getFloat("PAYOUT_FRACTION", 0.8),
		DrawInterval:   time.Duration(getInt("DRAW_INTERVAL_SEC", 5)) * time.Second,
		GraceWindow:    time.Duration(getInt("GRACE_WINDOW_SEC", 4)) * time.Second,
		CountdownSec:   getInt("COUNTDOWN_SEC", 45),
		RearmDelaySec:  getInt("REARM_DELAY_SEC", 5),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[WARN] invalid %s=%q, using %.2f", key, v, fallback)
	}
	return fallback
}

func parseStakes(raw string) []int {
	var stakes []int
	for _, part := range strings.Split(raw, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n > 0 {
			stakes = append(stakes, n)
		}
	}
	if len(stakes) == 0 {
		stakes = []int{10, 20, 50, 100}
	}
	return stakes
}
