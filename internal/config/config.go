package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	WordsFile   string

	// Zero leaves votes open until they resolve on their own
	VoteTimeout   time.Duration
	AllowSelfVote bool
	MaxNameLength int
}

// Load reads a .env file when one is present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		WordsFile:   os.Getenv("WORDS_FILE"),
	}

	var err error
	if cfg.VoteTimeout, err = durationEnv("VOTE_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.AllowSelfVote, err = boolEnv("ALLOW_SELF_VOTE", true); err != nil {
		return Config{}, err
	}
	if cfg.MaxNameLength, err = intEnv("MAX_NAME_LENGTH", 24); err != nil {
		return Config{}, err
	}
	if cfg.VoteTimeout < 0 {
		return Config{}, fmt.Errorf("VOTE_TIMEOUT must not be negative, got %v", cfg.VoteTimeout)
	}
	if cfg.MaxNameLength <= 0 {
		return Config{}, fmt.Errorf("MAX_NAME_LENGTH must be positive, got %d", cfg.MaxNameLength)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func boolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func intEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
