package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string
	RedisAddr  string

	// Bargain activity settings
	CutMin           decimal.Decimal
	CutMax           decimal.Decimal
	ActivityDuration time.Duration
	SweepInterval    time.Duration

	// Contribute throttle (per participant)
	ContributeLimit  int
	ContributeWindow time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),

		CutMin:           envDecimal("BARGAIN_CUT_MIN", "5"),
		CutMax:           envDecimal("BARGAIN_CUT_MAX", "25"),
		ActivityDuration: envDuration("BARGAIN_ACTIVITY_DURATION", 24*time.Hour),
		SweepInterval:    envDuration("BARGAIN_SWEEP_INTERVAL", time.Minute),
		ContributeLimit:  envInt("BARGAIN_CONTRIBUTE_LIMIT", 30),
		ContributeWindow: envDuration("BARGAIN_CONTRIBUTE_WINDOW", time.Minute),
	}

	if config.CutMax.LessThan(config.CutMin) {
		return nil, fmt.Errorf("BARGAIN_CUT_MAX %s is below BARGAIN_CUT_MIN %s", config.CutMax, config.CutMin)
	}

	return config, nil
}

func envDecimal(key, fallback string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		value, _ = decimal.NewFromString(fallback)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
