package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost          string
	HTTPPort          string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string

	// SeedDays is the length of the availability window the demo migration
	// seeds, starting from tomorrow.
	SeedDays int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	readHeaderTimeout, _ := time.ParseDuration(getEnv("HTTP_READ_HEADER_TIMEOUT", "20s"))

	return Config{
		HTTPHost:          getEnv("HTTP_HOST", "localhost"),
		HTTPPort:          getEnv("HTTP_PORT", "8092"),
		ReadHeaderTimeout: readHeaderTimeout,
		LivenessEndpoint:  getEnv("LIVENESS_ENDPOINT", "/liveness"),
		SeedDays:          getEnvInt("SEED_DAYS", 120),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
