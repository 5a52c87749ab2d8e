package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	DatabaseURL   string
	SessionSecret string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int
	CronSecret    string
	GinMode       string
	LogLevel      string
}

func Load() *Config {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "host=localhost port=5432 user=silverstage password=silverstage dbname=silverstage sslmode=disable"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		JWTSecret:     getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		JWTIssuer:     getEnv("JWT_ISSUER", "silverstage-api"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),
		CronSecret:    getEnv("CRON_SECRET", ""),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
