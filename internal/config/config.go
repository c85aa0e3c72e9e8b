package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Backend  BackendConfig
	Storage  StorageConfig
	Analysis AnalysisConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level  string
	Format string
}

type BackendConfig struct {
	URL                 string
	RequestTimeout      time.Duration
	HealthCheckInterval time.Duration
}

type StorageConfig struct {
	MaxFileSize int64
}

type AnalysisConfig struct {
	MinTextLength int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	env := getEnv("ENV", "development")
	defaultFormat := "console"
	if env == "production" {
		defaultFormat = "json"
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  env,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", defaultFormat),
		},
		Backend: BackendConfig{
			URL:                 strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5000/api"), "/"),
			RequestTimeout:      getEnvAsDuration("REQUEST_TIMEOUT", "60s"),
			HealthCheckInterval: getEnvAsDuration("HEALTH_CHECK_INTERVAL", "5s"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Analysis: AnalysisConfig{
			MinTextLength: getEnvAsInt("MIN_TEXT_LENGTH", 50),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
