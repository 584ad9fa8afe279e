package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// HTTP server
	APIPort int

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// LLM configuration
	LLM LLMConfig

	// Engine configuration
	Engine EngineConfig
}

// LLMConfig holds LLM service configuration
type LLMConfig struct {
	Enabled     bool
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	TimeoutSec  int
}

// EngineConfig holds personality-engine parameters and thresholds
type EngineConfig struct {
	// Behavioral window applied to assessments, achievements and
	// team/opportunity/chat interactions. Goals are always all-time.
	BehaviorWindowDays int

	// Percentile score history kept per user/archetype pair
	PercentileHistoryLimit int

	// Confidence attached to fallback analyses and interest updates
	FallbackConfidence float64
	InterestConfidence float64

	// Seed for the fallback scorer's PRNG. 0 means time-seeded.
	FallbackSeed int64

	// Cache TTL and per-user cooldown for LLM analyses, in minutes
	AnalysisCacheTTLMinutes int
	AnalysisCooldownMinutes int

	// Cron expression for the nightly percentile recalculation batch
	RecalcSchedule string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		APIPort: getEnvInt("API_PORT", 8080),

		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "growthpath"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "growthpath"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "growthpath123"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// LLM configuration
		LLM: LLMConfig{
			Enabled:     getEnvOrDefault("LLM_ENABLED", "false") == "true",
			Endpoint:    getEnvOrDefault("LLM_ENDPOINT", "https://api.openai.com/v1"),
			APIKey:      getEnvOrDefault("LLM_API_KEY", ""),
			Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.3),
			TimeoutSec:  getEnvInt("LLM_TIMEOUT_SEC", 45),
		},

		// Engine configuration
		Engine: EngineConfig{
			BehaviorWindowDays:      getEnvInt("ENGINE_BEHAVIOR_WINDOW_DAYS", 30),
			PercentileHistoryLimit:  getEnvInt("ENGINE_PERCENTILE_HISTORY_LIMIT", 30),
			FallbackConfidence:      getEnvFloat("ENGINE_FALLBACK_CONFIDENCE", 0.6),
			InterestConfidence:      getEnvFloat("ENGINE_INTEREST_CONFIDENCE", 0.7),
			FallbackSeed:            int64(getEnvInt("ENGINE_FALLBACK_SEED", 0)),
			AnalysisCacheTTLMinutes: getEnvInt("ENGINE_ANALYSIS_CACHE_TTL_MIN", 30),
			AnalysisCooldownMinutes: getEnvInt("ENGINE_ANALYSIS_COOLDOWN_MIN", 1),
			RecalcSchedule:          getEnvOrDefault("ENGINE_RECALC_SCHEDULE", "0 3 * * *"),
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
