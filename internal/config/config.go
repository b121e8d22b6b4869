package config

import (
	"os"
	"strconv"
)

// Interview duration bounds, in seconds. The configured value is clamped
// into this range.
const (
	DefaultInterviewDuration = 900
	MaxInterviewDuration     = 1200
)

type Config struct {
	AppPort string
	Debug   bool

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	GeminiAPIKey string
	GeminiModel  string

	// InterviewDuration is the total time allowed per session, in seconds.
	InterviewDuration int
}

func Load() Config {

	cfg := Config{

		AppPort: getenv("APP_PORT", "5000"),
		Debug:   os.Getenv("DEBUG") == "true",

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),

		InterviewDuration: DefaultInterviewDuration,
	}

	if v := os.Getenv("INTERVIEW_DURATION_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > MaxInterviewDuration {
				n = MaxInterviewDuration
			}
			cfg.InterviewDuration = n
		}
	}

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
