package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over .env entries (godotenv never overrides existing ones).
//
// Recognized variables:
//
//	ADDRESS                  HTTP bind address
//	DATABASE_URL             PostgreSQL DSN
//	JWT_SECRET               JWT HMAC secret
//	TOKEN_VALIDITY           session lifetime ("24h")
//	LLM_API_KEY              model provider API key
//	LLM_BASE_URL             OpenAI-compatible base URL
//	LLM_MODEL                model name
//	GOOGLE_CLIENT_ID         federated login audience
//	HISTORY_TOKEN_BUDGET     prior-turn token budget
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		config.LLMAPIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		config.LLMBaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		config.LLMModel = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		config.GoogleClientID = v
	}
	if v := os.Getenv("HISTORY_TOKEN_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.HistoryTokenBudget = n
		}
	}
}
