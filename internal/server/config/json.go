package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akolosov/fincoach/internal/flagx"
	"github.com/akolosov/fincoach/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	LLMAPIKey             string         `json:"llm_api_key"`
	LLMBaseURL            string         `json:"llm_base_url"`
	LLMModel              string         `json:"llm_model"`
	GoogleClientID        string         `json:"google_client_id"`
	HistoryTokenBudget    int            `json:"history_token_budget"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
//
// Only non-zero JSON values overlay the current Config.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.LLMAPIKey != "" {
		config.LLMAPIKey = c.LLMAPIKey
	}
	if c.LLMBaseURL != "" {
		config.LLMBaseURL = c.LLMBaseURL
	}
	if c.LLMModel != "" {
		config.LLMModel = c.LLMModel
	}
	if c.GoogleClientID != "" {
		config.GoogleClientID = c.GoogleClientID
	}
	if c.HistoryTokenBudget > 0 {
		config.HistoryTokenBudget = c.HistoryTokenBudget
	}
}
