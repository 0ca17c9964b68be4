package config

import (
	"flag"
	"os"
	"time"

	"github.com/akolosov/fincoach/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, hours
//	-k string   model provider API key
//	-u string   model provider base URL
//	-m string   model name
//	-g string   Google OAuth client id
//	-b int      history token budget
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k", "-u", "-m", "-g", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity duration (in hours)")

	fs.StringVar(&config.LLMAPIKey, "k", config.LLMAPIKey, "model provider API key")
	fs.StringVar(&config.LLMBaseURL, "u", config.LLMBaseURL, "model provider base URL")
	fs.StringVar(&config.LLMModel, "m", config.LLMModel, "model name")
	fs.StringVar(&config.GoogleClientID, "g", config.GoogleClientID, "Google OAuth client id")
	fs.IntVar(&config.HistoryTokenBudget, "b", config.HistoryTokenBudget, "history token budget")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
}
