// Package config handles configuration for the terminal client.
package config

import (
	"flag"
	"os"

	"github.com/akolosov/fincoach/internal/flagx"
	"github.com/joho/godotenv"
)

// Config holds runtime settings for the client.
type Config struct {
	// ServerEndpointAddr is the base URL of the fincoach server API.
	ServerEndpointAddr string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:3001"
}

func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("FINCOACH_SERVER"); ok {
		cfg.ServerEndpointAddr = v
	}
}

func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "s", cfg.ServerEndpointAddr, "server base URL")

	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-s"}))
}

// LoadConfig builds a Config from defaults, environment, and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
