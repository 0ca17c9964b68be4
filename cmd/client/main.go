package main

import (
	"context"

	"github.com/akolosov/fincoach/internal/client/cli"
	"github.com/akolosov/fincoach/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Run(context.Background())
}
