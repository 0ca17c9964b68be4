// Package cli implements the interactive terminal client: account signup
// and login, the chat loop, and review of the assistant's long-term memory.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/akolosov/fincoach/internal/client/api"
	"github.com/akolosov/fincoach/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
	reader *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.IsLoggedIn()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
