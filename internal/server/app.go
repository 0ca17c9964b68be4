// Package server initializes and runs the application server: it opens the
// database, applies schema migrations, wires the services, and starts the
// HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolosov/fincoach/internal/assistant"
	"github.com/akolosov/fincoach/internal/llm"
	"github.com/akolosov/fincoach/internal/llm/openai"
	"github.com/akolosov/fincoach/internal/logging"
	"github.com/akolosov/fincoach/internal/server/config"
	"github.com/akolosov/fincoach/internal/server/httpapi"
	"github.com/akolosov/fincoach/internal/server/identity"
	"github.com/akolosov/fincoach/internal/server/repositories/repomanager"
	"github.com/akolosov/fincoach/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	var provider llm.Provider
	if cfg.LLMAPIKey != "" {
		p, err := openai.NewProvider(cfg.LLMAPIKey,
			openai.WithModel(cfg.LLMModel),
			openai.WithBaseURL(cfg.LLMBaseURL),
		)
		if err != nil {
			return nil, fmt.Errorf("llm provider init error: %w", err)
		}
		provider = p
	} else {
		logger.Warn(context.Background(), "no model API key configured, assistant endpoints disabled")
	}

	var verifier identity.Verifier
	if cfg.GoogleClientID != "" {
		verifier = identity.NewGoogleVerifier(cfg.GoogleClientID)
	}

	cache, err := services.NewMemoryCache()
	if err != nil {
		return nil, fmt.Errorf("cache init error: %w", err)
	}

	memories := services.NewMemoryService(db, rm, cache)
	chatlog := services.NewChatLogService(db, rm)
	users := services.NewUserService(db, rm, verifier, cfg)
	chat := services.NewChatService(memories, chatlog, provider,
		assistant.NewWindower(cfg.HistoryTokenBudget), logger)
	advisor := services.NewAdvisorService(provider, logger)

	srv := httpapi.NewServer(cfg, logger, users, memories, chatlog, chat, advisor)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
