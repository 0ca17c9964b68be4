package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akolosov/fincoach/internal/logging"
	"github.com/akolosov/fincoach/internal/server/config"
	"github.com/akolosov/fincoach/internal/server/models"
	"github.com/akolosov/fincoach/internal/server/services"
)

const shutdownGrace = 5 * time.Second

// The server depends on narrow views of the services so handlers can be
// tested against stubs.

type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	FederatedLogin(ctx context.Context, token string) (*services.Session, error)
}

type MemoryStore interface {
	List(ctx context.Context, userID string) ([]*models.MemoryFact, error)
	Add(ctx context.Context, userID, category, content string) (*models.MemoryFact, error)
	Remove(ctx context.Context, userID, factID string) error
	Clear(ctx context.Context, userID string) (int64, error)
}

type ChatLog interface {
	Append(ctx context.Context, userID, role, content string) (*models.Message, error)
	List(ctx context.Context, userID string) ([]*models.Message, error)
	Clear(ctx context.Context, userID string) (int64, error)
}

type Converser interface {
	Converse(ctx context.Context, userID, text string) (string, error)
}

type Advisor interface {
	AnalyzeExpenses(ctx context.Context, csvData string) (*services.ExpenseReport, error)
	PlanBudget(ctx context.Context, req *services.BudgetRequest) (*services.BudgetPlan, error)
	PlanGoal(ctx context.Context, req *services.GoalRequest) (*services.GoalStrategy, error)
	ExplainConcept(ctx context.Context, term string) (*services.ConceptExplanation, error)
}

// Server wires the services into an HTTP API.
type Server struct {
	addr      string
	jwtSecret []byte
	logger    logging.Logger

	users    Authenticator
	memories MemoryStore
	chatlog  ChatLog
	chat     Converser
	advisor  Advisor
}

func NewServer(cfg *config.Config, logger logging.Logger,
	users Authenticator, memories MemoryStore, chatlog ChatLog,
	chat Converser, advisor Advisor) *Server {
	return &Server{
		addr:      cfg.EndpointAddr,
		jwtSecret: []byte(cfg.SecretKey),
		logger:    logger,
		users:     users,
		memories:  memories,
		chatlog:   chatlog,
		chat:      chat,
		advisor:   advisor,
	}
}

// Handler builds the route table. Exposed separately so tests can exercise
// routing without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/google", s.handleGoogleLogin)

	mux.HandleFunc("GET /api/memory", s.withAuth(s.handleMemoryList))
	mux.HandleFunc("POST /api/memory", s.withAuth(s.handleMemoryAdd))
	mux.HandleFunc("DELETE /api/memory/{id}", s.withAuth(s.handleMemoryDelete))
	mux.HandleFunc("DELETE /api/memory", s.withAuth(s.handleMemoryClear))

	mux.HandleFunc("GET /api/chat", s.withAuth(s.handleChatList))
	mux.HandleFunc("POST /api/chat", s.withAuth(s.handleChatAppend))
	mux.HandleFunc("DELETE /api/chat", s.withAuth(s.handleChatClear))
	mux.HandleFunc("POST /api/chat/converse", s.withAuth(s.handleConverse))

	mux.HandleFunc("POST /api/advisor/expenses", s.withAuth(s.handleAnalyzeExpenses))
	mux.HandleFunc("POST /api/advisor/budget", s.withAuth(s.handlePlanBudget))
	mux.HandleFunc("POST /api/advisor/goal", s.withAuth(s.handlePlanGoal))
	mux.HandleFunc("POST /api/advisor/explain", s.withAuth(s.handleExplainConcept))

	return mux
}

// Run serves the API until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	s.logger.Info(ctx, "shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
