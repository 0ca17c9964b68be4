// Package services contains server-side business logic: account and session
// handling, the owner-scoped memory and conversation stores, the
// conversation orchestrator, and the structured-output advisors.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akolosov/fincoach/internal/common"
	"github.com/akolosov/fincoach/internal/server/auth"
	"github.com/akolosov/fincoach/internal/server/config"
	"github.com/akolosov/fincoach/internal/server/identity"
	"github.com/akolosov/fincoach/internal/server/models"
	"github.com/akolosov/fincoach/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Session bundles an authenticated user with a freshly minted token.
type Session struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - Register: create accounts with a salted one-way password hash
// - Login: verify credentials and mint a session token
// - FederatedLogin: resolve a federated claim to an account by email
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	verifier              identity.Verifier
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, verifier identity.Verifier, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		verifier:              verifier,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates an account and signs the caller in. A taken email yields
// common.ErrorDuplicateEmail.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.newSession(user)
}

// Login verifies the email/password pair. Unknown emails yield
// common.ErrorNotFound, a wrong password common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return s.newSession(user)
}

// FederatedLogin resolves a federated identity assertion to an account.
// An unseen email creates a user whose password hash is derived from random
// material and cannot be used to log in; a known email reuses the existing
// account. The operation is idempotent on email.
func (s *UserService) FederatedLogin(ctx context.Context, token string) (*Session, error) {
	if s.verifier == nil {
		return nil, common.ErrorConfigurationMissing
	}

	claim, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, claim.Email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInternal
		}

		hash, err := auth.HashPassword(uuid.NewString())
		if err != nil {
			return nil, common.ErrorInternal
		}

		user, err = repo.Create(ctx, &models.User{
			Name:         claim.Name,
			Email:        claim.Email,
			PasswordHash: hash,
		})
		if err != nil {
			// lost a race against a concurrent first login for the same email
			if errors.Is(err, common.ErrorDuplicateEmail) {
				user, err = repo.GetByEmail(ctx, claim.Email)
				if err != nil {
					return nil, common.ErrorInternal
				}
			} else {
				return nil, common.ErrorInternal
			}
		}
	}

	return s.newSession(user)
}

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{User: user, Token: token}, nil
}
