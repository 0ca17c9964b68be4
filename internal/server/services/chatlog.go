package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akolosov/fincoach/internal/common"
	"github.com/akolosov/fincoach/internal/server/models"
	"github.com/akolosov/fincoach/internal/server/repositories/repomanager"
)

// ChatLogService persists the per-user conversation transcript.
type ChatLogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewChatLogService(db *sql.DB, m repomanager.RepositoryManager) *ChatLogService {
	return &ChatLogService{db: db, repomanager: m}
}

// Append records a turn. Only the user and assistant roles are accepted.
func (s *ChatLogService) Append(ctx context.Context, userID, role, content string) (*models.Message, error) {
	if role != models.RoleUser && role != models.RoleAssistant {
		return nil, fmt.Errorf("%w: message role %q", common.ErrorInvalidArgument, role)
	}

	msg, err := s.repomanager.Messages(s.db).Append(ctx, &models.Message{
		UserID:  userID,
		Role:    role,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}
	return msg, nil
}

// List returns the user's transcript, oldest first.
func (s *ChatLogService) List(ctx context.Context, userID string) ([]*models.Message, error) {
	msgs, err := s.repomanager.Messages(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return msgs, nil
}

// Clear wipes the user's transcript and reports how many turns were removed.
func (s *ChatLogService) Clear(ctx context.Context, userID string) (int64, error) {
	n, err := s.repomanager.Messages(s.db).Clear(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clearing messages: %w", err)
	}
	return n, nil
}
