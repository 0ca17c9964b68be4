package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/akolosov/fincoach/internal/assistant"
	"github.com/akolosov/fincoach/internal/common"
	"github.com/akolosov/fincoach/internal/llm"
	"github.com/akolosov/fincoach/internal/logging"
	"github.com/akolosov/fincoach/internal/server/models"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 1024

	// Returned to the user when the model is unreachable after retries.
	// Kept deliberately free of technical detail.
	fallbackReply = "Sorry, I ran into a problem generating a response. Please try again in a moment."
)

// ChatService runs the memory-augmented conversation loop: it grounds each
// turn in the user's long-term facts, calls the model, extracts any memory
// directive from the reply, and persists both sides of the exchange.
type ChatService struct {
	memories *MemoryService
	chatlog  *ChatLogService
	provider llm.Provider
	windower *assistant.Windower
	logger   logging.Logger
}

func NewChatService(memories *MemoryService, chatlog *ChatLogService, provider llm.Provider, windower *assistant.Windower, logger logging.Logger) *ChatService {
	return &ChatService{
		memories: memories,
		chatlog:  chatlog,
		provider: provider,
		windower: windower,
		logger:   logger,
	}
}

// Converse handles one turn of conversation and returns the assistant's
// visible reply. Memory writes and transcript appends are best effort: their
// failure is logged but never blocks the reply. A missing provider yields
// common.ErrorConfigurationMissing.
func (s *ChatService) Converse(ctx context.Context, userID, text string) (string, error) {
	if s.provider == nil {
		return "", common.ErrorConfigurationMissing
	}

	// Prior turns and facts are independent reads.
	var (
		wg      sync.WaitGroup
		history []*models.Message
		facts   []*models.MemoryFact
		histErr error
		factErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		history, histErr = s.chatlog.List(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		facts, factErr = s.memories.List(ctx, userID)
	}()
	wg.Wait()

	if histErr != nil {
		return "", fmt.Errorf("loading history: %w", histErr)
	}
	if factErr != nil {
		return "", fmt.Errorf("loading memory: %w", factErr)
	}

	// The new turn is recorded before the model call so it survives an
	// upstream failure, but a store error must not block the reply.
	if _, err := s.chatlog.Append(ctx, userID, models.RoleUser, text); err != nil {
		s.logger.Error(ctx, "recording user turn", "error", err)
	}

	prior := make([]llm.Message, 0, len(history))
	for _, m := range history {
		prior = append(prior, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	prior = s.windower.Trim(prior)

	msgs := make([]llm.Message, 0, len(prior)+2)
	msgs = append(msgs, llm.SystemMessage(assistant.BuildSystemPrompt(assistant.Persona, facts)))
	msgs = append(msgs, prior...)
	msgs = append(msgs, llm.UserMessage(text))

	raw, err := s.provider.Complete(ctx, msgs,
		llm.WithTemperature(chatTemperature),
		llm.WithMaxTokens(chatMaxTokens),
	)
	if err != nil {
		if errors.Is(err, common.ErrorConfigurationMissing) {
			return "", err
		}
		s.logger.Error(ctx, "model completion failed", "error", err)
		s.record(ctx, userID, models.RoleAssistant, fallbackReply)
		return fallbackReply, nil
	}

	ex := assistant.Extract(raw)
	if ex.Fact != nil {
		if _, err := s.memories.Add(ctx, userID, ex.Fact.Category, ex.Fact.Content); err != nil {
			s.logger.Error(ctx, "saving extracted memory", "error", err)
		}
	}

	s.record(ctx, userID, models.RoleAssistant, ex.VisibleText)
	return ex.VisibleText, nil
}

func (s *ChatService) record(ctx context.Context, userID, role, content string) {
	if _, err := s.chatlog.Append(ctx, userID, role, content); err != nil {
		s.logger.Error(ctx, "recording assistant turn", "error", err)
	}
}
