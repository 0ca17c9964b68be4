package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/akolosov/fincoach/internal/server/models"
	"github.com/akolosov/fincoach/internal/server/repositories/repomanager"
	"github.com/dgraph-io/ristretto"
)

// MemoryService manages the per-user long-term fact store. A snapshot of
// each user's fact list is kept in an in-process cache because the
// conversation loop reads it on every turn; any write for a user drops that
// user's snapshot.
type MemoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *ristretto.Cache
}

// NewMemoryCache builds the snapshot cache. Counters are sized for roughly
// ten thousand active users.
func NewMemoryCache() (*ristretto.Cache, error) {
	return ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     1 << 26, // 64 MiB of snapshots
		BufferItems: 64,
	})
}

// NewMemoryService constructs a MemoryService. The cache may be nil, in
// which case every read goes to the database.
func NewMemoryService(db *sql.DB, m repomanager.RepositoryManager, cache *ristretto.Cache) *MemoryService {
	return &MemoryService{db: db, repomanager: m, cache: cache}
}

// List returns the user's facts, newest first.
func (s *MemoryService) List(ctx context.Context, userID string) ([]*models.MemoryFact, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(userID); ok {
			if facts, ok := v.([]*models.MemoryFact); ok {
				return facts, nil
			}
		}
	}

	facts, err := s.repomanager.Memories(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing memory: %w", err)
	}

	if s.cache != nil {
		cost := int64(0)
		for _, f := range facts {
			cost += int64(len(f.Category) + len(f.Content))
		}
		s.cache.Set(userID, facts, cost+1)
	}

	return facts, nil
}

// Add stores a fact. A blank category falls back to the default one.
func (s *MemoryService) Add(ctx context.Context, userID, category, content string) (*models.MemoryFact, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.DefaultMemoryCategory
	}

	fact, err := s.repomanager.Memories(s.db).Add(ctx, &models.MemoryFact{
		UserID:   userID,
		Category: category,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("adding memory: %w", err)
	}

	s.invalidate(userID)
	return fact, nil
}

// Remove deletes a single fact. The fact must belong to the user; a
// mismatched or unknown id yields common.ErrorNotFound.
func (s *MemoryService) Remove(ctx context.Context, userID, factID string) error {
	if err := s.repomanager.Memories(s.db).Delete(ctx, userID, factID); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// Clear wipes the user's entire fact store and reports how many facts were
// removed.
func (s *MemoryService) Clear(ctx context.Context, userID string) (int64, error) {
	n, err := s.repomanager.Memories(s.db).Clear(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clearing memory: %w", err)
	}
	s.invalidate(userID)
	return n, nil
}

func (s *MemoryService) invalidate(userID string) {
	if s.cache != nil {
		s.cache.Del(userID)
	}
}
