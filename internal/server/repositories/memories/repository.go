package memories

import (
	"context"

	"github.com/akolosov/fincoach/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.MemoryFact, error)
	Add(ctx context.Context, fact *models.MemoryFact) (*models.MemoryFact, error)
	Delete(ctx context.Context, userID, factID string) error
	Clear(ctx context.Context, userID string) (int64, error)
}
