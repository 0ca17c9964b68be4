package messages

import (
	"context"

	"github.com/akolosov/fincoach/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Message, error)
	Clear(ctx context.Context, userID string) (int64, error)
}
