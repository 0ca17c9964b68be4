package messages

import (
	"context"
	"fmt"

	"github.com/akolosov/fincoach/internal/dbx"
	"github.com/akolosov/fincoach/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, msg *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (id, user_id, role, content)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	msg.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		msg.ID, msg.UserID, msg.Role, msg.Content).Scan(&msg.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

// ListByUser returns the conversation log oldest first, the display order.
// Ties on created_at are broken by id (insertion order under uuid v4 is not
// meaningful, but the order stays stable between reads).
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Message, error) {
	query :=
		`SELECT id, user_id, role, content, created_at FROM messages
		 WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	msgs := []*models.Message{}
	for rows.Next() {
		msg := &models.Message{}
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msgs, nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID string) (int64, error) {
	query :=
		`DELETE FROM messages
		 WHERE user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
