package memories

import (
	"context"
	"fmt"

	"github.com/akolosov/fincoach/internal/common"
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

// ListByUser returns the user's facts newest first. Same-timestamp rows are
// tie-broken by id so the order is stable.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.MemoryFact, error) {
	query :=
		`SELECT id, user_id, category, content, created_at FROM user_memory
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	facts := []*models.MemoryFact{}
	for rows.Next() {
		fact := &models.MemoryFact{}
		if err := rows.Scan(&fact.ID, &fact.UserID, &fact.Category, &fact.Content, &fact.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		facts = append(facts, fact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return facts, nil
}

func (r *PostgresRepository) Add(ctx context.Context, fact *models.MemoryFact) (*models.MemoryFact, error) {
	query :=
		`INSERT INTO user_memory (id, user_id, category, content)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	fact.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		fact.ID, fact.UserID, fact.Category, fact.Content).Scan(&fact.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fact, nil
}

// Delete removes one fact scoped by both id and owner. A fact owned by
// another user is indistinguishable from a missing row: both yield
// common.ErrorNotFound and mutate nothing.
func (r *PostgresRepository) Delete(ctx context.Context, userID, factID string) error {
	query :=
		`DELETE FROM user_memory
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, factID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID string) (int64, error) {
	query :=
		`DELETE FROM user_memory
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
