package repomanager

import (
	"context"
	"database/sql"

	"github.com/akolosov/fincoach/internal/dbx"
	"github.com/akolosov/fincoach/internal/server/repositories/memories"
	"github.com/akolosov/fincoach/internal/server/repositories/messages"
	"github.com/akolosov/fincoach/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run several repository calls inside one transaction when
// needed, and exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Memories(db dbx.DBTX) memories.Repository
	Messages(db dbx.DBTX) messages.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
