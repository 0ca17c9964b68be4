package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/akolosov/fincoach/internal/common"
	"github.com/akolosov/fincoach/internal/dbx"
	"github.com/akolosov/fincoach/internal/llm"
	"github.com/akolosov/fincoach/internal/logging"
	"github.com/akolosov/fincoach/internal/server/models"
	"github.com/akolosov/fincoach/internal/server/repositories/memories"
	"github.com/akolosov/fincoach/internal/server/repositories/messages"
	"github.com/akolosov/fincoach/internal/server/repositories/users"
)

// recordingLogger satisfies logging.Logger and captures error messages so
// tests can assert on best-effort failure paths.
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Info(ctx context.Context, msg string, args ...any) {}
func (l *recordingLogger) Warn(ctx context.Context, msg string, args ...any) {}
func (l *recordingLogger) Error(ctx context.Context, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
func (l *recordingLogger) With(args ...any) logging.Logger { return l }

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (r *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorDuplicateEmail
	}
	r.nextID++
	created := *user
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byEmail[user.Email] = &created
	return &created, nil
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeMemoriesRepo struct {
	mu      sync.Mutex
	facts   []*models.MemoryFact
	nextID  int
	listErr error
	addErr  error
}

func (r *fakeMemoriesRepo) ListByUser(ctx context.Context, userID string) ([]*models.MemoryFact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []*models.MemoryFact{}
	for _, f := range r.facts {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeMemoriesRepo) Add(ctx context.Context, fact *models.MemoryFact) (*models.MemoryFact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return nil, r.addErr
	}
	r.nextID++
	created := *fact
	created.ID = fmt.Sprintf("fact-%d", r.nextID)
	r.facts = append(r.facts, &created)
	return &created, nil
}

func (r *fakeMemoriesRepo) Delete(ctx context.Context, userID, factID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.facts {
		if f.ID == factID && f.UserID == userID {
			r.facts = append(r.facts[:i], r.facts[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *fakeMemoriesRepo) Clear(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.facts[:0]
	var removed int64
	for _, f := range r.facts {
		if f.UserID == userID {
			removed++
		} else {
			kept = append(kept, f)
		}
	}
	r.facts = kept
	return removed, nil
}

type fakeMessagesRepo struct {
	mu        sync.Mutex
	msgs      []*models.Message
	nextID    int
	appendErr error
	listErr   error
}

func (r *fakeMessagesRepo) Append(ctx context.Context, msg *models.Message) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return nil, r.appendErr
	}
	r.nextID++
	created := *msg
	created.ID = fmt.Sprintf("msg-%d", r.nextID)
	r.msgs = append(r.msgs, &created)
	return &created, nil
}

func (r *fakeMessagesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []*models.Message{}
	for _, m := range r.msgs {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessagesRepo) Clear(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.msgs[:0]
	var removed int64
	for _, m := range r.msgs {
		if m.UserID == userID {
			removed++
		} else {
			kept = append(kept, m)
		}
	}
	r.msgs = kept
	return removed, nil
}

// fakeRepoManager vends the in-memory fakes regardless of the DBTX handed in.
type fakeRepoManager struct {
	users    *fakeUsersRepo
	memories *fakeMemoriesRepo
	messages *fakeMessagesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    newFakeUsersRepo(),
		memories: &fakeMemoriesRepo{},
		messages: &fakeMessagesRepo{},
	}
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository       { return m.users }
func (m *fakeRepoManager) Memories(db dbx.DBTX) memories.Repository { return m.memories }
func (m *fakeRepoManager) Messages(db dbx.DBTX) messages.Repository { return m.messages }

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

// fakeProvider records the last request and serves canned replies.
type fakeProvider struct {
	reply     string
	jsonReply string
	err       error

	gotMessages []llm.Message
	gotConfig   llm.CallConfig
}

func (p *fakeProvider) Complete(ctx context.Context, msgs []llm.Message, opts ...llm.CallOption) (string, error) {
	p.gotMessages = msgs
	p.gotConfig = llm.ApplyCallOptions(opts)
	return p.reply, p.err
}

func (p *fakeProvider) CompleteJSON(ctx context.Context, msgs []llm.Message, opts ...llm.CallOption) (string, error) {
	p.gotMessages = msgs
	p.gotConfig = llm.ApplyCallOptions(opts)
	return p.jsonReply, p.err
}

func (p *fakeProvider) GetModel() string { return "fake-model" }
