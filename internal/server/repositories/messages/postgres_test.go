package messages

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akolosov/fincoach/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestAppend(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+messages\s*\(id,\s*user_id,\s*role,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "u-1", models.RoleUser, "hello").
		WillReturnRows(rows)

	msg := &models.Message{UserID: "u-1", Role: models.RoleUser, Content: "hello"}
	got, err := repo.Append(context.Background(), msg)
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
}

const listQ = `(?s)^SELECT\s+id,\s*user_id,\s*role,\s*content,\s*created_at\s+FROM\s+messages\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+ASC,\s*id\s+ASC\s*$`

func TestListByUser_OldestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "role", "content", "created_at"}).
		AddRow("m-1", "u-1", models.RoleUser, "hi", now.Add(-time.Minute)).
		AddRow("m-2", "u-1", models.RoleAssistant, "hello", now)
	mock.ExpectQuery(listQ).WithArgs("u-1").WillReturnRows(rows)

	msgs, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "m-1" || msgs[1].ID != "m-2" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestListByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs("u-1").WillReturnError(errors.New("db err"))

	_, err := repo.ListByUser(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestClear(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+messages\s+WHERE\s+user_id\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := repo.Clear(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 5 {
		t.Fatalf("want 5 removed, got %d", n)
	}
}
