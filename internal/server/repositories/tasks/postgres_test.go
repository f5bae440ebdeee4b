package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+tasks\s*\(user_id,\s*title,\s*description\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow("task-1", now, now)
	mock.ExpectQuery(q).WithArgs("owner-1", "Buy milk", "2%").WillReturnRows(rows)

	task := &models.Task{UserID: "owner-1", Title: "Buy milk", Description: "2%"}
	got, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "task-1" || got.UserID != "owner-1" {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestListByOwner_OnlyOwnerRowsRequested(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*description,\s*created_at,\s*updated_at\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "created_at", "updated_at"}).
		AddRow("t2", "owner-1", "Newer", "d2", now, now).
		AddRow("t1", "owner-1", "Older", "d1", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(q).WithArgs("owner-1").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t2" || got[1].ID != "t1" {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "created_at", "updated_at"})
	mock.ExpectQuery(`SELECT`).WithArgs("owner-2").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "owner-2")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tasks, got %d", len(got))
	}
}

func TestUpdate_ScopesByOwnerInOneStatement(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+tasks\s+SET\s+title\s*=\s*\$1,\s*description\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$3\s+AND\s+user_id\s*=\s*\$4\s+RETURNING\s+id,\s*user_id,\s*title,\s*description,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "created_at", "updated_at"}).
		AddRow("t1", "owner-1", "New title", "New desc", now, now)
	mock.ExpectQuery(q).WithArgs("New title", "New desc", "t1", "owner-1").WillReturnRows(rows)

	got, err := repo.Update(context.Background(), "t1", "owner-1", "New title", "New desc")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "New title" || got.UserID != "owner-1" {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestUpdate_OtherOwnerLooksAbsent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// The owner predicate is part of the statement, so a foreign task
	// produces zero rows, same as a missing one.
	mock.ExpectQuery(`UPDATE`).
		WithArgs("x", "y", "t1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "t1", "intruder", "x", "y")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).WithArgs("t1", "owner-1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t1", "owner-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotOwnedOrMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE`).WithArgs("t1", "intruder").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "t1", "intruder")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE`).WillReturnError(errors.New("db down"))

	if err := repo.Delete(context.Background(), "t1", "owner-1"); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
