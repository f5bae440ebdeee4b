package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*email,\s*password_hash,\s*member_since\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow("6b9d2c1e-0000-4000-8000-000000000001", now, now)
	mock.ExpectQuery(insertQ).
		WithArgs("Alice", "alice@x.com", []byte("hash"), "August 31, 2026").
		WillReturnRows(rows)

	u := &models.User{Name: "Alice", Email: "alice@x.com", PasswordHash: []byte("hash"), MemberSince: "August 31, 2026"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "6b9d2c1e-0000-4000-8000-000000000001" || got.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("Alice", "alice@x.com", []byte("hash"), "August 31, 2026").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	u := &models.User{Name: "Alice", Email: "alice@x.com", PasswordHash: []byte("hash"), MemberSince: "August 31, 2026"}
	_, err := repo.Create(context.Background(), u)
	if !errors.Is(err, common.ErrorEmailTaken) {
		t.Fatalf("expected common.ErrorEmailTaken, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(errors.New("db down"))

	u := &models.User{Name: "Alice", Email: "alice@x.com", PasswordHash: []byte("hash")}
	if _, err := repo.Create(context.Background(), u); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestGetByEmail_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*member_since,\s*created_at,\s*updated_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "member_since", "created_at", "updated_at"}).
		AddRow("id-1", "Alice", "alice@x.com", []byte("hash"), "August 31, 2026", now, now)
	mock.ExpectQuery(q).WithArgs("alice@x.com").WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.Email != "alice@x.com" || string(got.PasswordHash) != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("nobody@x.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*\$1,\s*email\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$3\s+RETURNING\s+member_since,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"member_since", "created_at", "updated_at"}).
		AddRow("August 31, 2026", now, now)
	mock.ExpectQuery(q).WithArgs("Alice B", "aliceb@x.com", "id-1").WillReturnRows(rows)

	u := &models.User{ID: "id-1", Name: "Alice B", Email: "aliceb@x.com"}
	got, err := repo.Update(context.Background(), u)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.MemberSince != "August 31, 2026" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUpdate_EmailCollision(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	u := &models.User{ID: "id-1", Name: "Alice", Email: "taken@x.com"}
	_, err := repo.Update(context.Background(), u)
	if !errors.Is(err, common.ErrorEmailTaken) {
		t.Fatalf("expected common.ErrorEmailTaken, got %v", err)
	}
}
