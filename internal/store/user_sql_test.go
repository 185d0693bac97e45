// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/migrations"
	"github.com/MKhiriev/user-directory/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	l := logger.Nop()
	repo := &userRepository{
		db:     newDB(conn, migrations.Postgres, l),
		logger: l,
	}
	return repo, mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users \(name,email,password_hash\) VALUES \(\$1,\$2,\$3\) RETURNING id, name`).
		WithArgs("Das Tan", "das@tan.com", "hash").
		WillReturnRows(userRows().AddRow(1, "Das Tan", "das@tan.com", "hash", now, now))

	user, err := repo.Create(context.Background(), "Das Tan", "das@tan.com", "hash")
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Das Tan", user.Name)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.True(t, now.Equal(user.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Create(context.Background(), "Das Tan", "DAS@tan.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_Create_DriverError(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	driverErr := errors.New("connection reset")

	mock.ExpectQuery("INSERT INTO users").WillReturnError(driverErr)

	_, err := repo.Create(context.Background(), "Das Tan", "das@tan.com", "hash")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, driverErr)
}

func TestUserRepository_Fetch(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(userRows().AddRow(7, "Seven", "seven@example.com", "h", now, now))

	user, err := repo.Fetch(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "seven@example.com", user.Email)
}

func TestUserRepository_Fetch_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Fetch(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_FetchByEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("DAS@TAN.COM").
		WillReturnRows(userRows().AddRow(1, "Das Tan", "das@tan.com", "h", now, now))

	user, err := repo.FetchByEmail(context.Background(), "DAS@TAN.COM")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestUserRepository_Update(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()
	name := "Renamed"
	email := "new@example.com"

	mock.ExpectQuery(`UPDATE users SET name = \$1, email = \$2, updated_at = CURRENT_TIMESTAMP WHERE id = \$3 RETURNING`).
		WithArgs("Renamed", "new@example.com", int64(3)).
		WillReturnRows(userRows().AddRow(3, name, email, "h", now, now))

	user, err := repo.Update(context.Background(), 3, models.UserUpdate{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_Empty(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(userRows().AddRow(3, "Same", "same@example.com", "h", now, now))

	user, err := repo.Update(context.Background(), 3, models.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Same", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_Errors(t *testing.T) {
	email := "taken@example.com"

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "missing user", err: sql.ErrNoRows, wantErr: ErrNotFound},
		{name: "duplicate email", err: pgError(pgerrcode.UniqueViolation), wantErr: ErrDuplicateEmail},
		{name: "connection lost", err: pgError(pgerrcode.ConnectionFailure), wantErr: ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)
			mock.ExpectQuery("UPDATE users").WillReturnError(tt.err)

			_, err := repo.Update(context.Background(), 9, models.UserUpdate{Email: &email})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserRepository_Count(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(35))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 35, total)
}

func TestUserRepository_Page(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	rows := userRows()
	for id := 31; id <= 35; id++ {
		rows.AddRow(id, "user", "u@example.com", "h", now, now)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(35))
	mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY id ASC LIMIT 30 OFFSET 30`).
		WillReturnRows(rows)
	mock.ExpectCommit()

	page, err := repo.Page(context.Background(), 2, 30)
	require.NoError(t, err)

	assert.Len(t, page.Users, 5)
	assert.Equal(t, int64(31), page.Users[0].ID)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasPrevious)
	assert.False(t, page.HasNext)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Page_OutOfRange(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(35))
	mock.ExpectCommit()

	page, err := repo.Page(context.Background(), 9, 30)
	require.NoError(t, err)

	assert.Empty(t, page.Users)
	assert.NotNil(t, page.Users)
	assert.Equal(t, 35, page.Total)
	assert.NoError(t, mock.ExpectationsWereMet(), "no select must be issued for an out-of-range page")
}

func TestUserRepository_Page_BeginError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := repo.Page(context.Background(), 1, 30)
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestUserRepository_Page_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY").
		WillReturnRows(userRows().AddRow("not-a-number", "n", "e", "h", time.Now(), time.Now()))
	mock.ExpectRollback()

	_, err := repo.Page(context.Background(), 1, 30)
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestSQLTime_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    time.Time
		wantErr bool
	}{
		{name: "time", src: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), want: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{name: "sqlite text", src: "2026-01-02 03:04:05", want: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{name: "bytes", src: []byte("2026-01-02T03:04:05Z"), want: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{name: "nil", src: nil},
		{name: "garbage", src: "yesterday", wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sqlTime
			err := got.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %v", got.Time)
		})
	}
}
