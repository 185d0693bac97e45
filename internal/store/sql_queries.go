// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/user-directory/models"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

var returningUserColumns = "RETURNING " + strings.Join(userColumns, ", ")

func (db *DB) buildCreateUserQuery(name, email, passwordHash string) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns("name", "email", "password_hash").
		Values(name, email, passwordHash).
		Suffix(returningUserColumns).
		ToSql()
}

func (db *DB) buildFetchUserQuery(id int64) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildFetchUserByEmailQuery matches email case-insensitively; both dialects
// index LOWER(email) or use a NOCASE collation.
func (db *DB) buildFetchUserByEmailQuery(email string) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Expr("LOWER(email) = LOWER(?)", email)).
		ToSql()
}

// buildUpdateUserQuery sets the non-nil fields of update in a fixed column
// order and bumps updated_at.
func (db *DB) buildUpdateUserQuery(id int64, update models.UserUpdate) (string, []any, error) {
	query := db.builder.Update(usersTable)

	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.PasswordHash != nil {
		query = query.Set("password_hash", *update.PasswordHash)
	}

	return query.
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}).
		Suffix(returningUserColumns).
		ToSql()
}

func (db *DB) buildCountUsersQuery() (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(usersTable).
		ToSql()
}

func (db *DB) buildPageUsersQuery(page models.Page) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		OrderBy("id ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
}
