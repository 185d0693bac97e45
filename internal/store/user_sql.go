package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository returns a SQL-backed [UserStore].
func NewUserRepository(db *DB, log *logger.Logger) UserStore {
	return &userRepository{
		db:     db,
		logger: log,
	}
}

func (u *userRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := u.db.buildCreateUserQuery(name, email, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Create").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(u.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.User{}, u.mapError(ctx, "userRepository.Create", err)
	}

	return user, nil
}

func (u *userRepository) Fetch(ctx context.Context, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := u.db.buildFetchUserQuery(id)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Fetch").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(u.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.User{}, u.mapError(ctx, "userRepository.Fetch", err)
	}

	return user, nil
}

func (u *userRepository) FetchByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := u.db.buildFetchUserByEmailQuery(email)
	if err != nil {
		log.Err(err).Str("func", "userRepository.FetchByEmail").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(u.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.User{}, u.mapError(ctx, "userRepository.FetchByEmail", err)
	}

	return user, nil
}

func (u *userRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	if update.IsEmpty() {
		return u.Fetch(ctx, id)
	}

	log := logger.FromContext(ctx)

	query, args, err := u.db.buildUpdateUserQuery(id, update)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Update").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(u.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.User{}, u.mapError(ctx, "userRepository.Update", err)
	}

	return user, nil
}

func (u *userRepository) Count(ctx context.Context) (int, error) {
	return u.count(ctx, u.db)
}

// Page counts and selects inside one transaction so the metadata and the
// returned rows describe the same snapshot.
func (u *userRepository) Page(ctx context.Context, index, size int) (models.Page, error) {
	log := logger.FromContext(ctx)

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Page").Msg("error beginning transaction")
		return models.Page{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	total, err := u.count(ctx, tx)
	if err != nil {
		return models.Page{}, err
	}

	page := models.NewPage(index, size, total)
	if page.InRange() {
		page.Users, err = u.selectPage(ctx, tx, page)
		if err != nil {
			return models.Page{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "userRepository.Page").Msg("error committing transaction")
		return models.Page{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return page, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (u *userRepository) count(ctx context.Context, q querier) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := u.db.buildCountUsersQuery()
	if err != nil {
		log.Err(err).Str("func", "userRepository.count").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err = q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "userRepository.count").Msg("error counting users")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return total, nil
}

func (u *userRepository) selectPage(ctx context.Context, q querier, page models.Page) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := u.db.buildPageUsersQuery(page)
	if err != nil {
		log.Err(err).Str("func", "userRepository.selectPage").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.selectPage").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, page.Size)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "userRepository.selectPage").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "userRepository.selectPage").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// mapError translates a driver error into the store's sentinel errors.
func (u *userRepository) mapError(ctx context.Context, funcName string, err error) error {
	log := logger.FromContext(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	switch u.db.errorClassifier.Classify(err) {
	case ClassUniqueViolation:
		log.Debug().Str("func", funcName).Msg("email is already taken")
		return ErrDuplicateEmail
	case ClassUnavailable:
		log.Err(err).Str("func", funcName).Msg("database is unavailable")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Err(err).Str("func", funcName).Msg("error executing query")
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		createdAt sqlTime
		updatedAt sqlTime
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time
	return user, nil
}
