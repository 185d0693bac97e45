package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
)

// Storages bundles the user store and the session registry selected by config.
type Storages struct {
	Users    UserStore
	Sessions SessionRegistry

	closers []func() error
}

// NewStorages connects the configured backends. SQL backends have their schema
// bootstrapped before use.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	s := &Storages{}

	users, err := s.newUserStore(ctx, cfg.DB, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Users = users

	if cfg.Sessions.RedisAddress == "" {
		s.Sessions = NewMemorySessionRegistry()
		return s, nil
	}

	client, err := NewConnectRedis(ctx, cfg.Sessions, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, client.Close)
	s.Sessions = NewRedisSessionRegistry(client, log)

	return s, nil
}

func (s *Storages) newUserStore(ctx context.Context, cfg config.DB, log *logger.Logger) (UserStore, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemoryUserStore(log), nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, db.Close)

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return NewUserRepository(db, log), nil
}

// Close releases every opened connection.
func (s *Storages) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, s.closers[i]())
	}
	s.closers = nil
	return err
}
