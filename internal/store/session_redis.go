// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/models"
)

const sessionKeyPrefix = "user-directory:session:"

// ErrRegistryUnavailable wraps failures talking to the Redis registry.
var ErrRegistryUnavailable = errors.New("session registry unavailable")

type redisSessionRegistry struct {
	client *redis.Client
	now    func() time.Time
	logger *logger.Logger
}

// NewConnectRedis opens and pings the Redis client behind the session registry.
func NewConnectRedis(ctx context.Context, cfg config.Sessions, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	log.Info().Str("func", "NewConnectRedis").Msg("connected to redis successfully")

	return client, nil
}

// NewRedisSessionRegistry returns a [SessionRegistry] whose entries expire in
// Redis at the session's own expiry.
func NewRedisSessionRegistry(client *redis.Client, log *logger.Logger) SessionRegistry {
	return &redisSessionRegistry{
		client: client,
		now:    time.Now,
		logger: log,
	}
}

func sessionKey(tokenID string) string {
	return sessionKeyPrefix + tokenID
}

func (r *redisSessionRegistry) Register(ctx context.Context, session models.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err = r.client.Set(ctx, sessionKey(session.TokenID), payload, ttl).Err(); err != nil {
		r.logger.Err(err).Str("func", "redisSessionRegistry.Register").Msg("error storing session")
		return fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	return nil
}

func (r *redisSessionRegistry) Lookup(ctx context.Context, tokenID string) (models.Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(tokenID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "redisSessionRegistry.Lookup").Msg("error reading session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	var session models.Session
	if err = json.Unmarshal(payload, &session); err != nil {
		return models.Session{}, fmt.Errorf("error decoding session: %w", err)
	}
	if session.IsExpired(r.now()) {
		return models.Session{}, ErrNotFound
	}
	return session, nil
}

func (r *redisSessionRegistry) Revoke(ctx context.Context, tokenID string) error {
	if err := r.client.Del(ctx, sessionKey(tokenID)).Err(); err != nil {
		r.logger.Err(err).Str("func", "redisSessionRegistry.Revoke").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	return nil
}

// PurgeExpired is a no-op: Redis drops keys when their TTL runs out.
func (r *redisSessionRegistry) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}
