package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/larriantoniy/tg_carbon_bot/internal/config"
	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

// Store хранит сессии в Redis как JSON; истечение делает сам Redis через TTL ключа.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func New(rdb redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *Store) key(k domain.SessionKey) string {
	return s.prefix + k.String()
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key domain.SessionKey) (domain.Session, error) {
	data, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("redis get %s: %w", key, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session %s: %w", key, err)
	}
	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.ID, err)
	}
	if err := s.rdb.Set(ctx, s.key(sess.Key()), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", sess.Key(), err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key domain.SessionKey) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
