package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cardapio/internal/config"
	"cardapio/internal/domain"
)

const (
	defaultKeyNamespace = "cardapio"
	sessionPrefix       = "session"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStore keeps session values on Redis under "<namespace>:session:<key>".
type RedisStore struct {
	store     cmdable
	raw       *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisStore connects using cfg and verifies connectivity.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	s := newRedisStore(raw, cfg.KeyPrefix, cfg.TTL)
	s.raw = raw
	return s, nil
}

func newRedisStore(store cmdable, namespace string, ttl time.Duration) *RedisStore {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = defaultKeyNamespace
	}
	return &RedisStore{store: store, namespace: namespace, ttl: ttl}
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.store.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Set stores value, expiring after the configured TTL when it is positive.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.Key(key), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.store.Del(ctx, s.Key(key)).Err()
}

// Key returns the namespaced Redis key for a session key.
func (s *RedisStore) Key(key string) string {
	return strings.Join([]string{s.namespace, sessionPrefix, strings.TrimSpace(key)}, ":")
}

// Ping verifies the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if this store owns one.
func (s *RedisStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}

// Compile-time assertion that RedisStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*RedisStore)(nil)
