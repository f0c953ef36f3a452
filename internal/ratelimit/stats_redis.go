package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore aggregates decisions in Redis hashes:
//
//	<prefix>:total              {edge:allowed, edge:denied, contact:allowed, ...}
//	<prefix>:minute:<yyyymmddhhmm>   same fields, expiring after ttl
//
// Client identifiers are never written, only counts. Each Record is bounded by
// timeout so a slow Redis cannot hold up the request that triggered it.
type RedisStatsStore struct {
	rdb     *redis.Client
	prefix  string
	ttl     time.Duration
	timeout time.Duration
}

// DefaultStatsTimeout bounds a single Record call.
const DefaultStatsTimeout = 250 * time.Millisecond

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

// WithStatsTimeout bounds each Record call; zero or less disables the bound.
func WithStatsTimeout(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.timeout = d }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix:  "sevenstar:ratelimit",
		ttl:     24 * time.Hour,
		timeout: DefaultStatsTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRedisStatsStoreFromURL parses a redis:// URL and pings the server.
func NewRedisStatsStoreFromURL(ctx context.Context, url string, opts ...RedisStatsOption) (*RedisStatsStore, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	// Without this go-redis ignores context deadlines on reads and writes.
	redisOpts.ContextTimeoutEnabled = true
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return NewRedisStatsStore(rdb, opts...), nil
}

func (s *RedisStatsStore) Record(ctx context.Context, ev StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := ev.Layer + ":denied"
	if ev.Allowed {
		field = ev.Layer + ":allowed"
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStatsStore) Close() error {
	return s.rdb.Close()
}
