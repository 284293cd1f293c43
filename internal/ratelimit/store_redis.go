package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills and consumes a bucket stored as a hash
// {tokens, ts} in one atomic step.
//
// KEYS[1] bucket key
// ARGV[1] capacity
// ARGV[2] tokens added per refill interval
// ARGV[3] refill interval in milliseconds
// ARGV[4] caller time in unix milliseconds
// ARGV[5] cost
// ARGV[6] key ttl in milliseconds
//
// Time never moves backwards for a bucket: a caller whose clock is behind
// the stored ts refills nothing. Numbers are returned as strings because
// Redis truncates Lua numbers to integers.
var tokenBucketScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local cost = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens = tonumber(state[1])
local ts = tonumber(state[2])
if tokens == nil or ts == nil then
  tokens = capacity
  ts = now
end
if now < ts then
  now = ts
end

tokens = math.min(capacity, tokens + (now - ts) * rate / interval)

local allowed = 0
if tokens >= cost then
  tokens = tokens - cost
  allowed = 1
end

redis.call("HSET", KEYS[1], "tokens", tostring(tokens), "ts", tostring(now))
redis.call("PEXPIRE", KEYS[1], ttl)
return {allowed, tostring(tokens)}
`)

// RedisStore is a QuotaStore shared by every process using the same Redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    Clock
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisClock sets the clock whose readings are sent to the script.
func WithRedisClock(now Clock) RedisOption {
	return func(s *RedisStore) { s.now = now }
}

// WithKeyPrefix namespaces every bucket key as "<prefix>:<key>".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = strings.TrimSpace(prefix) }
}

// NewRedisStore constructs a RedisStore over client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRedisClient opens a client for addr and verifies it with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", addr, err)
	}
	return client, nil
}

// TryConsume implements QuotaStore.
func (s *RedisStore) TryConsume(ctx context.Context, key string, bucket BucketConfig, cost int64) (Decision, error) {
	if err := bucket.Validate(); err != nil {
		return Decision{}, err
	}

	args := []any{
		bucket.Capacity,
		strconv.FormatFloat(bucket.RefillRate, 'f', -1, 64),
		max(bucket.RefillInterval.Milliseconds(), 1),
		s.now().UnixMilli(),
		cost,
		max(bucket.fullRefill().Milliseconds(), 1),
	}

	res, err := tokenBucketScript.Run(ctx, s.client, []string{s.buildKey(key)}, args...).Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("error running token bucket script: %w", err)
	}

	allowed, tokens, err := parseReply(res)
	if err != nil {
		return Decision{}, err
	}

	d := Decision{Allowed: allowed, Remaining: tokens}
	if !allowed {
		d.RetryAfter = bucket.retryAfter(tokens, cost)
	}
	return d, nil
}

// Ping implements QuotaStore.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) buildKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func parseReply(res []any) (bool, float64, error) {
	if len(res) != 2 {
		return false, 0, errUnexpectedReply
	}

	var allowed bool
	switch v := res[0].(type) {
	case int64:
		allowed = v == 1
	default:
		return false, 0, errUnexpectedReply
	}

	str, ok := res[1].(string)
	if !ok {
		return false, 0, errUnexpectedReply
	}
	tokens, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %w", errUnexpectedReply, err)
	}

	return allowed, tokens, nil
}
