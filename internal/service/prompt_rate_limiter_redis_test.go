package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisPromptRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisPromptRateLimiter
		if !l.Allow("user-1") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("anonymous selection not limited", func(t *testing.T) {
		l := &redisPromptRateLimiter{
			client: &mockRedisEvaler{result: 99},
			window: time.Minute,
			max:    1,
			prefix: "prompt:rl:",
		}
		if !l.Allow("   ") {
			t.Fatalf("expected anonymous key to pass")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 1}
		l := &redisPromptRateLimiter{
			client: mock,
			window: 2 * time.Minute,
			max:    1,
			prefix: "prompt:rl:",
		}
		if !l.Allow(" User-1 ") {
			t.Fatalf("expected allow when count <= max")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "prompt:rl:user-1" {
			t.Fatalf("unexpected key normalization, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != 120 {
			t.Fatalf("expected TTL seconds=120, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisPromptAllowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("deny when count exceeds max", func(t *testing.T) {
		l := &redisPromptRateLimiter{
			client: &mockRedisEvaler{result: 2},
			window: time.Minute,
			max:    1,
			prefix: "prompt:rl:",
		}
		if l.Allow("user-1") {
			t.Fatalf("expected deny when count > max")
		}
	})

	t.Run("redis failure fail-open", func(t *testing.T) {
		l := &redisPromptRateLimiter{
			client: &mockRedisEvaler{err: errors.New("down")},
			window: time.Minute,
			max:    1,
			prefix: "prompt:rl:",
		}
		if !l.Allow("user-1") {
			t.Fatalf("expected fail-open on redis error")
		}
	})

	t.Run("nil client builds no limiter", func(t *testing.T) {
		if l := NewRedisPromptRateLimiter(nil, time.Minute, 1); l != nil {
			t.Fatalf("expected nil limiter for nil client")
		}
	})
}
