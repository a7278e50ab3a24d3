package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPromptAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

// PromptRateLimiter limita cada cuánto puede mostrársele una pregunta a un
// usuario. Implementaciones nil deshabilitan el límite.
type PromptRateLimiter interface {
	Allow(key string) bool
}

type redisPromptRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisPromptRateLimiter crea un limitador con ventana fija: como máximo max
// prompts por usuario dentro de window. window es el intervalo del popup.
func NewRedisPromptRateLimiter(client *redis.Client, window time.Duration, max int) PromptRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisPromptRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "prompt:rl:",
	}
}

func (l *redisPromptRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		// Selección anónima no se limita: no hay identidad que contar.
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	redisKey := l.prefix + normalizedKey
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisPromptAllowScript, []string{redisKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
