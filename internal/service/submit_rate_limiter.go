package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// SubmitRateLimiter limita envios por clave (conversacion o cliente).
type SubmitRateLimiter interface {
	Allow(key string) bool
}

const redisSubmitAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisSubmitRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisSubmitRateLimiter devuelve nil si no hay cliente; el handler trata nil como sin limite.
func NewRedisSubmitRateLimiter(client *redis.Client, window time.Duration, max int) SubmitRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisSubmitRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "induk:submit:rl:",
	}
}

// Allow falla abierto: si Redis no responde el envio se permite.
func (l *redisSubmitRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	redisKey := l.prefix + normalizedKey
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisSubmitAllowScript, []string{redisKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}

// memorySubmitRateLimiter es la ventana fija en proceso, usada cuando no hay Redis.
// Las claves caducan con la ventana y el total queda acotado por size.
type memorySubmitRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	now    func() time.Time
	hits   *expirable.LRU[string, submitWindow]
}

type submitWindow struct {
	start time.Time
	count int
}

func NewMemorySubmitRateLimiter(window time.Duration, max, size int) SubmitRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if size <= 0 {
		size = 1024
	}
	return &memorySubmitRateLimiter{
		window: window,
		max:    max,
		now:    time.Now,
		hits:   expirable.NewLRU[string, submitWindow](size, nil, window),
	}
}

func (l *memorySubmitRateLimiter) Allow(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	w, ok := l.hits.Get(key)
	if !ok || now.Sub(w.start) >= l.window {
		l.hits.Add(key, submitWindow{start: now, count: 1})
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	l.hits.Add(key, w)
	return true
}

// Len cuenta las claves vivas.
func (l *memorySubmitRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hits.Len()
}
