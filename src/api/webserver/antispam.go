package webserver

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/teploservice/lead-api/src/api/data"
)

// Throttle enforces a minimum interval between submissions from the same
// client. Allow returns false when the client submitted too recently.
type Throttle interface {
	Allow(ctx context.Context, key string) bool
}

// AntiSpam rejects honeypot hits and over-eager repeat submissions before
// the lead handler runs. A nil throttle disables the interval check.
func AntiSpam(th Throttle) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bots fill the hidden "website" field; humans never see it.
		if c.PostForm("website") != "" {
			log.Printf("antispam: honeypot hit from %s", c.ClientIP())
			tooMany(c)
			return
		}
		if th != nil && !th.Allow(c, c.ClientIP()) {
			log.Printf("antispam: throttled %s", c.ClientIP())
			tooMany(c)
			return
		}
		c.Next()
	}
}

func tooMany(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   "Слишком много запросов",
	})
}

type redisThrottle struct {
	rdb    *redis.Client
	window time.Duration
}

// NewRedisThrottle shares throttle state across processes via Redis. Redis
// errors fail open: a broken cache must not reject real leads.
func NewRedisThrottle(rdb *redis.Client, window time.Duration) Throttle {
	return redisThrottle{rdb: rdb, window: window}
}

func (t redisThrottle) Allow(ctx context.Context, key string) bool {
	ok, err := data.MarkSubmission(ctx, t.rdb, key, t.window)
	if err != nil {
		log.Printf("antispam: redis: %v", err)
		return true
	}
	return ok
}

type memoryThrottle struct {
	mu     sync.Mutex
	last   map[string]time.Time
	window time.Duration
}

// NewMemoryThrottle is the single-process fallback when Redis is not
// configured. Stale entries are swept on a ticker.
func NewMemoryThrottle(window time.Duration) Throttle {
	t := &memoryThrottle{
		last:   make(map[string]time.Time),
		window: window,
	}
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			t.cleanup()
		}
	}()
	return t
}

func (t *memoryThrottle) Allow(_ context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if last, ok := t.last[key]; ok && now.Sub(last) < t.window {
		return false
	}
	t.last[key] = now
	return true
}

func (t *memoryThrottle) cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	for key, at := range t.last {
		if now.Sub(at) >= t.window {
			delete(t.last, key)
		}
	}
}
