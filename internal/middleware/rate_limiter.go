package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Lahari-104/Mediguard/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

// fixedWindow counts hits per key inside a window that resets once elapsed.
type fixedWindow struct {
	count     int
	windowEnd time.Time
}

// windowLimiter is a per-key fixed-window counter. Expired keys are purged
// inline, at most once per purgeInterval.
type windowLimiter struct {
	mu        sync.Mutex
	entries   map[string]*fixedWindow
	limit     int
	window    time.Duration
	nextPurge time.Time
	now       func() time.Time
}

func newWindowLimiter(limit int, window time.Duration) *windowLimiter {
	return &windowLimiter{
		entries: make(map[string]*fixedWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// allow records one hit for key and reports whether it is within the limit,
// plus when the key's current window ends.
func (l *windowLimiter) allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextPurge) {
		l.purgeLocked(now)
		l.nextPurge = now.Add(purgeInterval)
	}

	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &fixedWindow{windowEnd: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

func (l *windowLimiter) purgeLocked(now time.Time) {
	purged := 0
	for k, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, k)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.entries)).Msg("rate limiter entries purged")
	}
}

func (l *windowLimiter) middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			retry := int(time.Until(windowEnd).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.WithCode(apierror.CodeRateLimited, msg))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits auth attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newWindowLimiter(20, time.Minute).middleware("Too many login attempts, try again in a minute")
}

// RateLimiter limits every request to limit per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newWindowLimiter(limit, window).middleware("Too many requests, slow down")
}
