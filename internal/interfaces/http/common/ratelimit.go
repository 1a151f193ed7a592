package common

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CacheProvider is the subset of a shared cache the limiter needs.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RateLimiter counts requests per key in a fixed window. Without a cache it
// falls back to process-local counters.
type RateLimiter struct {
	cache   CacheProvider
	limit   int
	window  time.Duration
	local   *localRateLimiter
	deduper *localDeduper
	logger  zerolog.Logger
}

func NewRateLimiter(cache CacheProvider, limit int, window time.Duration, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		cache:   cache,
		limit:   limit,
		window:  window,
		local:   newLocalRateLimiter(),
		deduper: newLocalDeduper(),
		logger:  logger,
	}
}

// Middleware limits requests per client IP under the given key prefix.
// A non-positive limit disables limiting.
func (l *RateLimiter) Middleware(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			allowed, retryAfter := l.Allow(r.Context(), prefix+":rate:"+ClientIP(r))
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				WriteMessage(l.logger, w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if l.cache == nil {
		return l.local.allow(key, l.limit, l.window)
	}

	state := rateLimitState{}
	if data, err := l.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= l.limit {
		return false, l.window
	}

	state.Count++
	data, _ := json.Marshal(state)
	if err := l.cache.Set(ctx, key, data, l.window); err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("rate limit state not stored")
	}
	return true, l.window
}

// Seen reports whether key was marked within its window.
func (l *RateLimiter) Seen(ctx context.Context, key string) bool {
	if l.cache == nil {
		return l.deduper.seen(key)
	}
	exists, err := l.cache.Exists(ctx, key)
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("duplicate lookup failed")
		return false
	}
	return exists
}

// Mark records key as seen for window. Callers mark only accepted requests.
func (l *RateLimiter) Mark(ctx context.Context, key string, window time.Duration) {
	if l.cache == nil {
		l.deduper.mark(key, window)
		return
	}
	if err := l.cache.Set(ctx, key, []byte("1"), window); err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("duplicate marker not stored")
	}
}

type rateLimitState struct {
	Count int `json:"count"`
}

// sweepInterval bounds how often the local fallbacks drop expired keys.
const sweepInterval = time.Minute

type localRateLimiter struct {
	mu        sync.Mutex
	states    map[string]*localRateState
	lastSweep time.Time
	now       func() time.Time
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
		now:    time.Now,
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := state.resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

// sweep must be called with mu held.
func (l *localRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, state := range l.states {
		if now.After(state.resetAt) {
			delete(l.states, key)
		}
	}
}

func (l *localRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.states)
}

type localDeduper struct {
	mu        sync.Mutex
	entries   map[string]time.Time
	lastSweep time.Time
	now       func() time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (d *localDeduper) seen(key string) bool {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.sweep(now)
	expiresAt, ok := d.entries[key]
	if ok && !now.Before(expiresAt) {
		delete(d.entries, key)
		return false
	}
	return ok
}

func (d *localDeduper) mark(key string, window time.Duration) {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.sweep(now)
	d.entries[key] = now.Add(window)
}

// sweep must be called with mu held.
func (d *localDeduper) sweep(now time.Time) {
	if now.Sub(d.lastSweep) < sweepInterval {
		return
	}
	d.lastSweep = now
	for key, expiresAt := range d.entries {
		if !now.Before(expiresAt) {
			delete(d.entries, key)
		}
	}
}

func (d *localDeduper) size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// ClientIP prefers proxy headers over the socket address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
