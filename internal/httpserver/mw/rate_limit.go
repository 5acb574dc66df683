package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/navsite/internal/utils"
)

// idleTTL is how long an untouched client bucket is kept.
const idleTTL = 15 * time.Minute

// RateLimitConfig configures a per-client-IP token bucket shared by the
// redirecting endpoints.
type RateLimitConfig struct {
	Burst             int  // bucket size, at least 1
	RefillPerIPPerMin int  // tokens added per minute, at least 1
	MaxEntries        int  // tracked clients before idle ones are evicted, 0 = unbounded
	TrustProxy        bool // resolve the client IP from proxy headers
	Now               func() time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

type limiter struct {
	burst     float64
	perSecond float64
	max       int
	now       func() time.Time

	mu        sync.Mutex
	clients   map[string]*bucket
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	l := &limiter{
		burst:     float64(max(cfg.Burst, 1)),
		perSecond: float64(max(cfg.RefillPerIPPerMin, 1)) / 60,
		max:       cfg.MaxEntries,
		now:       cfg.Now,
		clients:   make(map[string]*bucket),
	}
	if l.now == nil {
		l.now = time.Now
	}
	l.lastSweep = l.now()
	return l
}

// take spends one token of ip's bucket. It returns the tokens left, or the
// seconds to wait when the bucket is empty.
func (l *limiter) take(ip string) (ok bool, left int, wait int) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= time.Minute || (l.max > 0 && len(l.clients) >= l.max) {
		l.evictIdle(now)
	}

	b, seen := l.clients[ip]
	if !seen {
		b = &bucket{tokens: l.burst, lastSeen: now}
		l.clients[ip] = b
	}

	if elapsed := now.Sub(b.lastSeen).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed*l.perSecond)
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false, 0, max(int(math.Ceil((1-b.tokens)/l.perSecond)), 1)
	}
	b.tokens--
	return true, int(b.tokens), 0
}

func (l *limiter) evictIdle(now time.Time) {
	for ip, b := range l.clients {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

func (l *limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit rejects clients that exhaust their bucket with 429 and a
// Retry-After header.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return rateLimit(newLimiter(cfg), cfg.TrustProxy)
}

func rateLimit(l *limiter, trustProxy bool) func(http.Handler) http.Handler {
	limit := strconv.Itoa(int(l.burst))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, left, wait := l.take(utils.ClientIP(r, trustProxy))

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(left))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(wait))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
