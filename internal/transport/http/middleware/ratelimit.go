package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/vedran77/contacts/internal/apperr"
	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/transport/http/respond"
	"golang.org/x/time/rate"
)

var ErrTooManyRequests = apperr.RateLimited("Too many requests, please try again later.")

// RateLimiter keeps one token bucket per client key. A bucket holds
// `requests` tokens and refills at requests/window.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	interval  time.Duration
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows each key `requests` requests per window.
// requests must be positive.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		interval: window / time.Duration(requests),
		burst:    requests,
		window:   window,
		now:      time.Now,
	}
}

// Allow consumes one token for key.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.window {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(l.interval), l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for a full window; they would be full again.
func (l *RateLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.window {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects clients over their budget with 429. Clients are keyed by
// the remote IP of the connection.
func RateLimit(l *RateLimiter, log logging.Logger) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(math.Ceil(l.interval.Seconds())))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !l.Allow(ip) {
				log.Warn(r.Context(), "rate limit exceeded", "remote", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", retryAfter)
				respond.Error(w, r, log, ErrTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
