package httpserver

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/pkg/cmap"
)

// minLimiterIdle is the shortest time a client's bucket is kept after its
// last request.
const minLimiterIdle = time.Minute

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	idle    time.Duration
	clients *ClientIP
	now     func() time.Time

	buckets   *cmap.Map[*bucket]
	lastSweep atomic.Int64
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64
}

// NewRateLimiter limits each client to rps requests per second with the
// given burst. Buckets idle for longer than a full refill are dropped; a
// fresh bucket behaves the same.
func NewRateLimiter(rps float64, burst int, clients *ClientIP) *RateLimiter {
	idle := time.Duration(float64(burst) / rps * float64(time.Second))
	l := &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    max(idle, minLimiterIdle),
		clients: clients,
		now:     time.Now,
		buckets: cmap.New[*bucket](),
	}
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

// Allow reports whether the client may make a request now.
func (l *RateLimiter) Allow(client string) bool {
	now := l.now()
	l.maybeSweep(now)

	b := l.buckets.Update(client, func(v *bucket, exists bool) *bucket {
		if exists {
			return v
		}
		return &bucket{lim: rate.NewLimiter(l.rps, l.burst)}
	})
	b.lastSeen.Store(now.UnixNano())
	return b.lim.AllowN(now, 1)
}

// Sweep drops buckets not used since now minus the idle period and
// returns how many were dropped.
func (l *RateLimiter) Sweep(now time.Time) int {
	cutoff := now.Add(-l.idle).UnixNano()
	return l.buckets.DeleteIf(func(_ string, b *bucket) bool {
		return b.lastSeen.Load() < cutoff
	})
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	return l.buckets.Count()
}

// maybeSweep runs Sweep at most once per idle period, on whichever
// request notices first.
func (l *RateLimiter) maybeSweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(l.idle) {
		return
	}
	if l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		l.Sweep(now)
	}
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware() Middleware {
	retryAfter := strconv.Itoa(max(1, int(1/float64(l.rps))))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(l.clients.Resolve(r)) {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, r, http.StatusTooManyRequests, domain.ErrRateLimited.Code, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit limits each client to rps requests per second with the given
// burst. A non-positive rps disables limiting.
func RateLimit(rps float64, burst int, clients *ClientIP) Middleware {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return NewRateLimiter(rps, burst, clients).Middleware()
}
