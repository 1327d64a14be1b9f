package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const MsgTooManyRequests = "Too many requests. Please try again later."

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per remote address. Buckets unused for
// longer than the idle TTL are dropped by Prune.
type ClientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
	buckets map[string]*clientBucket
}

func NewClientLimiter(rps float64, burst int, idleTTL time.Duration) *ClientLimiter {
	return &ClientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
		buckets: make(map[string]*clientBucket),
	}
}

// Allow reports whether the client identified by key may proceed.
func (c *ClientLimiter) Allow(key string) bool {
	c.mu.Lock()
	now := c.now()
	bucket, ok := c.buckets[key]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.buckets[key] = bucket
	}
	bucket.lastSeen = now
	c.mu.Unlock()
	return bucket.limiter.AllowN(now, 1)
}

// Prune drops idle buckets and returns how many were removed.
func (c *ClientLimiter) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, bucket := range c.buckets {
		if now.Sub(bucket.lastSeen) > c.idleTTL {
			delete(c.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (c *ClientLimiter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buckets)
}

// StartPruner runs Prune every interval until ctx is done.
func (c *ClientLimiter) StartPruner(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Prune()
			}
		}
	}()
}

// RateLimitMiddleware rejects requests once the caller's bucket runs dry.
func RateLimitMiddleware(limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				writeFailure(w, http.StatusTooManyRequests, MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
