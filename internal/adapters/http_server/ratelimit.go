package httpserver

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultMaxBuckets = 10_000

// IPLimiter hands out one token bucket per client IP. Buckets idle for
// longer than idleTTL are dropped on the next sweep. Once maxBuckets IPs
// are tracked, unseen IPs share a single overflow bucket.
type IPLimiter struct {
	mu         sync.Mutex
	rps        rate.Limit
	burst      int
	idleTTL    time.Duration
	maxBuckets int
	buckets    map[string]*bucket
	overflow   *rate.Limiter
	swept      time.Time
	now        func() time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewIPLimiter(rps, burst int) *IPLimiter {
	if burst <= 0 {
		burst = rps
	}
	return &IPLimiter{
		rps:        rate.Limit(rps),
		burst:      burst,
		idleTTL:    5 * time.Minute,
		maxBuckets: defaultMaxBuckets,
		buckets:    make(map[string]*bucket),
		overflow:   rate.NewLimiter(rate.Limit(rps), burst),
		now:        time.Now,
	}
}

func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.swept) > l.idleTTL {
		l.sweep(now)
	}
	b, ok := l.buckets[ip]
	if !ok {
		if len(l.buckets) >= l.maxBuckets {
			return l.overflow.AllowN(now, 1)
		}
		b = &bucket{lim: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

func (l *IPLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.idleTTL {
			delete(l.buckets, k)
		}
	}
	l.swept = now
}

func (l *IPLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// connIP is the host part of r.RemoteAddr. Forwarding headers only reach
// it through chimw.RealIP, which the server mounts for trusted proxies.
func connIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// RateLimit rejects requests over the caller's budget with 429 problem+json.
func RateLimit(l *IPLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(connIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(1))
				writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded, retry later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
