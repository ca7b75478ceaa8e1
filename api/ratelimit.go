package api

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bgpaten/ahyarpattani/errs"
)

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

// ipRateLimiter applies a token bucket per client IP. Entries idle for
// longer than idleTTL are dropped on the next request after a sweep is due.
type ipRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*limiterEntry
	limit     rate.Limit
	interval  time.Duration
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	responder Responder
}

func newIPRateLimiter(perMinute, burst int, responder Responder) *ipRateLimiter {
	limit, interval := rate.Inf, time.Duration(0)
	if perMinute > 0 {
		interval = time.Minute / time.Duration(perMinute)
		limit = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}
	return &ipRateLimiter{
		visitors:  map[string]*limiterEntry{},
		limit:     limit,
		interval:  interval,
		burst:     burst,
		idleTTL:   10 * time.Minute,
		lastSweep: time.Now(),
		responder: responder,
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (l *ipRateLimiter) allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.idleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.last) > l.idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	le, ok := l.visitors[ip]
	if !ok {
		le = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = le
	}
	le.last = now
	return le.limiter.Allow()
}

// retryAfter is the time one token takes to refill.
func (l *ipRateLimiter) retryAfter() time.Duration {
	if l.interval <= 0 {
		return time.Second
	}
	return l.interval
}

func (l *ipRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			retryAfter := l.retryAfter()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			l.responder.WriteError(w, errs.NewRateLimitError("contact", retryAfter))
			return
		}
		next.ServeHTTP(w, r)
	})
}
