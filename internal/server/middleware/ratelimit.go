package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

// IPRateLimiter — token bucket на каждый IP клиента.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter создаёт лимитер: rps запросов в секунду с запасом burst.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow сообщает, можно ли пропустить запрос с этого IP.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	il, ok := l.limiters[ip]
	if !ok {
		il = &ipLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = il
	}
	il.lastSeen = now
	return il.limiter.AllowN(now, 1)
}

// Cleanup удаляет лимитеры IP, не появлявшихся дольше idleTTL.
func (l *IPRateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for ip, il := range l.limiters {
		if now.Sub(il.lastSeen) > l.idleTTL {
			delete(l.limiters, ip)
			removed++
		}
	}
	return removed
}

// Middleware отвечает 429, когда IP исчерпал лимит.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			rateLimitRejects.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(1))
			writeJSONError(w, http.StatusTooManyRequests, serr.ErrRateLimited.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP — IP из RemoteAddr. При server.trust_proxy его заранее подменяет chi RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
