package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter guards the expensive endpoints (report rendering, PDF merge).
// A client that exceeds its budget is blocked for blockTime.
type RateLimiter struct {
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewRateLimiter(requests int, per, blockTime time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		log:       logger,
		now:       time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		r.mu.Lock()

		if blockedUntil, found := r.blocked[ip]; found {
			if r.now().Before(blockedUntil) {
				r.mu.Unlock()
				utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(fmt.Errorf("%s blocked until %s", ip, blockedUntil.Format(time.RFC3339))))
				return
			}

			delete(r.blocked, ip)
			delete(r.limiters, ip)
		}

		limiter, exists := r.limiters[ip]
		if !exists {
			limiter = rate.NewLimiter(rate.Every(r.per/time.Duration(max(r.requests, 1))), r.requests)
			r.limiters[ip] = limiter
		}

		if !limiter.AllowN(r.now(), 1) {
			r.blocked[ip] = r.now().Add(r.blockTime)
			r.mu.Unlock()
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(fmt.Errorf("%s exceeded %d requests per %s", ip, r.requests, r.per)))
			return
		}

		r.mu.Unlock()
		next.ServeHTTP(w, req)
	})
}
