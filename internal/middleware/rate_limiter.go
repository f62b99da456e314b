package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/table-booking/internal/httperr"
)

// Limiters idle this long are dropped on the next sweep.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters holds one token bucket per client IP.
type ipLimiters struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiters(perMinute int) *ipLimiters {
	return &ipLimiters{
		visitors: make(map[string]*visitor),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idleTTL:  limiterIdleTTL,
		now:      time.Now,
	}
}

func (s *ipLimiters) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idleTTL {
		s.sweep(now)
	}

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.every, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep drops visitors idle for idleTTL. Caller holds mu.
func (s *ipLimiters) sweep(now time.Time) {
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) >= s.idleTTL {
			delete(s.visitors, ip)
		}
	}
	s.lastSweep = now
}

// RateLimit allows perMinute requests per client IP, all of them usable as a
// burst. perMinute <= 0 disables the limit.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	store := newIPLimiters(perMinute)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.allow(ip) {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			httperr.TooManyRequests(c, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
			return
		}
		c.Next()
	}
}
