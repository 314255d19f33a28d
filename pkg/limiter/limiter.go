package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitors struct {
	mu    sync.Mutex
	items map[string]*visitor
	rps   rate.Limit
	burst int
	ttl   time.Duration
}

func newVisitors(rps int, burst int, ttl time.Duration) *visitors {
	return &visitors{
		items: make(map[string]*visitor),
		rps:   rate.Limit(rps),
		burst: burst,
		ttl:   ttl,
	}
}

func (v *visitors) get(ip string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	item, ok := v.items[ip]
	if !ok {
		item = &visitor{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.items[ip] = item
	}
	item.lastSeen = now

	return item.limiter
}

func (v *visitors) cleanup(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for ip, item := range v.items {
		if now.Sub(item.lastSeen) > v.ttl {
			delete(v.items, ip)
		}
	}
}

// Limit is a per client IP token bucket. Idle buckets are dropped after ttl.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	v := newVisitors(rps, burst, ttl)

	go func() {
		for now := range time.Tick(ttl) {
			v.cleanup(now)
		}
	}()

	return func(c *gin.Context) {
		if !v.get(c.ClientIP(), time.Now()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
