package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/apierror"

	"github.com/gin-gonic/gin"
)

// ipLimiter is a fixed-window per-IP request counter. One instance guards one
// surface (the login form, the API as a whole). Expired windows reset lazily
// and idle IPs are swept on the same pass, so no background goroutine runs.
type ipLimiter struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	counts    map[string]*ipWindow
	lastSweep time.Time
}

type ipWindow struct {
	hits      int
	windowEnd time.Time
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*ipWindow),
	}
}

// allow counts one hit for ip and reports whether it stays within the limit,
// along with when the current window ends.
func (l *ipLimiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > 10*l.window {
		for key, w := range l.counts {
			if now.After(w.windowEnd) {
				delete(l.counts, key)
			}
		}
		l.lastSweep = now
	}

	w, ok := l.counts[ip]
	if !ok || now.After(w.windowEnd) {
		w = &ipWindow{windowEnd: now.Add(l.window)}
		l.counts[ip] = w
	}
	w.hits++
	return w.hits <= l.limit, w.windowEnd
}

// LoginRateLimiter slows credential guessing: 10 login attempts per minute
// per IP, far above what the login form produces legitimately.
func LoginRateLimiter() gin.HandlerFunc {
	l := newIPLimiter(10, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := l.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Terlalu banyak percobaan login. Coba lagi dalam 1 menit."))
			return
		}
		c.Next()
	}
}

// RateLimiter caps total requests per IP across the whole API surface.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newIPLimiter(limit, window)
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Terlalu banyak permintaan. Coba lagi sebentar lagi."))
			return
		}
		c.Next()
	}
}
