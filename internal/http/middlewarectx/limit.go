package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/cirec-website/internal/http/response"
)

// ClientLimiter выдает отдельный token bucket на каждый IP клиента.
// Корзины, которые простаивали дольше времени полного восстановления,
// удаляются: новая корзина для того же клиента ведет себя так же.
type ClientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	clients   map[string]*clientBucket
	lastSweep time.Time
	now       func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter создает лимитер с частотой limit запросов в секунду и запасом burst.
// При limit <= 0 корзины не удаляются.
func NewClientLimiter(limit rate.Limit, burst int) *ClientLimiter {
	var idle time.Duration
	if limit > 0 && limit != rate.Inf {
		idle = time.Duration(float64(burst) / float64(limit) * float64(time.Second))
	}
	return &ClientLimiter{
		limit:     limit,
		burst:     burst,
		idleAfter: idle,
		clients:   make(map[string]*clientBucket),
		now:       time.Now,
	}
}

// Allow сообщает, можно ли обслужить очередной запрос клиента key.
func (l *ClientLimiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	l.sweep(now)
	c, ok := l.clients[key]
	if !ok {
		c = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()
	return c.limiter.AllowN(now, 1)
}

// sweep удаляет простаивающие корзины не чаще раза за idleAfter. Вызывается под mu.
func (l *ClientLimiter) sweep(now time.Time) {
	if l.idleAfter <= 0 || now.Sub(l.lastSweep) < l.idleAfter {
		return
	}
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.idleAfter {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit отвечает 429, когда клиент исчерпал свой лимит.
func RateLimit(limiter *ClientLimiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				log.Warn("too many requests",
					slog.String("op", "middlewarectx.RateLimit"),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("client", clientIP(r)),
				)
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
