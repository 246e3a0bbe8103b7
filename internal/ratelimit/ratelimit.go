package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting inbound callers.
type Limiter interface {
	Allow(key string) bool
	Prune(maxIdle time.Duration) int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// InMemoryLimiter keeps a token bucket per caller key (remote IP).
type InMemoryLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

var _ Limiter = (*InMemoryLimiter)(nil)

func NewInMemoryLimiter(r rate.Limit, b int) *InMemoryLimiter {
	return &InMemoryLimiter{
		clients: make(map[string]*clientLimiter),
		r:       r,
		b:       b,
	}
}

func (l *InMemoryLimiter) getLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// Allow reports whether the caller identified by key may proceed.
func (l *InMemoryLimiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

// Prune drops buckets idle for longer than maxIdle and returns how many
// were removed.
func (l *InMemoryLimiter) Prune(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for key, cl := range l.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}
