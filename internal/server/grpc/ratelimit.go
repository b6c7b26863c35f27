package grpc

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter hands out a token bucket per client key (the peer IP).
// Each bucket holds attempts tokens and refills fully over window.
// Buckets idle for longer than window are dropped.
type LoginLimiter struct {
	mu        sync.Mutex
	attempts  int
	window    time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLoginLimiter(attempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts: attempts,
		window:   window,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// Allow consumes one attempt for key and reports whether it was available.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		every := l.window / time.Duration(l.attempts)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), l.attempts)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *LoginLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.window {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}

func (l *LoginLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
