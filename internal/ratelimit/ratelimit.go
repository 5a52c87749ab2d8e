// Package ratelimit implements a fixed-window request counter keyed by an
// arbitrary string (typically client IP). Counters hard-reset when their
// window elapses; a background sweep drops expired entries so the map does
// not grow without bound.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	ttl   time.Duration
	count int
}

type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	// now is swapped out in tests.
	now func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records one call for key and reports whether it fits within limit
// calls per windowSize. The first call after the window elapses starts a
// fresh window.
func (l *Limiter) Allow(key string, limit int, windowSize time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= w.ttl {
		l.windows[key] = &window{start: now, ttl: windowSize, count: 1}
		return limit >= 1
	}

	w.count++
	return w.count <= limit
}

// StartSweep launches a goroutine that periodically clears expired windows.
// The returned stop function terminates it.
func (l *Limiter) StartSweep(interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
	return func() { close(done) }
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.windows {
		if now.Sub(w.start) >= w.ttl {
			delete(l.windows, key)
		}
	}
}
