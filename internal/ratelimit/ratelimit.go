// Package ratelimit throttles repeated login attempts. The original system
// had no lockout at all; this is the explicit hardening addition, a token
// bucket per username+source pair.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	pruneThreshold = 1024
	idleEviction   = time.Hour
)

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	now     func() time.Time
}

// New builds a limiter allowing attemptsPerMinute sustained tries with the
// given burst per key.
func New(attemptsPerMinute, burst int) *Limiter {
	if attemptsPerMinute < 1 {
		attemptsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Every(time.Minute / time.Duration(attemptsPerMinute)),
		burst:   burst,
		now:     time.Now,
	}
}

// Key builds the throttle key from the submitted username and source IP, so
// an attacker rotating usernames does not lock out a single account and one
// locked-out source does not affect others.
func Key(username, ip string) string {
	return username + "|" + ip
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= pruneThreshold {
			l.prune()
		}
		b = &bucket{lim: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = l.now()
	return b.lim.Allow()
}

// prune drops buckets idle long enough to have fully refilled. Caller holds
// the mutex.
func (l *Limiter) prune() {
	cutoff := l.now().Add(-idleEviction)
	for k, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, k)
		}
	}
}
