// Package ratelimit implements a fixed-window request counter keyed by client
// identifier. State lives in process memory only; it is lost on restart and is not
// shared between replicas.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Policy is the number of requests admitted per identifier within one window.
type Policy struct {
	Limit  int
	Window time.Duration
}

func (p Policy) String() string {
	return fmt.Sprintf("%d per %s", p.Limit, p.Window)
}

// Result is the outcome of a single Check.
type Result struct {
	Success   bool
	Remaining int
	ResetTime time.Time
}

// RetryAfter returns the whole seconds until the window resets, rounded up.
func (r Result) RetryAfter(now time.Time) int {
	d := r.ResetTime.Sub(now)
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

type entry struct {
	count     int
	resetTime time.Time
}

// Limiter holds at most one entry per identifier. All access goes through mu so the
// check-and-update of a request and the background sweep never interleave.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// NewLimiter creates an empty limiter.
func NewLimiter(opts ...Option) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the limiter's current time.
func (l *Limiter) Now() time.Time {
	return l.now()
}

// Check counts one request for identifier against policy.
func (l *Limiter) Check(identifier string, policy Policy) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok || !now.Before(e.resetTime) {
		e = &entry{count: 1, resetTime: now.Add(policy.Window)}
		l.entries[identifier] = e
		return Result{
			Success:   true,
			Remaining: max(policy.Limit-1, 0),
			ResetTime: e.resetTime,
		}
	}

	if e.count < policy.Limit {
		e.count++
		return Result{
			Success:   true,
			Remaining: policy.Limit - e.count,
			ResetTime: e.resetTime,
		}
	}

	return Result{
		Success:   false,
		Remaining: 0,
		ResetTime: e.resetTime,
	}
}

// Reset drops the entry for identifier unconditionally.
func (l *Limiter) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, identifier)
}

// Sweep removes every entry whose window has already ended and returns how many
// were removed. It only reclaims memory; Check resets expired entries on its own.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, e := range l.entries {
		if !now.Before(e.resetTime) {
			delete(l.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked identifiers.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Count returns the request count recorded for identifier in its current entry.
func (l *Limiter) Count(identifier string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[identifier]; ok {
		return e.count
	}
	return 0
}
