// Package ratelimit tracks per-provider call budgets over daily or monthly
// windows. Counters are shared by every concurrent search, so all state is
// guarded by a mutex.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"github.com/joblens/aggregator/internal/domain"
)

// Window is the reset cadence of a provider budget.
type Window string

const (
	// WindowDaily resets at local midnight.
	WindowDaily Window = "daily"
	// WindowMonthly resets at the first moment of the next calendar month.
	WindowMonthly Window = "monthly"
)

type quota struct {
	window  Window
	limit   int
	count   int
	resetAt time.Time
}

// Limiter gates outbound provider calls. Unknown providers are treated as
// unlimited: CanCall returns true and Remaining reports the maximum int.
type Limiter struct {
	mu        sync.Mutex
	providers map[string]*quota

	// now is swappable for tests.
	now func() time.Time
}

// NewLimiter creates an empty limiter. Providers gain budgets via Register.
func NewLimiter() *Limiter {
	return &Limiter{
		providers: make(map[string]*quota),
		now:       time.Now,
	}
}

// Register sets the budget for a provider. Registering twice replaces the
// previous budget and restarts its window.
func (l *Limiter) Register(provider string, window Window, limit int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.providers[provider] = &quota{
		window:  window,
		limit:   limit,
		resetAt: nextReset(window, now),
	}
}

// CanCall reports whether the provider is under its budget. An expired
// window is lazily reset before the comparison.
func (l *Limiter) CanCall(provider string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	q, ok := l.providers[provider]
	if !ok {
		return true
	}
	l.resetIfExpired(q)
	return q.count < q.limit
}

// RecordCall counts one outbound call attempt. Callers must invoke it only
// after actually attempting the call, never speculatively.
func (l *Limiter) RecordCall(provider string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	q, ok := l.providers[provider]
	if !ok {
		return
	}
	l.resetIfExpired(q)
	q.count++
}

// Remaining returns how many calls are left in the current window.
func (l *Limiter) Remaining(provider string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	q, ok := l.providers[provider]
	if !ok {
		return math.MaxInt
	}
	l.resetIfExpired(q)
	if rem := q.limit - q.count; rem > 0 {
		return rem
	}
	return 0
}

// Sweep proactively resets every expired window so Remaining reflects
// reality without a triggering call. Intended to run on a periodic tick.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, q := range l.providers {
		l.resetIfExpired(q)
	}
}

// Snapshot returns the current state of every registered budget.
func (l *Limiter) Snapshot() map[string]domain.QuotaStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]domain.QuotaStats, len(l.providers))
	for name, q := range l.providers {
		l.resetIfExpired(q)
		rem := q.limit - q.count
		if rem < 0 {
			rem = 0
		}
		out[name] = domain.QuotaStats{
			Window:    string(q.window),
			Limit:     q.limit,
			Used:      q.count,
			Remaining: rem,
			ResetAt:   q.resetAt,
		}
	}
	return out
}

// resetIfExpired must be called with the mutex held.
func (l *Limiter) resetIfExpired(q *quota) {
	now := l.now()
	if now.After(q.resetAt) {
		q.count = 0
		q.resetAt = nextReset(q.window, now)
	}
}

func nextReset(window Window, now time.Time) time.Time {
	switch window {
	case WindowMonthly:
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return firstOfMonth.AddDate(0, 1, 0)
	default:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return midnight.AddDate(0, 0, 1)
	}
}
