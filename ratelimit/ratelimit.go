// Package ratelimit provides the admission contract the service boundary
// consults before starting a convergence session, plus a keyed windowed
// limiter backed by golang.org/x/time/rate.
//
// Admission is deliberately a capability injected from outside: the
// convergence loop itself never throttles, it only burns the budget its
// caller granted.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rickchristie/duet"
)

// Admitter decides whether a client may start another session.
// Implementations must be safe for concurrent use.
type Admitter interface {
	// Admit reports whether the client identified by clientKey may
	// proceed right now. A false return is a deny, not a wait.
	Admit(clientKey string) bool
}

// AllowAll admits every request. It is the admission policy to use when
// no throttling applies.
type AllowAll struct{}

// Admit always returns true.
func (AllowAll) Admit(string) bool { return true }

// KeyedLimiter admits up to requests calls per window for each distinct
// client key. A key never seen before starts with a full allowance, and
// spent allowance refills gradually over the window rather than all at
// once at a boundary. Non-positive requests or window deny everything.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	clock    duet.Clock
}

// NewKeyedLimiter creates a KeyedLimiter allowing requests calls per
// window per client key.
func NewKeyedLimiter(requests int, window time.Duration) *KeyedLimiter {
	limit := rate.Limit(0)
	burst := 0
	if requests > 0 && window > 0 {
		limit = rate.Every(window / time.Duration(requests))
		burst = requests
	}
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
		clock:    duet.RealClock{},
	}
}

// WithClock replaces the limiter's time source. Tests use this to move
// through the window without sleeping. Passing nil keeps the current
// clock.
func (l *KeyedLimiter) WithClock(clock duet.Clock) *KeyedLimiter {
	if clock != nil {
		l.clock = clock
	}
	return l
}

// Admit spends one unit of clientKey's allowance if any remains.
func (l *KeyedLimiter) Admit(clientKey string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[clientKey]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[clientKey] = lim
	}
	l.mu.Unlock()

	return lim.AllowN(l.clock.Now(), 1)
}

var (
	_ Admitter = (*KeyedLimiter)(nil)
	_ Admitter = AllowAll{}
)
