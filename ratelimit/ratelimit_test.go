package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rickchristie/duet"
)

func frozenClock() *duet.MockClock {
	return duet.NewMockClock(time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC))
}

func TestAllowAll(t *testing.T) {
	var adm Admitter = AllowAll{}
	assert.True(t, adm.Admit("anyone"))
	assert.True(t, adm.Admit(""))
}

func TestKeyedLimiter_SpendsAndDeniesWithinWindow(t *testing.T) {
	lim := NewKeyedLimiter(2, time.Minute).WithClock(frozenClock())

	assert.True(t, lim.Admit("client-a"))
	assert.True(t, lim.Admit("client-a"))
	assert.False(t, lim.Admit("client-a"), "third call inside the window must be denied")
}

func TestKeyedLimiter_KeysAreIndependent(t *testing.T) {
	lim := NewKeyedLimiter(1, time.Minute).WithClock(frozenClock())

	assert.True(t, lim.Admit("client-a"))
	assert.False(t, lim.Admit("client-a"))
	assert.True(t, lim.Admit("client-b"), "exhausting one key must not affect another")
}

func TestKeyedLimiter_WindowRefillsAllowance(t *testing.T) {
	clock := frozenClock()
	lim := NewKeyedLimiter(2, time.Minute).WithClock(clock)

	assert.True(t, lim.Admit("client-a"))
	assert.True(t, lim.Admit("client-a"))
	assert.False(t, lim.Admit("client-a"))

	clock.Advance(time.Minute)

	assert.True(t, lim.Admit("client-a"))
	assert.True(t, lim.Admit("client-a"))
	assert.False(t, lim.Admit("client-a"))
}

func TestKeyedLimiter_RefillIsGradual(t *testing.T) {
	clock := frozenClock()
	lim := NewKeyedLimiter(2, time.Minute).WithClock(clock)

	assert.True(t, lim.Admit("client-a"))
	assert.True(t, lim.Admit("client-a"))

	// Half a window restores half the allowance.
	clock.Advance(30 * time.Second)

	assert.True(t, lim.Admit("client-a"))
	assert.False(t, lim.Admit("client-a"))
}

func TestKeyedLimiter_MisconfiguredDeniesEverything(t *testing.T) {
	assert.False(t, NewKeyedLimiter(0, time.Minute).Admit("client-a"))
	assert.False(t, NewKeyedLimiter(-1, time.Minute).Admit("client-a"))
	assert.False(t, NewKeyedLimiter(5, 0).Admit("client-a"))
}

func TestKeyedLimiter_ConcurrentKeys(t *testing.T) {
	lim := NewKeyedLimiter(1, time.Minute).WithClock(frozenClock())

	var wg sync.WaitGroup
	results := make([]bool, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = lim.Admit(fmt.Sprintf("client-%d", i))
		}(i)
	}
	wg.Wait()

	for i, admitted := range results {
		assert.True(t, admitted, "client-%d should have a fresh allowance", i)
	}
}
