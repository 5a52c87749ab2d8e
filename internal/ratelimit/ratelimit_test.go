package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowWithinWindow(t *testing.T) {
	l := NewLimiter()

	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("1.2.3.4", 5, time.Minute), "call %d should fit", i+1)
	}
	require.False(t, l.Allow("1.2.3.4", 5, time.Minute))
}

func TestLimiter_WindowReset(t *testing.T) {
	now := time.Now()
	l := NewLimiter()
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("1.2.3.4", 2, time.Minute))
	require.True(t, l.Allow("1.2.3.4", 2, time.Minute))
	require.False(t, l.Allow("1.2.3.4", 2, time.Minute))

	// A fresh window starts the count over.
	now = now.Add(time.Minute)
	require.True(t, l.Allow("1.2.3.4", 2, time.Minute))
	require.True(t, l.Allow("1.2.3.4", 2, time.Minute))
	require.False(t, l.Allow("1.2.3.4", 2, time.Minute))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter()

	require.True(t, l.Allow("1.2.3.4", 1, time.Minute))
	require.False(t, l.Allow("1.2.3.4", 1, time.Minute))
	require.True(t, l.Allow("5.6.7.8", 1, time.Minute))
}

func TestLimiter_SweepDropsExpiredWindows(t *testing.T) {
	now := time.Now()
	l := NewLimiter()
	l.now = func() time.Time { return now }

	l.Allow("old", 1, time.Second)
	l.Allow("fresh", 1, time.Hour)

	now = now.Add(time.Minute)
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotContains(t, l.windows, "old")
	require.Contains(t, l.windows, "fresh")
}
