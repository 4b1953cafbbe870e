package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) *FixedWindowLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewFixedWindowLimiter(New(mr.Addr(), "", 0))
}

func TestAllowFixedWindow_WithinCapacity(t *testing.T) {
	l := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := l.AllowFixedWindow(ctx, "rl:login:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d should pass", i+1)
	}

	d, err := l.AllowFixedWindow(ctx, "rl:login:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
}

func TestAllowFixedWindow_KeysIsolated(t *testing.T) {
	l := newTestLimiter(t)
	ctx := context.Background()

	d, err := l.AllowFixedWindow(ctx, "rl:login:a", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.AllowFixedWindow(ctx, "rl:login:a", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	// Different principal, fresh window.
	d, err = l.AllowFixedWindow(ctx, "rl:login:b", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestAllowFixedWindow_NilClient_FailOpen(t *testing.T) {
	l := NewFixedWindowLimiter(nil)

	d, err := l.AllowFixedWindow(context.Background(), "rl:x", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.AllowFixedWindow(context.Background(), "rl:x", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestAllowFixedWindow_ZeroLimit_Disabled(t *testing.T) {
	l := newTestLimiter(t)

	d, err := l.AllowFixedWindow(context.Background(), "rl:x", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
