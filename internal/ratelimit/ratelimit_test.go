package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowEnforcesBurst(t *testing.T) {
	l := NewInMemoryLimiter(1, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// Other callers have their own bucket.
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestPruneDropsIdleBuckets(t *testing.T) {
	l := NewInMemoryLimiter(1, 1)

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")

	l.mu.Lock()
	l.clients["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	removed := l.Prune(30 * time.Minute)
	assert.Equal(t, 1, removed)

	l.mu.Lock()
	_, ok := l.clients["10.0.0.1"]
	l.mu.Unlock()
	assert.False(t, ok)
}
