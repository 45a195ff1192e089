package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	rl := NewMessageRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("u1"))
	}
	assert.False(t, rl.Allow("u1"))
}

func TestRateLimiterIsPerUser(t *testing.T) {
	rl := NewMessageRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("u1"))
	assert.False(t, rl.Allow("u1"))
	assert.True(t, rl.Allow("u2"))
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewMessageRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.Allow("u1"))
	assert.False(t, rl.Allow("u1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("u1"))
}
