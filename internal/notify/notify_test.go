package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageFormatters(t *testing.T) {
	assert.Contains(t, RestartMessage("abc", 42), "abc")
	assert.Contains(t, RestartMessage("abc", 42), "42")
	assert.Contains(t, CompleteMessage("abc", 1.2345), "1.2345")
}

func TestMockNotifierNeverErrors(t *testing.T) {
	n := NewMockNotifier()
	assert.NoError(t, n.Notify("test"))
}

func TestRateLimiterBlocksAfterThreshold(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	assert.NoError(t, rl.allow("key"))
	assert.NoError(t, rl.allow("key"))
	assert.Error(t, rl.allow("key"))
}

func TestBreakerOpensAfterThresholdAndRecoversAfterTimeout(t *testing.T) {
	b := newBreaker(2, 10*time.Millisecond)
	assert.True(t, b.allow())

	b.recordFailure()
	assert.True(t, b.allow())
	b.recordFailure()
	assert.False(t, b.allow(), "should open after reaching the failure threshold")

	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.allow(), "should close again after the timeout elapses")
}

func TestNormalizePhoneNumber(t *testing.T) {
	got, err := normalizePhoneNumber("(555) 123-4567")
	assert.NoError(t, err)
	assert.Equal(t, "+15551234567", got)

	_, err = normalizePhoneNumber("not-a-number")
	assert.Error(t, err)
}
