package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterBlocksAfterLimit(t *testing.T) {
	l := NewLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "attempt %d should pass", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"))

	// başka IP etkilenmez
	assert.True(t, l.Allow("5.6.7.8"))
}

func TestLimiterWindowSlides(t *testing.T) {
	l := NewLimiter(1, 50*time.Millisecond)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, l.Allow("1.2.3.4"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	assert.Equal(t, "10.0.0.1", ClientIP(req))

	// port'suz adres olduğu gibi döner
	req.RemoteAddr = "10.0.0.2"
	assert.Equal(t, "10.0.0.2", ClientIP(req))
}
