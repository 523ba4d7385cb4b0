package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	t.Parallel()
	b := Backoff{Min: time.Second, Max: 5 * time.Second, K: 2}
	assert.Equal(t, time.Second, b.Update(false))
	assert.Equal(t, 2*time.Second, b.Update(false))
	assert.Equal(t, 4*time.Second, b.Update(false))
	assert.Equal(t, 5*time.Second, b.Update(false))
	assert.Equal(t, 5*time.Second, b.Update(false))
	assert.Equal(t, time.Duration(0), b.Update(true))
	assert.Equal(t, time.Second, b.Update(false))
}

func TestBackoffRound(t *testing.T) {
	t.Parallel()
	b := Backoff{Min: 1500 * time.Microsecond, K: 1.5, Res: time.Millisecond}
	assert.Equal(t, time.Millisecond, b.Failure())
	b = Backoff{Min: 10 * time.Millisecond}
	// K<1 means constant delay
	assert.Equal(t, 10*time.Millisecond, b.Failure())
	assert.Equal(t, 10*time.Millisecond, b.Failure())
}
