package anim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleConverges(t *testing.T) {
	s := NewSettle(DefaultFPS, DefaultFrequency, DefaultDamping)
	require.True(t, s.Start(-120))
	assert.True(t, s.Active())

	prev := math.Abs(s.Value())
	for i := 0; i < 600; i++ {
		v, done := s.Step()
		if done {
			assert.Zero(t, v)
			assert.False(t, s.Active())
			return
		}
		// Critically damped: no overshoot past zero.
		assert.LessOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, math.Abs(v), prev+1e-9)
		prev = math.Abs(v)
	}
	t.Fatal("spring did not settle within 10 seconds of frames")
}

func TestSettleZeroDoesNotStart(t *testing.T) {
	s := NewSettle(0, DefaultFrequency, DefaultDamping)
	assert.Equal(t, time.Second/DefaultFPS, s.Frame())
	assert.False(t, s.Start(0.1))
	v, done := s.Step()
	assert.True(t, done)
	assert.Zero(t, v)
}

func TestSettleStop(t *testing.T) {
	s := NewSettle(30, DefaultFrequency, DefaultDamping)
	s.Start(50)
	s.Step()
	s.Stop()
	assert.False(t, s.Active())
	assert.Zero(t, s.Value())
}
