package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoveGateFirstMoveAlwaysPasses(t *testing.T) {
	g := NewMoveGate()
	assert.True(t, g.Allow(37.5, 127.0, time.Now()))
}

func TestMoveGateCooldown(t *testing.T) {
	g := NewMoveGate()
	now := time.Now()
	assert.True(t, g.Allow(37.5, 127.0, now))
	// far away but too soon
	assert.False(t, g.Allow(38.0, 128.0, now.Add(200*time.Millisecond)))
	assert.True(t, g.Allow(38.0, 128.0, now.Add(time.Second)))
}

func TestMoveGateMinDistance(t *testing.T) {
	g := NewMoveGate()
	now := time.Now()
	assert.True(t, g.Allow(37.5, 127.0, now))
	// ~11m of latitude, under the 25m threshold
	assert.False(t, g.Allow(37.5001, 127.0, now.Add(2*time.Second)))
	// ~110m, passes
	assert.True(t, g.Allow(37.501, 127.0, now.Add(4*time.Second)))
}

func TestMoveGateReset(t *testing.T) {
	g := NewMoveGate()
	now := time.Now()
	assert.True(t, g.Allow(37.5, 127.0, now))
	g.Reset()
	assert.True(t, g.Allow(37.5, 127.0, now.Add(time.Millisecond)))
}

func TestHaversine(t *testing.T) {
	// Seoul City Hall to Gwanghwamun, roughly 1.1km
	d := HaversineM(37.5663, 126.9779, 37.5759, 126.9768)
	assert.InDelta(t, 1070, d, 100)
	assert.Zero(t, HaversineM(37.5, 127.0, 37.5, 127.0))
}
