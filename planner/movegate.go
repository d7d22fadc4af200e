package planner

import (
	"math"
	"sync"
	"time"
)

// Map panning fires an unbounded stream of move events; the gate keeps
// nearby-place searches from hammering the backend. Defaults mirror the
// map view's tuning.
const (
	DefaultDebounce    = 350 * time.Millisecond
	DefaultMinDistance = 25.0 // meters
	DefaultCooldown    = 800 * time.Millisecond
)

// MoveGate suppresses redundant searches triggered by map movement. A
// move passes only if it landed far enough from the last accepted point
// and the cooldown since the last accepted search has elapsed. Debounce
// is the delay callers should wait after the last move event before
// consulting the gate.
type MoveGate struct {
	Debounce    time.Duration
	MinDistance float64
	Cooldown    time.Duration

	mu       sync.Mutex
	hasLast  bool
	lastLat  float64
	lastLon  float64
	lastTime time.Time
}

func NewMoveGate() *MoveGate {
	return &MoveGate{
		Debounce:    DefaultDebounce,
		MinDistance: DefaultMinDistance,
		Cooldown:    DefaultCooldown,
	}
}

// Allow reports whether a search at (lat, lon) should proceed, and if so
// records it as the new reference point.
func (g *MoveGate) Allow(lat, lon float64, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hasLast {
		if now.Sub(g.lastTime) < g.Cooldown {
			return false
		}
		if HaversineM(g.lastLat, g.lastLon, lat, lon) < g.MinDistance {
			return false
		}
	}
	g.hasLast = true
	g.lastLat, g.lastLon = lat, lon
	g.lastTime = now
	return true
}

// Reset forgets the last accepted point, so the next move always passes.
func (g *MoveGate) Reset() {
	g.mu.Lock()
	g.hasLast = false
	g.mu.Unlock()
}

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusM = 6371000.0
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(a))
}
