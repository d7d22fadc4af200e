package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayCount(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2026-05-01", "2026-05-03", 3},
		{"2026-05-01", "2026-05-01", 1},
		{"2026-05-03", "2026-05-01", 1}, // reversed range defaults to 1
		{"", "2026-05-03", 1},
		{"not-a-date", "2026-05-03", 1},
		{"2026-05-01", "", 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DayCount(c.start, c.end), "start=%q end=%q", c.start, c.end)
	}
}

func TestCoordsFromFieldVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		lat  float64
		lon  float64
		ok   bool
	}{
		{"lat/lon", map[string]any{"lat": 37.5, "lon": 127.0}, 37.5, 127.0, true},
		{"lat/lng", map[string]any{"lat": 37.5, "lng": 127.0}, 37.5, 127.0, true},
		{"x/y", map[string]any{"x": 127.0, "y": 37.5}, 37.5, 127.0, true},
		{"string values", map[string]any{"lat": "37.5", "lon": "127.0"}, 37.5, 127.0, true},
		{"missing", map[string]any{"name": "somewhere"}, 0, 0, false},
		{"out of range", map[string]any{"lat": 95.0, "lon": 127.0}, 0, 0, false},
		{"unparseable", map[string]any{"lat": "north", "lon": "east"}, 0, 0, false},
	}
	for _, c := range cases {
		lat, lon, ok := CoordsFrom(c.raw)
		assert.Equal(t, c.ok, ok, c.name)
		if c.ok {
			assert.Equal(t, c.lat, lat, c.name)
			assert.Equal(t, c.lon, lon, c.name)
		}
	}
}

func TestParseAndFormatHHMM(t *testing.T) {
	assert.Equal(t, 9*60, ParseHHMM("09:00", 0))
	assert.Equal(t, 18*60+30, ParseHHMM("18:30", 0))
	assert.Equal(t, 540, ParseHHMM("garbage", 540))
	assert.Equal(t, "09:05", FormatHHMM(545))
	assert.Equal(t, "00:00", FormatHHMM(-10))
	assert.Equal(t, "01:00", FormatHHMM(25*60)) // past midnight wraps
}
