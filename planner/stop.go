// Package planner holds the in-memory day-itinerary model: stops, the
// timetable projection, editor operations and the optimizer adapter.
// Everything here is pure; persistence and transport live elsewhere.
package planner

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Stop is one visited place within a single day.
type Stop struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Tags        string  `json:"tags,omitempty"`
	DurationMin int     `json:"durationMin"`
	IsLodging   bool    `json:"isLodging"`
}

// DayItinerary is the ordered stop sequence for one trip day. Editor
// operations never mutate it in place; each returns a fresh value with
// Version bumped, so concurrent readers always see a consistent snapshot
// and async results can be checked for staleness.
type DayItinerary struct {
	DayIndex int    `json:"dayIndex"`
	Stops    []Stop `json:"stops"`
	DayStart int    `json:"dayStart"` // minutes of day
	DayEnd   int    `json:"dayEnd"`
	Version  int64  `json:"version"`
}

// ValidCoords reports whether lat/lon are finite and inside WGS84 ranges.
func ValidCoords(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// CoordsFrom extracts a coordinate pair from a loosely-typed place record.
// Upstream sources disagree on field names (lat/lon, lat/lng, x/y), so we
// normalize here and never let the ambiguity past this boundary.
func CoordsFrom(raw map[string]any) (lat, lon float64, ok bool) {
	lat, latOK := numField(raw, "lat", "y")
	lon, lonOK := numField(raw, "lon", "lng", "x")
	if !latOK || !lonOK || !ValidCoords(lat, lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

func numField(raw map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, present := raw[k]
		if !present {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// DayCount derives how many day itineraries a trip spans from its inclusive
// date range. A malformed or missing pair yields 1 so planning can always
// begin with at least one empty day.
func DayCount(startDate, endDate string) int {
	start, err1 := time.Parse("2006-01-02", startDate)
	end, err2 := time.Parse("2006-01-02", endDate)
	if err1 != nil || err2 != nil {
		return 1
	}
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// ParseHHMM converts "HH:MM" into minutes of day. Returns fallback for
// anything it cannot parse.
func ParseHHMM(s string, fallback int) int {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return fallback
	}
	return t.Hour()*60 + t.Minute()
}

// FormatHHMM renders minutes of day as "HH:MM". Values past midnight wrap.
func FormatHHMM(min int) string {
	if min < 0 {
		min = 0
	}
	return fmt.Sprintf("%02d:%02d", (min/60)%24, min%60)
}
