package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimetableNoTravel(t *testing.T) {
	stops := []Stop{
		{ID: "a", Name: "A", Lat: 37.5, Lon: 127.0, DurationMin: 60},
		{ID: "b", Name: "B", Lat: 37.6, Lon: 127.1, DurationMin: 90},
	}
	entries := BuildTimetable(stops, ParseHHMM("09:00", 0), ParseHHMM("19:00", 0), nil)
	require.Len(t, entries, 2)
	assert.Equal(t, "09:00", FormatHHMM(entries[0].Arrive))
	assert.Equal(t, "10:00", FormatHHMM(entries[0].Depart))
	assert.Equal(t, "10:00", FormatHHMM(entries[1].Arrive))
	assert.Equal(t, "11:30", FormatHHMM(entries[1].Depart))
}

func TestBuildTimetableWithTravelLeg(t *testing.T) {
	stops := []Stop{
		{ID: "a", DurationMin: 60},
		{ID: "b", DurationMin: 90},
	}
	travel := TravelTable{{From: "a", To: "b"}: 20}
	entries := BuildTimetable(stops, 9*60, 19*60, travel)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].TravelMinFromPrev)
	assert.Equal(t, 20, entries[1].TravelMinFromPrev)
	assert.Equal(t, "10:20", FormatHHMM(entries[1].Arrive))
	assert.Equal(t, "11:50", FormatHHMM(entries[1].Depart))
}

func TestBuildTimetableClampsDepartToDayEnd(t *testing.T) {
	stops := []Stop{{ID: "c", DurationMin: 600}}
	entries := BuildTimetable(stops, 9*60, 18*60, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, "09:00", FormatHHMM(entries[0].Arrive))
	assert.Equal(t, "18:00", FormatHHMM(entries[0].Depart))
}

func TestBuildTimetableEmpty(t *testing.T) {
	assert.Empty(t, BuildTimetable(nil, 9*60, 18*60, nil))
}

func TestBuildTimetableZeroDurationStop(t *testing.T) {
	entries := BuildTimetable([]Stop{{ID: "a"}}, 9*60, 18*60, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, entries[0].Arrive, entries[0].Depart)
}

func TestBuildTimetableDeterministic(t *testing.T) {
	stops := []Stop{
		{ID: "a", DurationMin: 45},
		{ID: "b", DurationMin: 30},
		{ID: "c", DurationMin: 120},
	}
	travel := TravelTable{
		{From: "a", To: "b"}: 15,
		{From: "b", To: "c"}: 40,
	}
	first := BuildTimetable(stops, 8*60, 20*60, travel)
	second := BuildTimetable(stops, 8*60, 20*60, travel)
	assert.Equal(t, first, second)
}

func TestBuildTimetableMonotonicClock(t *testing.T) {
	stops := []Stop{
		{ID: "a", DurationMin: 300},
		{ID: "b", DurationMin: 200},
		{ID: "c", DurationMin: 400},
	}
	travel := TravelTable{
		{From: "a", To: "b"}: 30,
		{From: "b", To: "c"}: 90,
	}
	dayEnd := 18 * 60
	entries := BuildTimetable(stops, 9*60, dayEnd, travel)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.LessOrEqual(t, e.Depart, dayEnd)
		// arrive is never clamped; depart >= arrive only holds inside the day
		if e.Arrive <= dayEnd {
			assert.GreaterOrEqual(t, e.Depart, e.Arrive)
		}
		if i > 0 {
			assert.GreaterOrEqual(t, e.Arrive, entries[i-1].Depart)
		}
	}
	// the last stop overruns the day: arrive stays raw, depart clamps
	last := entries[2]
	assert.Equal(t, 19*60+20, last.Arrive)
	assert.Equal(t, dayEnd, last.Depart)
}
