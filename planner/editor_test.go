package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoStopDay() DayItinerary {
	return DayItinerary{
		DayIndex: 1,
		DayStart: 9 * 60,
		DayEnd:   19 * 60,
		Stops: []Stop{
			{ID: "a", Name: "Museum", Lat: 37.57, Lon: 126.97, DurationMin: 60},
			{ID: "b", Name: "Market", Lat: 37.56, Lon: 126.98, DurationMin: 90},
		},
	}
}

func TestAddStopRejectsInvalidCoordinates(t *testing.T) {
	day := twoStopDay()
	for _, bad := range []Stop{
		{ID: "x", Lat: math.NaN(), Lon: 127},
		{ID: "x", Lat: 37, Lon: math.Inf(1)},
		{ID: "x", Lat: 91, Lon: 127},
		{ID: "x", Lat: 37, Lon: -181},
	} {
		out := day.AddStop(bad, false)
		assert.Len(t, out.Stops, 2)
		assert.Equal(t, day.Version, out.Version)
	}
}

func TestAddStopDefaultsDuration(t *testing.T) {
	out := twoStopDay().AddStop(Stop{ID: "c", Lat: 37.55, Lon: 126.99}, false)
	require.Len(t, out.Stops, 3)
	assert.Equal(t, DefaultStayMin, out.Stops[2].DurationMin)
}

func TestSetDurationAllowsTrueZeroStay(t *testing.T) {
	// AddStop treats zero as unset; an explicit zero goes through SetDuration
	out := twoStopDay().AddStop(Stop{ID: "c", Lat: 37.55, Lon: 126.99}, false)
	out = out.SetDuration(2, 0)
	assert.Equal(t, 0, out.Stops[2].DurationMin)
}

func TestAddStopAsLodgingDisplacesPrevious(t *testing.T) {
	day := twoStopDay().ToggleLodging(0)
	out := day.AddStop(Stop{ID: "hotel", Lat: 37.55, Lon: 126.99, DurationMin: 480}, true)
	require.Len(t, out.Stops, 3)
	assert.False(t, out.Stops[0].IsLodging)
	assert.True(t, out.Stops[2].IsLodging)
}

func TestToggleLodgingExclusivity(t *testing.T) {
	day := twoStopDay().ToggleLodging(0).ToggleLodging(1)
	assert.False(t, day.Stops[0].IsLodging)
	assert.True(t, day.Stops[1].IsLodging)

	lodgingCount := 0
	for _, s := range day.Stops {
		if s.IsLodging {
			lodgingCount++
		}
	}
	assert.Equal(t, 1, lodgingCount)
}

func TestToggleLodgingClearsOnSecondToggle(t *testing.T) {
	day := twoStopDay().ToggleLodging(1).ToggleLodging(1)
	for _, s := range day.Stops {
		assert.False(t, s.IsLodging)
	}
}

func TestSetDurationClampsNegative(t *testing.T) {
	day := twoStopDay().SetDuration(0, -30)
	assert.Equal(t, 0, day.Stops[0].DurationMin)
}

func TestReorderSwapsNeighbor(t *testing.T) {
	day := twoStopDay().Reorder(0, +1)
	assert.Equal(t, "b", day.Stops[0].ID)
	assert.Equal(t, "a", day.Stops[1].ID)
}

func TestReorderBoundaryNoOp(t *testing.T) {
	day := twoStopDay()
	assert.Equal(t, day.Stops, day.Reorder(0, -1).Stops)
	assert.Equal(t, day.Stops, day.Reorder(len(day.Stops)-1, +1).Stops)
}

func TestRemoveStopShiftsLeft(t *testing.T) {
	day := twoStopDay().RemoveStop(0)
	require.Len(t, day.Stops, 1)
	assert.Equal(t, "b", day.Stops[0].ID)
}

func TestRemoveStopOutOfRangeNoOp(t *testing.T) {
	day := twoStopDay()
	assert.Equal(t, day, day.RemoveStop(5))
	assert.Equal(t, day, day.RemoveStop(-1))
}

func TestEditorCopyOnWrite(t *testing.T) {
	day := twoStopDay()
	snapshot := make([]Stop, len(day.Stops))
	copy(snapshot, day.Stops)

	_ = day.SetDuration(0, 999)
	_ = day.Reorder(0, +1)
	_ = day.ToggleLodging(1)
	_ = day.RemoveStop(0)

	assert.Equal(t, snapshot, day.Stops)
}

func TestEditorBumpsVersion(t *testing.T) {
	day := twoStopDay()
	edited := day.SetDuration(0, 30)
	assert.Equal(t, day.Version+1, edited.Version)
}
