package trips

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/models"
	"tripmate/osrm"
)

func TestDefaultDaysSpansDateRange(t *testing.T) {
	trip := &models.Trip{
		StartDate:        "2026-05-01",
		EndDate:          "2026-05-03",
		DefaultStartTime: "10:00",
		DefaultEndTime:   "20:00",
	}
	days := DefaultDays(trip)
	require.Len(t, days, 3)
	assert.Equal(t, 1, days[0].DayIndex)
	assert.Equal(t, "2026-05-01", days[0].Date)
	assert.Equal(t, "2026-05-03", days[2].Date)
	assert.Equal(t, "10:00", days[1].StartTime)
	assert.NotEmpty(t, days[0].DayID)
}

func TestDefaultDaysAssignUUIDs(t *testing.T) {
	trip := &models.Trip{StartDate: "2026-05-01", EndDate: "2026-05-02"}
	days := DefaultDays(trip)
	require.Len(t, days, 2)

	_, err := uuid.Parse(days[0].DayID)
	assert.NoError(t, err)
	assert.NotEqual(t, days[0].DayID, days[1].DayID)
}

func TestDefaultDaysMalformedDates(t *testing.T) {
	trip := &models.Trip{StartDate: "soon", EndDate: "later"}
	days := DefaultDays(trip)
	require.Len(t, days, 1)
	assert.Empty(t, days[0].Date)
}

func TestNormalizeItemsDropsInvalidCoords(t *testing.T) {
	items := normalizeItems([]models.TripItem{
		{NameSnapshot: "ok", Lat: 37.5, Lng: 127.0},
		{NameSnapshot: "bad", Lat: 999, Lng: 127.0},
		{NameSnapshot: "ok2", Lat: 37.6, Lng: 127.1, StayMin: 30},
	})
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].SortOrder)
	assert.Equal(t, 2, items[1].SortOrder)
	assert.Equal(t, 60, items[0].StayMin, "default stay applied")
	assert.Equal(t, 30, items[1].StayMin)
	assert.Equal(t, "place", items[0].Type)
	assert.NotEmpty(t, items[0].ItemID)
}

func TestDirtyLegsAdjacentPairs(t *testing.T) {
	items := normalizeItems([]models.TripItem{
		{NameSnapshot: "a", Lat: 37.5, Lng: 127.0},
		{NameSnapshot: "b", Lat: 37.6, Lng: 127.1},
		{NameSnapshot: "c", Lat: 37.7, Lng: 127.2},
	})
	legs := dirtyLegs(items, models.ModeWalk)
	require.Len(t, legs, 2)
	assert.Equal(t, items[0].ItemID, legs[0].FromItemID)
	assert.Equal(t, items[1].ItemID, legs[0].ToItemID)
	assert.Equal(t, models.ModeWalk, legs[0].Mode)
	assert.Equal(t, models.CalcDirty, legs[0].CalcStatus)

	assert.Empty(t, dirtyLegs(items[:1], models.ModeCar))
}

type stubRouter struct {
	route osrm.Route
	err   error
}

func (s *stubRouter) Route(_ context.Context, _ string, _, _ osrm.Point) (osrm.Route, error) {
	return s.route, s.err
}

func dayWithTwoItems() *models.TripDay {
	items := normalizeItems([]models.TripItem{
		{NameSnapshot: "a", Lat: 37.50, Lng: 127.00},
		{NameSnapshot: "b", Lat: 37.60, Lng: 127.00},
	})
	return &models.TripDay{
		DayIndex: 1,
		Items:    items,
		Legs:     dirtyLegs(items, models.ModeCar),
	}
}

func TestCalcLegsOSRM(t *testing.T) {
	old := router
	router = &stubRouter{route: osrm.Route{DistanceM: 12345.4, DurationSec: 900.6, Geometry: "poly"}}
	defer func() { router = old }()

	day := dayWithTwoItems()
	CalcLegs(context.Background(), day)

	leg := day.Legs[0]
	assert.Equal(t, 12345, leg.DistanceM)
	assert.Equal(t, 901, leg.DurationSec)
	assert.Equal(t, "poly", leg.RoutePolyline)
	assert.Equal(t, models.CalcOK, leg.CalcStatus)
	assert.Equal(t, models.SourceOSRM, leg.CalcSource)
	assert.False(t, leg.CalcAt.IsZero())
}

func TestCalcLegsFallback(t *testing.T) {
	old := router
	router = &stubRouter{err: errors.New("osrm down")}
	defer func() { router = old }()

	day := dayWithTwoItems()
	CalcLegs(context.Background(), day)

	leg := day.Legs[0]
	assert.Equal(t, models.CalcFallback, leg.CalcStatus)
	assert.Equal(t, models.SourceFallback, leg.CalcSource)
	// 0.1 degrees of latitude is about 11.1km; at 30km/h that is ~22min.
	assert.InDelta(t, 11100, leg.DistanceM, 100)
	assert.InDelta(t, 1334, leg.DurationSec, 20)
}

func TestCalcLegsMissingItem(t *testing.T) {
	day := dayWithTwoItems()
	day.Legs[0].ToItemID = "gone"
	CalcLegs(context.Background(), day)
	assert.Equal(t, models.CalcFail, day.Legs[0].CalcStatus)
}
