package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeStopDay() DayItinerary {
	return DayItinerary{
		DayIndex: 1,
		DayStart: 9 * 60,
		DayEnd:   19 * 60,
		Stops: []Stop{
			{ID: "a", Name: "Palace", Lat: 37.579, Lon: 126.977, DurationMin: 90},
			{ID: "b", Name: "Tower", Lat: 37.551, Lon: 126.988, DurationMin: 60},
			{ID: "c", Name: "Hotel", Lat: 37.564, Lon: 126.982, DurationMin: 480, IsLodging: true},
		},
	}
}

func TestBuildOptimizeRequest(t *testing.T) {
	req, err := BuildOptimizeRequest(threeStopDay(), "car")
	require.NoError(t, err)
	assert.Equal(t, "car", req.Mode)
	assert.Equal(t, "09:00", req.StartTime)
	assert.Equal(t, "19:00", req.EndTime)
	require.Len(t, req.Stops, 3)
	for i, s := range req.Stops {
		assert.Equal(t, i+1, s.ID)
	}
	assert.False(t, req.Stops[0].Locked)
	assert.True(t, req.Stops[2].Locked)
}

func TestBuildOptimizeRequestTooFewStops(t *testing.T) {
	day := DayItinerary{Stops: []Stop{{ID: "a", Lat: 1, Lon: 1}}}
	_, err := BuildOptimizeRequest(day, "car")
	assert.ErrorIs(t, err, ErrTooFewStops)
}

func TestApplyOrderReorders(t *testing.T) {
	day := threeStopDay()
	out, err := ApplyOrder(day, []int{2, 1, 3}, day.Version)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, []string{out.Stops[0].ID, out.Stops[1].ID, out.Stops[2].ID})
	assert.Equal(t, day.Version+1, out.Version)
}

func TestApplyOrderRejectsLengthMismatch(t *testing.T) {
	day := threeStopDay()
	out, err := ApplyOrder(day, []int{1, 2}, day.Version)
	assert.ErrorIs(t, err, ErrOrderMismatch)
	assert.Equal(t, day, out)
}

func TestApplyOrderRejectsUnknownOrDuplicateIDs(t *testing.T) {
	day := threeStopDay()
	_, err := ApplyOrder(day, []int{1, 2, 4}, day.Version)
	assert.ErrorIs(t, err, ErrOrderMismatch)
	_, err = ApplyOrder(day, []int{1, 1, 2}, day.Version)
	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestApplyOrderRejectsStaleVersion(t *testing.T) {
	day := threeStopDay()
	requestVersion := day.Version
	edited := day.RemoveStop(2) // user edits while the request is in flight
	out, err := ApplyOrder(edited, []int{1, 2}, requestVersion)
	assert.ErrorIs(t, err, ErrStaleResult)
	assert.Equal(t, edited, out)
}

func TestOptimizeClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/optimize/day", r.URL.Path)
		var req OptimizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Stops, 3)
		json.NewEncoder(w).Encode(OptimizeResult{Order: []int{3, 1, 2}})
	}))
	defer srv.Close()

	day := threeStopDay()
	out, err := NewOptimizeClient(srv.URL).OptimizeDay(context.Background(), day, "walk")
	require.NoError(t, err)
	assert.Equal(t, "c", out.Stops[0].ID)
}

func TestOptimizeClientRejectsShortOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(OptimizeResult{Order: []int{1, 2}})
	}))
	defer srv.Close()

	day := threeStopDay()
	out, err := NewOptimizeClient(srv.URL).OptimizeDay(context.Background(), day, "car")
	assert.ErrorIs(t, err, ErrOrderMismatch)
	assert.Equal(t, day.Stops, out.Stops)
}

func TestOptimizeClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	day := threeStopDay()
	out, err := NewOptimizeClient(srv.URL).OptimizeDay(context.Background(), day, "car")
	assert.Error(t, err)
	assert.Equal(t, day.Stops, out.Stops)
}
