package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/osrm"
)

// fakeRouter serves a fixed duration matrix keyed by point index.
type fakeRouter struct {
	table [][]float64
}

func (f *fakeRouter) Table(_ context.Context, _ string, points []osrm.Point) ([][]float64, error) {
	return f.table, nil
}

func (f *fakeRouter) RouteLine(_ context.Context, _ string, _ []osrm.Point) (osrm.Route, error) {
	return osrm.Route{Geometry: "poly"}, nil
}

func TestOptimizeSingleStopPassThrough(t *testing.T) {
	svc := NewService(&fakeRouter{})
	resp, err := svc.Optimize(context.Background(), Request{
		Stops: []Stop{{ID: 1, Lat: 37.5, Lng: 127.0}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, resp.Order)
}

func TestOptimizeFindsShorterOrder(t *testing.T) {
	// Three stops on a line: 0 -- 1 -- 2. Visiting 0,2,1 is worse than
	// 0,1,2; the heuristic must come back with the in-line order.
	table := [][]float64{
		{0, 600, 1200},
		{600, 0, 600},
		{1200, 600, 0},
	}
	svc := NewService(&fakeRouter{table: table})
	resp, err := svc.Optimize(context.Background(), Request{
		Mode:      "car",
		StartTime: "09:00",
		EndTime:   "20:00",
		Stops: []Stop{
			{ID: 1, Lat: 37.50, Lng: 127.00, StayMin: 60},
			{ID: 2, Lat: 37.51, Lng: 127.00, StayMin: 60},
			{ID: 3, Lat: 37.52, Lng: 127.00, StayMin: 60},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Order, 3)
	assert.Equal(t, 2, resp.Order[1], "middle stop stays in the middle")
	assert.Equal(t, "poly", resp.Geometry)
}

func TestOptimizeRespectsAnchors(t *testing.T) {
	table := [][]float64{
		{0, 600, 1200},
		{600, 0, 600},
		{1200, 600, 0},
	}
	svc := NewService(&fakeRouter{table: table})
	resp, err := svc.Optimize(context.Background(), Request{
		StartID: 3,
		EndID:   1,
		Stops: []Stop{
			{ID: 1, Lat: 37.50, Lng: 127.00},
			{ID: 2, Lat: 37.51, Lng: 127.00},
			{ID: 3, Lat: 37.52, Lng: 127.00},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Order[0])
	assert.Equal(t, 1, resp.Order[len(resp.Order)-1])
}

func TestOptimizeSchedule(t *testing.T) {
	table := [][]float64{
		{0, 1200},
		{1200, 0},
	}
	svc := NewService(&fakeRouter{table: table})
	resp, err := svc.Optimize(context.Background(), Request{
		StartTime: "09:00",
		EndTime:   "20:00",
		Stops: []Stop{
			{ID: 1, Lat: 37.50, Lng: 127.00, StayMin: 60},
			{ID: 2, Lat: 37.51, Lng: 127.00, StayMin: 90, Open: "11:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Itinerary, 2)

	first := resp.Itinerary[0]
	assert.Equal(t, "09:00", first.Arrive)
	assert.Equal(t, "10:00", first.Depart)

	// 20 minutes of travel puts arrival at 10:20, then waits for the
	// 11:00 opening.
	second := resp.Itinerary[1]
	assert.Equal(t, "11:00", second.Arrive)
	assert.Equal(t, 40, second.WaitMin)
	assert.Equal(t, "12:30", second.Depart)
	assert.Equal(t, 1200, resp.TotalTravelSec)
	assert.Equal(t, 150, resp.TotalStayMin)
	assert.False(t, resp.TimeWindowViolated)
}

func TestOptimizeFlagsDayOverrun(t *testing.T) {
	table := [][]float64{
		{0, 300},
		{300, 0},
	}
	svc := NewService(&fakeRouter{table: table})
	resp, err := svc.Optimize(context.Background(), Request{
		StartTime: "09:00",
		EndTime:   "10:00",
		Stops: []Stop{
			{ID: 1, Lat: 37.50, Lng: 127.00, StayMin: 60},
			{ID: 2, Lat: 37.51, Lng: 127.00, StayMin: 60},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TimeWindowViolated)
}

func TestOptimizeDefaultsStayMin(t *testing.T) {
	table := [][]float64{
		{0, 60},
		{60, 0},
	}
	svc := NewService(&fakeRouter{table: table})
	resp, err := svc.Optimize(context.Background(), Request{
		Stops: []Stop{
			{ID: 1, Lat: 37.50, Lng: 127.00},
			{ID: 2, Lat: 37.51, Lng: 127.00},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 120, resp.TotalStayMin)
}
