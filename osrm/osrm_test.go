package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/driving/")
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":4321.5,"duration":612.3,"geometry":"abc"}]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	route, err := c.Route(context.Background(), "car", Point{Lat: 37.5, Lng: 127.0}, Point{Lat: 37.6, Lng: 127.1})
	require.NoError(t, err)
	assert.Equal(t, 4321.5, route.DistanceM)
	assert.Equal(t, 612.3, route.DurationSec)
	assert.Equal(t, "abc", route.Geometry)
}

func TestRouteNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	_, err := c.Route(context.Background(), "car", Point{}, Point{Lat: 1, Lng: 1})
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/table/v1/foot/")
		w.Write([]byte(`{"code":"Ok","durations":[[0,100],[110,0]]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	table, err := c.Table(context.Background(), "walk", []Point{{Lat: 37.5, Lng: 127.0}, {Lat: 37.6, Lng: 127.1}})
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, 100.0, table[0][1])
}

func TestTableTooFewPoints(t *testing.T) {
	c := NewClient()
	_, err := c.Table(context.Background(), "car", []Point{{Lat: 1, Lng: 1}})
	assert.Error(t, err)
}
