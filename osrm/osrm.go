// Package osrm is a thin client for the OSRM HTTP API, used for leg
// routing and for the duration matrix the day optimizer runs on.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

var ErrNoRoute = errors.New("osrm: no route found")

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// Route is one driving/walking route between two points.
type Route struct {
	DistanceM   float64
	DurationSec float64
	Geometry    string // encoded polyline
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	base := os.Getenv("OSRM_URL")
	if base == "" {
		base = "https://router.project-osrm.org"
	}
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

// profile maps our transport modes onto OSRM profiles.
func profile(mode string) string {
	switch mode {
	case "walk":
		return "foot"
	default:
		return "driving"
	}
}

// Route fetches a single route from a to b.
func (c *Client) Route(ctx context.Context, mode string, from, to Point) (Route, error) {
	return c.RouteLine(ctx, mode, []Point{from, to})
}

// RouteLine fetches one route through all the given waypoints in order.
func (c *Client) RouteLine(ctx context.Context, mode string, points []Point) (Route, error) {
	if len(points) < 2 {
		return Route{}, errors.New("osrm: route needs at least 2 points")
	}
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lng, p.Lat))
	}
	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=polyline",
		c.BaseURL, profile(mode), strings.Join(coords, ";"))
	var out routeResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return Route{}, err
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return Route{}, ErrNoRoute
	}
	r := out.Routes[0]
	return Route{DistanceM: r.Distance, DurationSec: r.Duration, Geometry: r.Geometry}, nil
}

type tableResponse struct {
	Code      string      `json:"code"`
	Durations [][]float64 `json:"durations"`
}

// Table fetches the full pairwise duration matrix (seconds) for the given
// points. Result is square with len(points) rows.
func (c *Client) Table(ctx context.Context, mode string, points []Point) ([][]float64, error) {
	if len(points) < 2 {
		return nil, errors.New("osrm: table needs at least 2 points")
	}
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lng, p.Lat))
	}
	url := fmt.Sprintf("%s/table/v1/%s/%s?annotations=duration",
		c.BaseURL, profile(mode), strings.Join(coords, ";"))
	var out tableResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	if out.Code != "Ok" || len(out.Durations) != len(points) {
		return nil, ErrNoRoute
	}
	return out.Durations, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("osrm: status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
