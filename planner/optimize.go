package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrTooFewStops means optimization was requested for 0 or 1 stops.
	ErrTooFewStops = errors.New("planner: need at least 2 stops to optimize")
	// ErrOrderMismatch means the optimizer returned an order whose length
	// does not match the submitted stop count. The response is discarded.
	ErrOrderMismatch = errors.New("planner: optimizer order length mismatch")
	// ErrStaleResult means the itinerary was edited between request and
	// response; the late result is discarded.
	ErrStaleResult = errors.New("planner: optimization result is stale")
)

// OptimizeStop is one stop in the optimizer request, addressed by a
// transient 1-based position id rather than its persistent identifier.
type OptimizeStop struct {
	ID      int     `json:"id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	StayMin int     `json:"stayMin"`
	Open    string  `json:"open,omitempty"`
	Close   string  `json:"close,omitempty"`
	Locked  bool    `json:"locked"`
}

// OptimizeRequest is the wire shape sent to the day optimizer. Lodging
// stops are marked locked so the optimizer keeps them pinned in place.
type OptimizeRequest struct {
	Mode      string         `json:"mode"`
	StartTime string         `json:"startTime"`
	EndTime   string         `json:"endTime"`
	StartID   int            `json:"startId,omitempty"`
	EndID     int            `json:"endId,omitempty"`
	Stops     []OptimizeStop `json:"stops"`
}

// OptimizeResult carries the optimizer's proposed visiting order of
// transient ids.
type OptimizeResult struct {
	Order []int `json:"order"`
}

// BuildOptimizeRequest translates the itinerary into the optimizer's
// request shape. Fails with ErrTooFewStops below 2 stops.
func BuildOptimizeRequest(d DayItinerary, mode string) (OptimizeRequest, error) {
	if len(d.Stops) < 2 {
		return OptimizeRequest{}, ErrTooFewStops
	}
	req := OptimizeRequest{
		Mode:      mode,
		StartTime: FormatHHMM(d.DayStart),
		EndTime:   FormatHHMM(d.DayEnd),
		Stops:     make([]OptimizeStop, 0, len(d.Stops)),
	}
	for i, s := range d.Stops {
		req.Stops = append(req.Stops, OptimizeStop{
			ID:      i + 1,
			Lat:     s.Lat,
			Lng:     s.Lon,
			StayMin: s.DurationMin,
			Locked:  s.IsLodging,
		})
	}
	return req, nil
}

// ApplyOrder replaces the stop sequence with the optimizer's order. The
// order refers to transient 1-based ids from BuildOptimizeRequest.
// Application is all-or-nothing: a length mismatch, an unknown id or a
// version drift since the request leaves the itinerary untouched.
func ApplyOrder(d DayItinerary, order []int, requestVersion int64) (DayItinerary, error) {
	if d.Version != requestVersion {
		return d, ErrStaleResult
	}
	if len(order) != len(d.Stops) {
		return d, ErrOrderMismatch
	}
	reordered := make([]Stop, 0, len(order))
	seen := make(map[int]bool, len(order))
	for _, id := range order {
		idx := id - 1
		if idx < 0 || idx >= len(d.Stops) || seen[id] {
			return d, ErrOrderMismatch
		}
		seen[id] = true
		reordered = append(reordered, d.Stops[idx])
	}
	out := d
	out.Stops = reordered
	out.Version++
	return out, nil
}

// OptimizeClient posts day itineraries to the optimization endpoint.
type OptimizeClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewOptimizeClient returns a client with a bounded request timeout.
func NewOptimizeClient(baseURL string) *OptimizeClient {
	return &OptimizeClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// OptimizeDay round-trips the itinerary through the optimizer and returns
// a new itinerary in the proposed order. Any failure returns the input
// unchanged.
func (c *OptimizeClient) OptimizeDay(ctx context.Context, d DayItinerary, mode string) (DayItinerary, error) {
	reqVersion := d.Version
	payload, err := BuildOptimizeRequest(d, mode)
	if err != nil {
		return d, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return d, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/optimize/day", bytes.NewReader(body))
	if err != nil {
		return d, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return d, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return d, fmt.Errorf("planner: optimizer returned status %d", resp.StatusCode)
	}
	var result OptimizeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return d, err
	}
	return ApplyOrder(d, result.Order, reqVersion)
}
