// Package optimize reorders a day's stops to cut travel time: a nearest
// insertion seed refined by 2-opt over an OSRM duration matrix, then a
// schedule pass that honors opening hours and the day bounds.
package optimize

import (
	"context"
	"math"

	"tripmate/osrm"
	"tripmate/planner"
)

// Stop is one optimizer input stop, addressed by a transient id.
type Stop struct {
	ID      int     `json:"id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	StayMin int     `json:"stayMin"`
	Open    string  `json:"open,omitempty"`
	Close   string  `json:"close,omitempty"`
	Locked  bool    `json:"locked"`
}

type Request struct {
	Mode      string `json:"mode"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	StartID   int    `json:"startId,omitempty"`
	EndID     int    `json:"endId,omitempty"`
	Stops     []Stop `json:"stops"`
}

// Leg is the scheduled visit of one stop in the optimized order.
type Leg struct {
	ID      int    `json:"id"`
	Arrive  string `json:"arrive"`
	Depart  string `json:"depart"`
	WaitMin int    `json:"waitMin"`
}

type Response struct {
	Order              []int  `json:"order"`
	Itinerary          []Leg  `json:"itinerary"`
	TotalTravelSec     int    `json:"totalTravelSec"`
	TotalStayMin       int    `json:"totalStayMin"`
	TotalWaitMin       int    `json:"totalWaitMin"`
	TimeWindowViolated bool   `json:"timeWindowViolated"`
	Geometry           string `json:"geometry,omitempty"`
}

// Router provides the duration matrix and route geometry the optimizer
// needs. *osrm.Client satisfies it.
type Router interface {
	Table(ctx context.Context, mode string, points []osrm.Point) ([][]float64, error)
	RouteLine(ctx context.Context, mode string, points []osrm.Point) (osrm.Route, error)
}

type Service struct {
	router Router
}

func NewService(router Router) *Service {
	return &Service{router: router}
}

// Optimize computes the proposed visiting order. Fewer than 2 stops is a
// pass-through. Geometry fetch failures degrade gracefully; the order and
// schedule are still returned.
func (s *Service) Optimize(ctx context.Context, req Request) (Response, error) {
	start := planner.ParseHHMM(req.StartTime, 10*60)
	end := planner.ParseHHMM(req.EndTime, 20*60)

	stops := make([]Stop, len(req.Stops))
	copy(stops, req.Stops)
	for i := range stops {
		if stops[i].StayMin <= 0 {
			stops[i].StayMin = planner.DefaultStayMin
		}
	}

	if len(stops) < 2 {
		resp := Response{Order: make([]int, 0, len(stops))}
		for _, st := range stops {
			resp.Order = append(resp.Order, st.ID)
		}
		return resp, nil
	}

	points := make([]osrm.Point, 0, len(stops))
	for _, st := range stops {
		points = append(points, osrm.Point{Lat: st.Lat, Lng: st.Lng})
	}
	durations, err := s.router.Table(ctx, req.Mode, points)
	if err != nil {
		return Response{}, err
	}

	route := nearestInsertion(stops, durations, req.StartID, req.EndID)
	lock := lockedMask(stops, route, req.StartID, req.EndID)
	twoOpt(route, durations, lock)

	sch := schedule(stops, route, durations, start, end)

	resp := Response{
		Order:              make([]int, 0, len(route)),
		Itinerary:          make([]Leg, 0, len(route)),
		TotalTravelSec:     sch.travelSec,
		TimeWindowViolated: sch.violated,
	}
	for k, idx := range route {
		st := stops[idx]
		resp.Order = append(resp.Order, st.ID)
		resp.Itinerary = append(resp.Itinerary, Leg{
			ID:      st.ID,
			Arrive:  planner.FormatHHMM(sch.arrive[k]),
			Depart:  planner.FormatHHMM(sch.depart[k]),
			WaitMin: sch.wait[k],
		})
		resp.TotalStayMin += st.StayMin
		resp.TotalWaitMin += sch.wait[k]
	}

	ordered := make([]osrm.Point, 0, len(route))
	for _, idx := range route {
		ordered = append(ordered, points[idx])
	}
	if line, err := s.router.RouteLine(ctx, req.Mode, ordered); err == nil {
		resp.Geometry = line.Geometry
	}
	return resp, nil
}

type scheduleResult struct {
	arrive    []int
	depart    []int
	wait      []int
	travelSec int
	violated  bool
}

// schedule walks the route with a running clock, waiting for stops that
// open late and flagging any departure past a close time or the day end.
func schedule(stops []Stop, route []int, durations [][]float64, start, end int) scheduleResult {
	n := len(route)
	r := scheduleResult{
		arrive: make([]int, n),
		depart: make([]int, n),
		wait:   make([]int, n),
	}
	t := start
	for k := 0; k < n; k++ {
		to := route[k]
		if k > 0 {
			sec := int(math.Round(durations[route[k-1]][to]))
			r.travelSec += sec
			t += (sec + 59) / 60
		}
		st := stops[to]
		arrive := t
		if open := planner.ParseHHMM(st.Open, -1); open >= 0 && arrive < open {
			r.wait[k] = open - arrive
			arrive = open
		}
		depart := arrive + st.StayMin
		if closeAt := planner.ParseHHMM(st.Close, -1); (closeAt >= 0 && depart > closeAt) || depart > end {
			r.violated = true
		}
		r.arrive[k] = arrive
		r.depart[k] = depart
		t = depart
	}
	return r
}

// nearestInsertion builds a seed route, keeping the optional start/end
// anchor stops pinned at the route boundaries.
func nearestInsertion(stops []Stop, d [][]float64, startID, endID int) []int {
	n := len(stops)
	sIdx := indexOf(stops, startID)
	eIdx := indexOf(stops, endID)

	seed := 0
	if sIdx >= 0 {
		seed = sIdx
	}
	route := []int{seed}
	if nn := nearestNeighbor(d, seed, n); nn >= 0 && nn != seed {
		route = append(route, nn)
	}

	for len(route) < n {
		bestP, bestPos := -1, -1
		best := math.MaxFloat64
		for p := 0; p < n; p++ {
			if contains(route, p) {
				continue
			}
			for pos := 0; pos <= len(route); pos++ {
				if !canPlace(route, pos, p, sIdx, eIdx) {
					continue
				}
				if cost := insertionCost(d, route, pos, p); cost < best {
					best, bestP, bestPos = cost, p, pos
				}
			}
		}
		if bestP == -1 {
			for p := 0; p < n; p++ {
				if !contains(route, p) {
					route = append(route, p)
					break
				}
			}
			continue
		}
		route = append(route[:bestPos], append([]int{bestP}, route[bestPos:]...)...)
	}

	if eIdx >= 0 {
		route = remove(route, eIdx)
		route = append(route, eIdx)
	}
	return route
}

func lockedMask(stops []Stop, route []int, startID, endID int) []bool {
	lock := make([]bool, len(route))
	for i, idx := range route {
		st := stops[idx]
		if st.Locked || (startID != 0 && st.ID == startID) || (endID != 0 && st.ID == endID) {
			lock[i] = true
		}
	}
	return lock
}

// twoOpt reverses route segments while any swap shortens total travel,
// skipping locked positions.
func twoOpt(route []int, d [][]float64, lock []bool) {
	improved := true
	for improved {
		improved = false
		for i := 1; i < len(route)-2; i++ {
			if lock[i] {
				continue
			}
			for k := i + 1; k < len(route)-1; k++ {
				if lock[k] {
					continue
				}
				delta := -d[route[i-1]][route[i]] - d[route[k]][route[k+1]] +
					d[route[i-1]][route[k]] + d[route[i]][route[k+1]]
				if delta < -1e-6 {
					for a, b := i, k; a < b; a, b = a+1, b-1 {
						route[a], route[b] = route[b], route[a]
					}
					improved = true
				}
			}
		}
	}
}

func indexOf(stops []Stop, id int) int {
	if id == 0 {
		return -1
	}
	for i, s := range stops {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func nearestNeighbor(d [][]float64, from, n int) int {
	best := math.MaxFloat64
	arg := -1
	for i := 0; i < n; i++ {
		if i != from && d[from][i] < best {
			best = d[from][i]
			arg = i
		}
	}
	return arg
}

func insertionCost(d [][]float64, route []int, pos, p int) float64 {
	if len(route) == 0 {
		return 0
	}
	if pos == 0 {
		return d[p][route[0]]
	}
	if pos == len(route) {
		return d[route[len(route)-1]][p]
	}
	a, b := route[pos-1], route[pos]
	return d[a][p] + d[p][b] - d[a][b]
}

func canPlace(route []int, pos, p int, sIdx, eIdx int) bool {
	if sIdx >= 0 && p == sIdx && pos != 0 {
		return false
	}
	if eIdx >= 0 && p == eIdx && pos != len(route) {
		return false
	}
	return true
}

func contains(route []int, p int) bool {
	for _, v := range route {
		if v == p {
			return true
		}
	}
	return false
}

func remove(route []int, v int) []int {
	out := route[:0]
	for _, x := range route {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
