package trips

import (
	"context"
	"math"
	"time"

	"tripmate/models"
	"tripmate/osrm"
)

// fallbackAvgKmh is the assumed speed when routing fails and the leg
// falls back to straight-line distance.
const fallbackAvgKmh = 30.0

// RoutePlanner resolves one leg between two points. *osrm.Client
// satisfies it; tests substitute a stub.
type RoutePlanner interface {
	Route(ctx context.Context, mode string, from, to osrm.Point) (osrm.Route, error)
}

var router RoutePlanner = osrm.NewClient()

// CalcLegs fills in distance, duration and geometry for every leg of a
// day. Routing failures degrade to a haversine estimate at 30 km/h so
// the timetable never loses its travel times entirely.
func CalcLegs(ctx context.Context, day *models.TripDay) {
	itemByID := make(map[string]models.TripItem, len(day.Items))
	for _, it := range day.Items {
		itemByID[it.ItemID] = it
	}
	for i := range day.Legs {
		leg := &day.Legs[i]
		from, okF := itemByID[leg.FromItemID]
		to, okT := itemByID[leg.ToItemID]
		if !okF || !okT {
			leg.CalcStatus = models.CalcFail
			continue
		}
		route, err := router.Route(ctx, leg.Mode,
			osrm.Point{Lat: from.Lat, Lng: from.Lng},
			osrm.Point{Lat: to.Lat, Lng: to.Lng})
		if err != nil {
			fallbackLeg(leg, from, to)
			continue
		}
		leg.DistanceM = int(math.Round(route.DistanceM))
		leg.DurationSec = int(math.Round(route.DurationSec))
		leg.RoutePolyline = route.Geometry
		leg.CalcStatus = models.CalcOK
		leg.CalcSource = models.SourceOSRM
		leg.CalcAt = time.Now()
	}
}

func fallbackLeg(leg *models.TripLeg, from, to models.TripItem) {
	dKm := haversineKm(from.Lat, from.Lng, to.Lat, to.Lng)
	leg.DistanceM = int(math.Round(dKm * 1000))
	leg.DurationSec = int(math.Round(dKm / fallbackAvgKmh * 3600))
	leg.RoutePolyline = ""
	leg.CalcStatus = models.CalcFallback
	leg.CalcSource = models.SourceFallback
	leg.CalcAt = time.Now()
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const r = 6371.0
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return r * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
