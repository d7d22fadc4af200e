package models

import "time"

// Transport modes for trip legs.
const (
	ModeCar     = "CAR"
	ModeWalk    = "WALK"
	ModeTransit = "TRANSIT"
)

// Leg calculation status.
const (
	CalcDirty    = "DIRTY"
	CalcOK       = "OK"
	CalcFail     = "FAIL"
	CalcFallback = "FALLBACK"
)

// Leg calculation source.
const (
	SourceOSRM     = "OSRM"
	SourceFallback = "FALLBACK"
)

// Trip is the top-level plan container: trip metadata plus day-by-day
// schedules stored as embedded documents.
type Trip struct {
	TripID           string    `json:"id" bson:"tripid"`
	UserID           string    `json:"user_id" bson:"user_id"`
	Title            string    `json:"title" bson:"title"`
	StartDate        string    `json:"startDate" bson:"start_date"`
	EndDate          string    `json:"endDate" bson:"end_date"`
	City             string    `json:"city" bson:"city"`
	CityLat          float64   `json:"cityLat,omitempty" bson:"city_lat,omitempty"`
	CityLng          float64   `json:"cityLng,omitempty" bson:"city_lng,omitempty"`
	DefaultStartTime string    `json:"defaultStartTime" bson:"default_start_time"`
	DefaultEndTime   string    `json:"defaultEndTime" bson:"default_end_time"`
	DefaultTransport string    `json:"defaultTransportMode" bson:"default_transport_mode"`
	TimeZone         string    `json:"timeZone,omitempty" bson:"time_zone,omitempty"`
	Days             []TripDay `json:"days" bson:"days"`
	Deleted          bool      `json:"-" bson:"deleted,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// TripDay is one calendar day of a trip; items are kept in visiting order.
type TripDay struct {
	DayID     string     `json:"id" bson:"dayid"`
	DayIndex  int        `json:"dayIndex" bson:"day_index"`
	Date      string     `json:"date" bson:"date"`
	StartTime string     `json:"startTime" bson:"start_time"`
	EndTime   string     `json:"endTime" bson:"end_time"`
	Items     []TripItem `json:"items" bson:"items"`
	Legs      []TripLeg  `json:"legs,omitempty" bson:"legs,omitempty"`
}

type TripItem struct {
	ItemID           string `json:"id" bson:"itemid"`
	SortOrder        int    `json:"sortOrder" bson:"sort_order"`
	Type             string `json:"type" bson:"type"` // place|memo|transfer|lodging
	PlaceSource      string `json:"placeSource,omitempty" bson:"place_source,omitempty"`
	PlaceRef         string `json:"placeRef,omitempty" bson:"place_ref,omitempty"`
	NameSnapshot     string `json:"nameSnapshot" bson:"name_snapshot"`
	Lat              float64 `json:"lat" bson:"lat"`
	Lng              float64 `json:"lng" bson:"lng"`
	AddrSnapshot     string `json:"addrSnapshot,omitempty" bson:"addr_snapshot,omitempty"`
	CategorySnapshot string `json:"categorySnapshot,omitempty" bson:"category_snapshot,omitempty"`
	Snapshot         string `json:"snapshot,omitempty" bson:"snapshot,omitempty"` // raw vendor json
	StayMin          int    `json:"stayMin" bson:"stay_min"`
	Notes            string `json:"notes,omitempty" bson:"notes,omitempty"`
	OpenTime         string `json:"openTime,omitempty" bson:"open_time,omitempty"`
	CloseTime        string `json:"closeTime,omitempty" bson:"close_time,omitempty"`
}

// TripLeg is the computed travel segment between two adjacent items.
type TripLeg struct {
	LegID         string    `json:"id" bson:"legid"`
	FromItemID    string    `json:"fromItemId" bson:"from_item_id"`
	ToItemID      string    `json:"toItemId" bson:"to_item_id"`
	Mode          string    `json:"mode" bson:"mode"`
	DistanceM     int       `json:"distanceM,omitempty" bson:"distance_m,omitempty"`
	DurationSec   int       `json:"durationSec,omitempty" bson:"duration_sec,omitempty"`
	RoutePolyline string    `json:"routePolyline,omitempty" bson:"route_polyline,omitempty"`
	CalcStatus    string    `json:"calcStatus" bson:"calc_status"`
	CalcSource    string    `json:"calcSource,omitempty" bson:"calc_source,omitempty"`
	CalcAt        time.Time `json:"calcAt,omitempty" bson:"calc_at,omitempty"`
}
