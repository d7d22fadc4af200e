package planner

// LegKey identifies the travel leg between two adjacent stops.
type LegKey struct {
	From string
	To   string
}

// TravelTable maps ordered stop-id pairs to travel minutes. Missing pairs
// count as zero travel time.
type TravelTable map[LegKey]int

// Entry is the derived schedule row for one stop. It is never stored;
// callers recompute the timetable whenever stops, durations, legs or day
// bounds change.
type Entry struct {
	Arrive            int `json:"arrive"` // minutes of day
	Depart            int `json:"depart"`
	TravelMinFromPrev int `json:"travelMinFromPrev"`
}

// BuildTimetable projects an ordered stop list onto a running clock that
// starts at dayStart. Departure is clamped to dayEnd; arrival is not, so a
// long travel leg can push arrival past the day bound and the caller sees
// that overrun rather than a silently repaired schedule.
func BuildTimetable(stops []Stop, dayStart, dayEnd int, travel TravelTable) []Entry {
	entries := make([]Entry, 0, len(stops))
	t := dayStart
	for i, s := range stops {
		travelMin := 0
		if i > 0 && travel != nil {
			travelMin = travel[LegKey{From: stops[i-1].ID, To: s.ID}]
		}
		t += travelMin
		arrive := t
		depart := arrive + s.DurationMin
		if depart > dayEnd {
			depart = dayEnd
		}
		t = depart
		entries = append(entries, Entry{Arrive: arrive, Depart: depart, TravelMinFromPrev: travelMin})
	}
	return entries
}

// Timetable recomputes the schedule for the itinerary's own bounds.
func (d DayItinerary) Timetable(travel TravelTable) []Entry {
	return BuildTimetable(d.Stops, d.DayStart, d.DayEnd, travel)
}
