package planner

// DefaultStayMin is the stay assigned to a newly added stop.
const DefaultStayMin = 60

// Editor operations. Each returns a new DayItinerary with its own stop
// slice and a bumped version; the receiver is never modified. Out-of-range
// or invalid input is a no-op that returns the receiver unchanged.

func (d DayItinerary) clone() DayItinerary {
	out := d
	out.Stops = make([]Stop, len(d.Stops))
	copy(out.Stops, d.Stops)
	out.Version++
	return out
}

// AddStop appends a stop. Stops without valid coordinates are silently
// dropped; the caller detects the rejection by the unchanged version.
// A non-positive DurationMin means "unset" and gets DefaultStayMin; use
// SetDuration afterwards for a true zero-minute stop.
func (d DayItinerary) AddStop(s Stop, asLodging bool) DayItinerary {
	if !ValidCoords(s.Lat, s.Lon) {
		return d
	}
	if s.DurationMin <= 0 {
		s.DurationMin = DefaultStayMin
	}
	out := d.clone()
	if asLodging {
		for i := range out.Stops {
			out.Stops[i].IsLodging = false
		}
		s.IsLodging = true
	}
	out.Stops = append(out.Stops, s)
	return out
}

// ToggleLodging flips the lodging flag at index. Setting it clears the
// flag on every other stop so at most one lodging stop exists per day.
func (d DayItinerary) ToggleLodging(index int) DayItinerary {
	if index < 0 || index >= len(d.Stops) {
		return d
	}
	out := d.clone()
	wasLodging := out.Stops[index].IsLodging
	for i := range out.Stops {
		out.Stops[i].IsLodging = false
	}
	if !wasLodging {
		out.Stops[index].IsLodging = true
	}
	return out
}

// SetDuration updates a stop's stay; negatives clamp to zero.
func (d DayItinerary) SetDuration(index, minutes int) DayItinerary {
	if index < 0 || index >= len(d.Stops) {
		return d
	}
	if minutes < 0 {
		minutes = 0
	}
	out := d.clone()
	out.Stops[index].DurationMin = minutes
	return out
}

// Reorder swaps the stop at index with its neighbor at index+direction.
func (d DayItinerary) Reorder(index, direction int) DayItinerary {
	j := index + direction
	if index < 0 || index >= len(d.Stops) || j < 0 || j >= len(d.Stops) {
		return d
	}
	out := d.clone()
	out.Stops[index], out.Stops[j] = out.Stops[j], out.Stops[index]
	return out
}

// RemoveStop deletes the stop at index.
func (d DayItinerary) RemoveStop(index int) DayItinerary {
	if index < 0 || index >= len(d.Stops) {
		return d
	}
	out := d.clone()
	out.Stops = append(out.Stops[:index], out.Stops[index+1:]...)
	return out
}
