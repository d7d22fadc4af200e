package trips

import (
	"time"

	"tripmate/models"
	"tripmate/planner"
	"tripmate/utils"
)

// DefaultDays builds one empty day per calendar date in the trip's
// inclusive range, carrying the trip's default day bounds. Malformed
// dates still yield a single day so planning can start.
func DefaultDays(trip *models.Trip) []models.TripDay {
	count := planner.DayCount(trip.StartDate, trip.EndDate)
	start, err := time.Parse("2006-01-02", trip.StartDate)
	days := make([]models.TripDay, 0, count)
	for i := 0; i < count; i++ {
		date := ""
		if err == nil {
			date = start.AddDate(0, 0, i).Format("2006-01-02")
		}
		days = append(days, models.TripDay{
			DayID:     utils.GetUUID(),
			DayIndex:  i + 1,
			Date:      date,
			StartTime: trip.DefaultStartTime,
			EndTime:   trip.DefaultEndTime,
			Items:     []models.TripItem{},
			Legs:      []models.TripLeg{},
		})
	}
	return days
}

// normalizeItems assigns ids and sort order, fills defaults and drops
// items without usable coordinates.
func normalizeItems(items []models.TripItem) []models.TripItem {
	out := make([]models.TripItem, 0, len(items))
	for _, it := range items {
		if !planner.ValidCoords(it.Lat, it.Lng) {
			continue
		}
		if it.ItemID == "" {
			it.ItemID = utils.GenerateRandomString(13)
		}
		if it.Type == "" {
			it.Type = "place"
		}
		if it.StayMin <= 0 {
			it.StayMin = planner.DefaultStayMin
		}
		it.SortOrder = len(out) + 1
		out = append(out, it)
	}
	return out
}

// dirtyLegs creates one uncalculated leg between each pair of adjacent
// items, to be filled in by CalcLegs.
func dirtyLegs(items []models.TripItem, mode string) []models.TripLeg {
	if len(items) < 2 {
		return []models.TripLeg{}
	}
	if mode == "" {
		mode = models.ModeCar
	}
	legs := make([]models.TripLeg, 0, len(items)-1)
	for i := 0; i < len(items)-1; i++ {
		legs = append(legs, models.TripLeg{
			LegID:      utils.GetUUID(),
			FromItemID: items[i].ItemID,
			ToItemID:   items[i+1].ItemID,
			Mode:       mode,
			CalcStatus: models.CalcDirty,
		})
	}
	return legs
}
