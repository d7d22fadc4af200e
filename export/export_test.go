package export

import (
	"strings"
	"testing"

	"tripmate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRPayloadSigned(t *testing.T) {
	payload := qrPayload("t123")
	parts := strings.Split(payload, "|")
	require.Len(t, parts, 3)
	assert.Equal(t, "trip", parts[0])
	assert.Equal(t, "t123", parts[1])
	assert.NotEmpty(t, parts[2])

	// same trip signs the same, different trips differ
	assert.Equal(t, payload, qrPayload("t123"))
	assert.NotEqual(t, payload, qrPayload("t124"))
}

func TestDayScheduleUsesSavedLegs(t *testing.T) {
	trip := &models.Trip{DefaultStartTime: "09:00", DefaultEndTime: "18:00"}
	day := &models.TripDay{
		DayIndex: 1,
		Items: []models.TripItem{
			{ItemID: "a", NameSnapshot: "Palace", StayMin: 60},
			{ItemID: "b", NameSnapshot: "Market", StayMin: 90},
		},
		Legs: []models.TripLeg{
			{FromItemID: "a", ToItemID: "b", DurationSec: 1200}, // 20 min
		},
	}

	entries := daySchedule(trip, day)
	require.Len(t, entries, 2)
	assert.Equal(t, 9*60, entries[0].Arrive)
	assert.Equal(t, 10*60, entries[0].Depart)
	assert.Equal(t, 20, entries[1].TravelMinFromPrev)
	assert.Equal(t, 10*60+20, entries[1].Arrive)
	assert.Equal(t, 11*60+50, entries[1].Depart)
}

func TestDayScheduleFallsBackToDayTimes(t *testing.T) {
	trip := &models.Trip{DefaultStartTime: "10:00", DefaultEndTime: "20:00"}
	day := &models.TripDay{
		StartTime: "08:30",
		Items:     []models.TripItem{{ItemID: "a", StayMin: 30}},
	}

	entries := daySchedule(trip, day)
	require.Len(t, entries, 1)
	assert.Equal(t, 8*60+30, entries[0].Arrive)
}
