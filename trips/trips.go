// Package trips owns trip persistence: the trip document with its
// embedded days, items and legs, plus the day-level edit operations the
// planner UI drives.
package trips

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"tripmate/db"
	"tripmate/models"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type createTripRequest struct {
	Title            string  `json:"title"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	City             string  `json:"city"`
	CityLat          float64 `json:"cityLat"`
	CityLng          float64 `json:"cityLng"`
	DefaultStartTime string  `json:"defaultStartTime"`
	DefaultEndTime   string  `json:"defaultEndTime"`
	DefaultTransport string  `json:"defaultTransportMode"`
}

// POST /api/trips
func CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Title == "" {
		utils.Error(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.DefaultStartTime == "" {
		req.DefaultStartTime = "10:00"
	}
	if req.DefaultEndTime == "" {
		req.DefaultEndTime = "20:00"
	}
	if req.DefaultTransport == "" {
		req.DefaultTransport = models.ModeCar
	}

	now := time.Now()
	trip := models.Trip{
		TripID:           utils.GenerateRandomString(13),
		UserID:           userID,
		Title:            req.Title,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		City:             req.City,
		CityLat:          req.CityLat,
		CityLng:          req.CityLng,
		DefaultStartTime: req.DefaultStartTime,
		DefaultEndTime:   req.DefaultEndTime,
		DefaultTransport: req.DefaultTransport,
		TimeZone:         "Asia/Seoul",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	trip.Days = DefaultDays(&trip)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.TripsCollection.InsertOne(ctx, trip); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error creating trip")
		return
	}
	utils.JSON(w, http.StatusCreated, trip)
}

// GET /api/trips
func GetMyTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "deleted": bson.M{"$ne": true}}
	trips, err := utils.FindAndDecode[models.Trip](ctx, db.TripsCollection, filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}
	utils.JSON(w, http.StatusOK, trips)
}

// GET /api/trips/:id
func GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip, ok := findTrip(ctx, ps.ByName("id"))
	if !ok {
		utils.Error(w, http.StatusNotFound, "Trip not found")
		return
	}
	utils.JSON(w, http.StatusOK, trip)
}

// GET /api/trips/:id/edit — the working view the planner loads: days with
// items, legs and the trip defaults in one payload.
func GetTripEditView(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip, ok := findTrip(ctx, ps.ByName("id"))
	if !ok {
		utils.Error(w, http.StatusNotFound, "Trip not found")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{
		"tripId":               trip.TripID,
		"title":                trip.Title,
		"city":                 trip.City,
		"cityLat":              trip.CityLat,
		"cityLng":              trip.CityLng,
		"startDate":            trip.StartDate,
		"endDate":              trip.EndDate,
		"defaultStartTime":     trip.DefaultStartTime,
		"defaultEndTime":       trip.DefaultEndTime,
		"defaultTransportMode": trip.DefaultTransport,
		"days":                 trip.Days,
	})
}

// PUT /api/trips/:id
func UpdateTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tripID := ps.ByName("id")
	trip, ok := findTrip(ctx, tripID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Trip not found")
		return
	}
	if trip.UserID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := bson.M{"$set": bson.M{
		"title":      req.Title,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
		"city":       req.City,
		"updated_at": time.Now(),
	}}
	if _, err := db.TripsCollection.UpdateOne(ctx, bson.M{"tripid": tripID}, update); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating trip")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Trip updated"})
}

// DELETE /api/trips/:id
func DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tripID := ps.ByName("id")
	trip, ok := findTrip(ctx, tripID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Trip not found")
		return
	}
	if trip.UserID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	update := bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now()}}
	if _, err := db.TripsCollection.UpdateOne(ctx, bson.M{"tripid": tripID}, update); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error deleting trip")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Trip deleted"})
}

// PUT /api/trips/:id/days/:dayIndex/items — replaces the day's items
// wholesale, rebuilds its legs and recalculates them.
func ReplaceDayItems(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dayIndex, err := strconv.Atoi(ps.ByName("dayIndex"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid day index")
		return
	}

	var items []models.TripItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	tripID := ps.ByName("id")
	trip, ok := findTrip(ctx, tripID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Trip not found")
		return
	}
	if trip.UserID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	day := findDay(trip, dayIndex)
	if day == nil {
		utils.Error(w, http.StatusNotFound, "Day not found")
		return
	}

	day.Items = normalizeItems(items)
	day.Legs = dirtyLegs(day.Items, trip.DefaultTransport)
	CalcLegs(ctx, day)

	if err := saveDay(ctx, tripID, day); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error saving day")
		return
	}
	utils.JSON(w, http.StatusOK, day)
}

type dayTimesRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// PUT /api/trips/:id/days/:dayIndex/times
func UpdateDayTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dayIndex, err := strconv.Atoi(ps.ByName("dayIndex"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid day index")
		return
	}
	var req dayTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tripID := ps.ByName("id")
	trip, ok := findTrip(ctx, tripID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Trip not found")
		return
	}
	if trip.UserID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}
	day := findDay(trip, dayIndex)
	if day == nil {
		utils.Error(w, http.StatusNotFound, "Day not found")
		return
	}

	if req.StartTime != "" {
		day.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		day.EndTime = req.EndTime
	}
	if err := saveDay(ctx, tripID, day); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error saving day")
		return
	}
	utils.JSON(w, http.StatusOK, day)
}

// POST /api/trips/:id/days/:dayIndex/recalc — drops cached leg results
// and recomputes them.
func RecalcDayLegs(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dayIndex, err := strconv.Atoi(ps.ByName("dayIndex"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid day index")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	tripID := ps.ByName("id")
	trip, ok := findTrip(ctx, tripID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Trip not found")
		return
	}
	if trip.UserID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}
	day := findDay(trip, dayIndex)
	if day == nil {
		utils.Error(w, http.StatusNotFound, "Day not found")
		return
	}

	day.Legs = dirtyLegs(day.Items, trip.DefaultTransport)
	CalcLegs(ctx, day)

	if err := saveDay(ctx, tripID, day); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error saving day")
		return
	}
	utils.JSON(w, http.StatusOK, day.Legs)
}

func findTrip(ctx context.Context, tripID string) (*models.Trip, bool) {
	var trip models.Trip
	filter := bson.M{"tripid": tripID, "deleted": bson.M{"$ne": true}}
	if err := db.TripsCollection.FindOne(ctx, filter).Decode(&trip); err != nil {
		return nil, false
	}
	return &trip, true
}

func findDay(trip *models.Trip, dayIndex int) *models.TripDay {
	for i := range trip.Days {
		if trip.Days[i].DayIndex == dayIndex {
			return &trip.Days[i]
		}
	}
	return nil
}

func saveDay(ctx context.Context, tripID string, day *models.TripDay) error {
	filter := bson.M{"tripid": tripID, "days.day_index": day.DayIndex}
	update := bson.M{"$set": bson.M{"days.$": day, "updated_at": time.Now()}}
	_, err := db.TripsCollection.UpdateOne(ctx, filter, update)
	return err
}
