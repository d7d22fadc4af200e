package export

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"tripmate/db"
	"tripmate/globals"
	"tripmate/models"
	"tripmate/planner"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// qrPayload returns "trip|<tripID>|<signature>" so a scanner can verify the
// document came from us.
func qrPayload(tripID string) string {
	data := "trip|" + tripID
	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	return data + "|" + base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// ExportTripPDF renders the caller's trip as a printable day-by-day PDF with a
// QR code pointing back at the trip.
func ExportTripPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	tripID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var trip models.Trip
	err := db.TripsCollection.FindOne(ctx, bson.M{
		"tripid":  tripID,
		"deleted": bson.M{"$ne": true},
	}).Decode(&trip)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "trip not found")
		return
	}
	if trip.UserID != userID {
		utils.Error(w, http.StatusForbidden, "not your trip")
		return
	}

	qrPNG, err := qrcode.Encode(qrPayload(trip.TripID), qrcode.Medium, 256)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(40, 10, fmt.Sprintf("%s (%s ~ %s)", trip.City, trip.StartDate, trip.EndDate))
	pdf.Ln(14)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	for _, day := range trip.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, fmt.Sprintf("Day %d  %s", day.DayIndex, day.Date))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 11)

		if len(day.Items) == 0 {
			pdf.Cell(0, 8, "(no places planned)")
			pdf.Ln(8)
			continue
		}

		entries := daySchedule(&trip, &day)
		for i, item := range day.Items {
			line := fmt.Sprintf("%s - %s  %s",
				planner.FormatHHMM(entries[i].Arrive),
				planner.FormatHHMM(entries[i].Depart),
				item.NameSnapshot)
			if item.StayMin > 0 {
				line += fmt.Sprintf("  (%d min)", item.StayMin)
			}
			pdf.Cell(0, 8, line)
			pdf.Ln(7)
			if entries[i].TravelMinFromPrev > 0 {
				pdf.SetFont("Arial", "I", 9)
				pdf.Cell(0, 6, fmt.Sprintf("    ~%d min travel", entries[i].TravelMinFromPrev))
				pdf.Ln(6)
				pdf.SetFont("Arial", "", 11)
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=trip-"+trip.TripID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// daySchedule rebuilds the arrive/depart clock for a stored day from its
// saved legs.
func daySchedule(trip *models.Trip, day *models.TripDay) []planner.Entry {
	itinerary := planner.DayItinerary{
		DayIndex: day.DayIndex,
		DayStart: planner.ParseHHMM(firstNonEmpty(day.StartTime, trip.DefaultStartTime), 10*60),
		DayEnd:   planner.ParseHHMM(firstNonEmpty(day.EndTime, trip.DefaultEndTime), 20*60),
	}
	for _, item := range day.Items {
		itinerary.Stops = append(itinerary.Stops, planner.Stop{
			ID:          item.ItemID,
			Name:        item.NameSnapshot,
			Lat:         item.Lat,
			Lon:         item.Lng,
			DurationMin: item.StayMin,
		})
	}

	travel := planner.TravelTable{}
	for _, leg := range day.Legs {
		travel[planner.LegKey{From: leg.FromItemID, To: leg.ToItemID}] = (leg.DurationSec + 59) / 60
	}
	return itinerary.Timetable(travel)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
