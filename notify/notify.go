// Package notify stores per-user notifications raised by the social
// features (applications, follows, comments, group chats).
package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tripmate/db"
	"tripmate/models"
	"tripmate/rdx"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Push inserts a notification for userID. Failures are logged, never
// surfaced: a lost notification must not fail the action that raised it.
func Push(ctx context.Context, userID, notifType, message, entityType, entityID string) {
	notif := models.Notification{
		NotificationID: utils.GenerateRandomString(13),
		UserID:         userID,
		Type:           notifType,
		Message:        message,
		EntityType:     entityType,
		EntityID:       entityID,
		CreatedAt:      time.Now(),
	}
	if _, err := db.NotificationsCollection.InsertOne(ctx, notif); err != nil {
		log.Printf("failed to push notification to %s: %v", userID, err)
		return
	}

	// fan out to any live websocket listeners
	if data, err := json.Marshal(notif); err == nil {
		if err := rdx.RdxPublish(channelFor(userID), string(data)); err != nil {
			log.Printf("notification publish failed for %s: %v", userID, err)
		}
	}
}

func channelFor(userID string) string {
	return "notify:" + userID
}

// GET /api/notifications
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(50)
	cursor, err := db.NotificationsCollection.Find(ctx, bson.M{"userid": userID}, findOpts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching notifications")
		return
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error decoding notifications")
		return
	}
	utils.JSON(w, http.StatusOK, notifications)
}

// GET /api/notifications/unread
func GetUnreadCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.NotificationsCollection.CountDocuments(ctx, bson.M{"userid": userID, "read": false})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error counting notifications")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"unread": count})
}

// PUT /api/notifications/:id/read
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"notificationid": ps.ByName("id"), "userid": userID}
	result, err := db.NotificationsCollection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating notification")
		return
	}
	if result.MatchedCount == 0 {
		utils.Error(w, http.StatusNotFound, "Notification not found")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Marked read"})
}

// PUT /api/notifications/read-all
func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.NotificationsCollection.UpdateMany(ctx,
		bson.M{"userid": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating notifications")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "All marked read"})
}
