package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tripmate/db"
	"tripmate/models"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListChats returns the caller's conversations, most recently active first.
func ListChats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := db.ChatsCollection.Find(ctx, bson.M{"users": userID}, opts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch chats")
		return
	}
	defer cursor.Close(ctx)

	chats := []models.Chat{}
	if err := cursor.All(ctx, &chats); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to decode chats")
		return
	}
	utils.JSON(w, http.StatusOK, chats)
}

// GetChat returns one conversation the caller belongs to.
func GetChat(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	chat, err := findMemberChat(ctx, ps.ByName("id"), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "chat not found")
		return
	}
	utils.JSON(w, http.StatusOK, chat)
}

// GetMessages returns a page of a chat's messages in chronological order.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	chat, err := findMemberChat(ctx, ps.ByName("id"), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "chat not found")
		return
	}

	q := utils.ParseQueryOptions(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := db.MessagesCollection.Find(ctx, bson.M{"chatid": chat.ChatID}, opts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to fetch messages")
		return
	}
	defer cursor.Close(ctx)

	msgs := []models.Message{}
	if err := cursor.All(ctx, &msgs); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to decode messages")
		return
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	utils.JSON(w, http.StatusOK, msgs)
}

// SendMessage appends a message to a chat the caller belongs to.
func SendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		utils.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	chat, err := findMemberChat(ctx, ps.ByName("id"), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "chat not found")
		return
	}

	msg := models.Message{
		MessageID: utils.GenerateRandomString(16),
		ChatID:    chat.ChatID,
		UserID:    userID,
		Content:   body.Content,
		CreatedAt: time.Now(),
	}
	if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	if _, err := db.ChatsCollection.UpdateOne(ctx,
		bson.M{"chatid": chat.ChatID},
		bson.M{"$set": bson.M{"updated_at": msg.CreatedAt}},
	); err != nil {
		log.Printf("failed to bump chat %s: %v", chat.ChatID, err)
	}

	utils.JSON(w, http.StatusCreated, msg)
}

func findMemberChat(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	var chat models.Chat
	err := db.ChatsCollection.FindOne(ctx, bson.M{
		"chatid": chatID,
		"users":  userID,
	}).Decode(&chat)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}
