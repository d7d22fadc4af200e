package accompany

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tripmate/db"
	"tripmate/models"
	"tripmate/notify"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// POST /api/accompany/:id/applications
// Guards: no applying to closed posts, no applying to your own post, no
// duplicate applications.
func Apply(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID := ps.ByName("id")

	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	post, ok := findPost(ctx, postID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.Status == models.AccompanyClosed {
		utils.Error(w, http.StatusConflict, "Post is closed")
		return
	}
	if post.AuthorID == userID {
		utils.Error(w, http.StatusConflict, "Cannot apply to your own post")
		return
	}

	dup := db.ApplicationsCollection.FindOne(ctx, bson.M{"post_id": postID, "applicant_id": userID})
	if dup.Err() == nil {
		utils.Error(w, http.StatusConflict, "Already applied")
		return
	} else if dup.Err() != mongo.ErrNoDocuments {
		utils.Error(w, http.StatusInternalServerError, "Error checking applications")
		return
	}

	app := models.AccompanyApplication{
		ApplicationID:     utils.GenerateRandomString(13),
		PostID:            postID,
		ApplicantID:       userID,
		ApplicantNickname: utils.GetUsernameFromRequest(r),
		Message:           body.Message,
		Status:            models.ApplicationPending,
		CreatedAt:         time.Now(),
	}
	if _, err := db.ApplicationsCollection.InsertOne(ctx, app); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error creating application")
		return
	}

	notify.Push(ctx, post.AuthorID, models.NotifAccompanyApplication,
		"New application on your companion post", "accompany", postID)
	utils.JSON(w, http.StatusCreated, app)
}

// GET /api/accompany/:id/applications — post author only.
func GetApplications(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	post, ok := findPost(ctx, postID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.AuthorID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	apps, err := utils.FindAndDecode[models.AccompanyApplication](ctx, db.ApplicationsCollection, bson.M{"post_id": postID})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching applications")
		return
	}
	utils.JSON(w, http.StatusOK, apps)
}

// PUT /api/accompany/:id/applications/:appId/accept
func AcceptApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideApplication(w, r, ps, models.ApplicationAccepted)
}

// PUT /api/accompany/:id/applications/:appId/reject
func RejectApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideApplication(w, r, ps, models.ApplicationRejected)
}

func decideApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params, status string) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	postID := ps.ByName("id")
	post, ok := findPost(ctx, postID)
	if !ok {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.AuthorID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	appID := ps.ByName("appId")
	var app models.AccompanyApplication
	if err := db.ApplicationsCollection.FindOne(ctx, bson.M{"applicationid": appID, "post_id": postID}).Decode(&app); err != nil {
		utils.Error(w, http.StatusNotFound, "Application not found")
		return
	}

	update := bson.M{"$set": bson.M{"status": status}}
	if _, err := db.ApplicationsCollection.UpdateOne(ctx, bson.M{"applicationid": appID}, update); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating application")
		return
	}

	if status == models.ApplicationAccepted {
		notify.Push(ctx, app.ApplicantID, models.NotifApplicationAccepted,
			"Your application was accepted", "accompany", postID)
		createCompanionChat(ctx, post, &app)
	} else {
		notify.Push(ctx, app.ApplicantID, models.NotifApplicationRejected,
			"Your application was rejected", "accompany", postID)
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Application " + status})
}

// createCompanionChat opens a direct chat between author and accepted
// applicant, reusing an existing one if the pair already talked.
func createCompanionChat(ctx context.Context, post *models.AccompanyPost, app *models.AccompanyApplication) {
	filter := bson.M{"users": bson.M{"$all": []string{post.AuthorID, app.ApplicantID}}}
	var existing models.Chat
	if err := db.ChatsCollection.FindOne(ctx, filter).Decode(&existing); err == nil {
		return
	}

	now := time.Now()
	chat := models.Chat{
		ChatID:    utils.GenerateRandomString(13),
		Users:     []string{post.AuthorID, app.ApplicantID},
		TripID:    post.TripID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.ChatsCollection.InsertOne(ctx, chat); err != nil {
		return
	}
	notify.Push(ctx, app.ApplicantID, models.NotifGroupChatCreated,
		"A chat was opened with the post author", "chat", chat.ChatID)
	notify.Push(ctx, post.AuthorID, models.NotifGroupChatCreated,
		"A chat was opened with your new companion", "chat", chat.ChatID)
}

// POST /api/accompany/:id/comments
func CreateAccompanyComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID := ps.ByName("id")

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		utils.Error(w, http.StatusBadRequest, "Content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := findPost(ctx, postID); !ok {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.AccompanyComment{
		CommentID:      utils.GenerateRandomString(13),
		PostID:         postID,
		AuthorID:       userID,
		AuthorNickname: utils.GetUsernameFromRequest(r),
		Content:        body.Content,
		CreatedAt:      time.Now(),
	}
	if _, err := db.AccompanyCommentsColl.InsertOne(ctx, comment); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error creating comment")
		return
	}
	utils.JSON(w, http.StatusCreated, comment)
}

// GET /api/accompany/:id/comments
func GetAccompanyComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	comments, err := utils.FindAndDecode[models.AccompanyComment](ctx, db.AccompanyCommentsColl, bson.M{"post_id": ps.ByName("id")})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching comments")
		return
	}
	utils.JSON(w, http.StatusOK, comments)
}
