// Package accompany is the travel-companion board: members post trips
// they want company on, others apply, and the author accepts or rejects.
package accompany

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tripmate/db"
	"tripmate/models"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	TripID  string `json:"trip_id"`
}

// POST /api/accompany
func CreateAccompanyPost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		utils.Error(w, http.StatusBadRequest, "Title is required")
		return
	}

	now := time.Now()
	post := models.AccompanyPost{
		PostID:         utils.GenerateRandomString(13),
		AuthorID:       userID,
		AuthorNickname: utils.GetUsernameFromRequest(r),
		TripID:         req.TripID,
		Title:          req.Title,
		Content:        req.Content,
		Status:         models.AccompanyOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.AccompanyCollection.InsertOne(ctx, post); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error creating post")
		return
	}
	utils.JSON(w, http.StatusCreated, post)
}

// GET /api/accompany?page=..&limit=..&search=..&status=..
func GetAccompanyPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{"deleted": bson.M{"$ne": true}}
	switch opts.Status {
	case models.AccompanyClosed:
		filter["status"] = models.AccompanyClosed
	case "ALL":
	default:
		filter["status"] = models.AccompanyOpen
	}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"content": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))
	cursor, err := db.AccompanyCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching posts")
		return
	}
	defer cursor.Close(ctx)

	posts := []models.AccompanyPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error decoding posts")
		return
	}
	utils.JSON(w, http.StatusOK, posts)
}

// GET /api/accompany/:id
func GetAccompanyPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	post, ok := findPost(ctx, ps.ByName("id"))
	if !ok {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	utils.JSON(w, http.StatusOK, post)
}

// PUT /api/accompany/:id
func UpdateAccompanyPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
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

	set := bson.M{"updated_at": time.Now()}
	if body.Title != "" {
		set["title"] = body.Title
	}
	if body.Content != "" {
		set["content"] = body.Content
	}
	if _, err := db.AccompanyCollection.UpdateOne(ctx, bson.M{"postid": postID}, bson.M{"$set": set}); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating post")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Post updated"})
}

// PUT /api/accompany/:id/close
func CloseAccompanyPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	update := bson.M{"$set": bson.M{"status": models.AccompanyClosed, "updated_at": time.Now()}}
	if _, err := db.AccompanyCollection.UpdateOne(ctx, bson.M{"postid": postID}, update); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error closing post")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Post closed"})
}

// DELETE /api/accompany/:id
func DeleteAccompanyPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	update := bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now()}}
	if _, err := db.AccompanyCollection.UpdateOne(ctx, bson.M{"postid": postID}, update); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error deleting post")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Post deleted"})
}

func findPost(ctx context.Context, postID string) (*models.AccompanyPost, bool) {
	var post models.AccompanyPost
	filter := bson.M{"postid": postID, "deleted": bson.M{"$ne": true}}
	if err := db.AccompanyCollection.FindOne(ctx, filter).Decode(&post); err != nil {
		return nil, false
	}
	return &post, true
}
