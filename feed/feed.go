// Package feed is the trip-talk board: short posts with images, likes
// and comments.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tripmate/db"
	"tripmate/filemgr"
	"tripmate/models"
	"tripmate/notify"
	"tripmate/rdx"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/feed (multipart: text, optional images, optional trip_id)
func CreatePost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	text := r.FormValue("text")
	if text == "" {
		utils.Error(w, http.StatusBadRequest, "Text is required")
		return
	}

	var images []string
	if r.MultipartForm != nil {
		var err error
		images, err = filemgr.SaveFormImages(r.MultipartForm, "images", filemgr.EntityPost)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Image upload failed")
			return
		}
	}

	now := time.Now()
	post := models.Post{
		PostID:    utils.GenerateRandomString(13),
		UserID:    userID,
		Username:  utils.GetUsernameFromRequest(r),
		Text:      text,
		Images:    images,
		TripID:    r.FormValue("trip_id"),
		City:      r.FormValue("city"),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.PostsCollection.InsertOne(ctx, post); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error creating post")
		return
	}
	utils.JSON(w, http.StatusCreated, post)
}

// GET /api/feed?page=..&limit=..&city=..
func GetPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{"deleted": bson.M{"$ne": true}}
	if city := r.URL.Query().Get("city"); city != "" {
		filter["city"] = city
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))
	cursor, err := db.PostsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching posts")
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error decoding posts")
		return
	}

	// overlay cached like counts
	for i := range posts {
		if raw, err := rdx.RdxGet(likeKey(posts[i].PostID)); err == nil && raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				posts[i].Likes = n
			}
		}
	}
	utils.JSON(w, http.StatusOK, posts)
}

// GET /api/feed/:id
func GetPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var post models.Post
	filter := bson.M{"postid": ps.ByName("id"), "deleted": bson.M{"$ne": true}}
	if err := db.PostsCollection.FindOne(ctx, filter).Decode(&post); err != nil {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	if raw, err := rdx.RdxGet(likeKey(post.PostID)); err == nil && raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			post.Likes = n
		}
	}
	utils.JSON(w, http.StatusOK, post)
}

// DELETE /api/feed/:id
func DeletePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	postID := ps.ByName("id")
	var post models.Post
	if err := db.PostsCollection.FindOne(ctx, bson.M{"postid": postID}).Decode(&post); err != nil {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	if post.UserID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	_, err := db.PostsCollection.UpdateOne(ctx, bson.M{"postid": postID}, bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error deleting post")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Post deleted"})
}

// PUT /api/feed/:id/like — toggles the caller's like. The count lives in
// Redis (a hash tracks who liked) and is flushed into the document.
func ToggleLike(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var post models.Post
	filter := bson.M{"postid": postID, "deleted": bson.M{"$ne": true}}
	if err := db.PostsCollection.FindOne(ctx, filter).Decode(&post); err != nil {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	likersKey := fmt.Sprintf("post:%s:likers", postID)
	liked := false
	if _, err := rdx.RdxHget(likersKey, userID); err == nil {
		_ = rdx.RdxHdel(likersKey, userID)
	} else {
		_ = rdx.RdxHset(likersKey, userID, "1")
		liked = true
	}

	count := countLikers(likersKey)
	_ = rdx.RdxSet(likeKey(postID), strconv.Itoa(count))

	_, err := db.PostsCollection.UpdateOne(ctx, bson.M{"postid": postID}, bson.M{"$set": bson.M{"likes": count}})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating likes")
		return
	}

	if liked && post.UserID != userID {
		notify.Push(ctx, post.UserID, models.NotifPostLike, "Someone liked your post", "post", postID)
	}
	utils.JSON(w, http.StatusOK, utils.M{"liked": liked, "likes": count})
}

// POST /api/feed/:id/comments
func CreateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID := ps.ByName("id")

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		utils.Error(w, http.StatusBadRequest, "Text is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var post models.Post
	filter := bson.M{"postid": postID, "deleted": bson.M{"$ne": true}}
	if err := db.PostsCollection.FindOne(ctx, filter).Decode(&post); err != nil {
		utils.Error(w, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.Comment{
		CommentID: utils.GenerateRandomString(13),
		PostID:    postID,
		UserID:    userID,
		Username:  utils.GetUsernameFromRequest(r),
		Text:      body.Text,
		CreatedAt: time.Now(),
	}
	if _, err := db.CommentsCollection.InsertOne(ctx, comment); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error creating comment")
		return
	}
	_, _ = db.PostsCollection.UpdateOne(ctx, bson.M{"postid": postID}, bson.M{"$inc": bson.M{"comment_count": 1}})

	if post.UserID != userID {
		notify.Push(ctx, post.UserID, models.NotifPostComment, "New comment on your post", "post", postID)
	}
	utils.JSON(w, http.StatusCreated, comment)
}

// GET /api/feed/:id/comments
func GetComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	comments, err := utils.FindAndDecode[models.Comment](ctx, db.CommentsCollection, bson.M{"postid": ps.ByName("id")})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching comments")
		return
	}
	utils.JSON(w, http.StatusOK, comments)
}

func likeKey(postID string) string {
	return "post:" + postID + ":likes"
}

func countLikers(likersKey string) int {
	fields, err := rdx.RdxHgetall(likersKey)
	if err != nil {
		return 0
	}
	return len(fields)
}
