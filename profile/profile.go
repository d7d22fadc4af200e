// Package profile serves member profiles and avatar uploads.
package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tripmate/db"
	"tripmate/filemgr"
	"tripmate/models"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/profile/me
func GetMyProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var member models.Member
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&member); err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}
	utils.JSON(w, http.StatusOK, member)
}

// GET /api/profile/:id — public view with follow counts.
func GetProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var member models.Member
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": targetID}).Decode(&member); err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}

	var follows models.MemberFollow
	_ = db.FollowingsCollection.FindOne(ctx, bson.M{"userid": targetID}).Decode(&follows)

	callerID := utils.GetUserIDFromRequest(r)
	isFollowing := false
	for _, f := range follows.Followers {
		if f == callerID {
			isFollowing = true
			break
		}
	}

	utils.JSON(w, http.StatusOK, models.MemberProfile{
		UserID:         member.UserID,
		Username:       member.Username,
		Nickname:       member.Nickname,
		Bio:            member.Bio,
		ProfileImg:     member.ProfileImg,
		IsFollowing:    isFollowing,
		FollowersCount: len(follows.Followers),
		FollowingCount: len(follows.Follows),
	})
}

type updateProfileRequest struct {
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
}

// PUT /api/profile/me
func UpdateMyProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if req.Nickname != "" {
		set["nickname"] = req.Nickname
	}
	if req.Bio != "" {
		set["bio"] = req.Bio
	}
	_, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": set})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating profile")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Profile updated"})
}

// PUT /api/profile/me/avatar (multipart: avatar)
func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	_, thumbPath, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityAvatar)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Avatar upload failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"profile_img": thumbPath, "updated_at": time.Now()}})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error saving avatar")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"profile_img": thumbPath})
}
