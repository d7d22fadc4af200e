// Package follow maintains the follower graph between members.
package follow

import (
	"context"
	"net/http"
	"time"

	"tripmate/db"
	"tripmate/models"
	"tripmate/notify"
	"tripmate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PUT /api/follows/:id
func FollowUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	targetID := ps.ByName("id")
	if targetID == userID {
		utils.Error(w, http.StatusBadRequest, "Cannot follow yourself")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var target models.Member
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": targetID}).Decode(&target); err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}

	upsert := options.Update().SetUpsert(true)
	_, err := db.FollowingsCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$addToSet": bson.M{"follows": targetID}}, upsert)
	if err == nil {
		_, err = db.FollowingsCollection.UpdateOne(ctx,
			bson.M{"userid": targetID},
			bson.M{"$addToSet": bson.M{"followers": userID}}, upsert)
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating follow state")
		return
	}

	notify.Push(ctx, targetID, models.NotifNewFollower, "You have a new follower", "member", userID)
	utils.JSON(w, http.StatusOK, utils.M{"message": "Followed"})
}

// DELETE /api/follows/:id
func UnfollowUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	targetID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.FollowingsCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"follows": targetID}})
	if err == nil {
		_, err = db.FollowingsCollection.UpdateOne(ctx,
			bson.M{"userid": targetID},
			bson.M{"$pull": bson.M{"followers": userID}})
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error updating follow state")
		return
	}
	utils.JSON(w, http.StatusOK, utils.M{"message": "Unfollowed"})
}

// GET /api/follows/:id
func GetFollowState(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var rec models.MemberFollow
	if err := db.FollowingsCollection.FindOne(ctx, bson.M{"userid": targetID}).Decode(&rec); err != nil {
		rec = models.MemberFollow{UserID: targetID}
	}

	callerID := utils.GetUserIDFromRequest(r)
	isFollowing := false
	for _, f := range rec.Followers {
		if f == callerID {
			isFollowing = true
			break
		}
	}

	utils.JSON(w, http.StatusOK, utils.M{
		"userid":       targetID,
		"followers":    len(rec.Followers),
		"following":    len(rec.Follows),
		"is_following": isFollowing,
	})
}

// GET /api/follows/:id/followers
func GetFollowers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listMembers(w, r, ps.ByName("id"), func(rec models.MemberFollow) []string { return rec.Followers })
}

// GET /api/follows/:id/following
func GetFollowing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listMembers(w, r, ps.ByName("id"), func(rec models.MemberFollow) []string { return rec.Follows })
}

func listMembers(w http.ResponseWriter, r *http.Request, targetID string, pick func(models.MemberFollow) []string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var rec models.MemberFollow
	if err := db.FollowingsCollection.FindOne(ctx, bson.M{"userid": targetID}).Decode(&rec); err != nil {
		utils.JSON(w, http.StatusOK, []models.MemberProfile{})
		return
	}
	ids := pick(rec)
	if len(ids) == 0 {
		utils.JSON(w, http.StatusOK, []models.MemberProfile{})
		return
	}

	profiles, err := utils.FindAndDecode[models.MemberProfile](ctx, db.UserCollection,
		bson.M{"userid": bson.M{"$in": ids}})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching members")
		return
	}
	utils.JSON(w, http.StatusOK, profiles)
}
