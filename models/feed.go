package models

import "time"

type Post struct {
	PostID         string    `json:"postid" bson:"postid"`
	UserID         string    `json:"userid" bson:"userid"`
	Username       string    `json:"username" bson:"username"`
	Text           string    `json:"text" bson:"text"`
	Images         []string  `json:"images,omitempty" bson:"images,omitempty"`
	TripID         string    `json:"trip_id,omitempty" bson:"trip_id,omitempty"`
	City           string    `json:"city,omitempty" bson:"city,omitempty"`
	Likes          int       `json:"likes" bson:"likes"`
	CommentCount   int       `json:"comment_count" bson:"comment_count"`
	LikedByCaller  bool      `json:"liked_by_caller,omitempty" bson:"-"`
	Deleted        bool      `json:"-" bson:"deleted,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

type Comment struct {
	CommentID string    `json:"commentid" bson:"commentid"`
	PostID    string    `json:"postid" bson:"postid"`
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
