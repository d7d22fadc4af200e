package models

import "time"

type Member struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Nickname      string    `json:"nickname" bson:"nickname"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	Bio           string    `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfileImg    string    `json:"profile_img,omitempty" bson:"profile_img,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// MemberProfile is the public view of a member.
type MemberProfile struct {
	UserID         string `json:"userid" bson:"userid"`
	Username       string `json:"username" bson:"username"`
	Nickname       string `json:"nickname" bson:"nickname"`
	Bio            string `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfileImg     string `json:"profile_img,omitempty" bson:"profile_img,omitempty"`
	IsFollowing    bool   `json:"is_following"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
}

type MemberFollow struct {
	UserID    string   `json:"userid" bson:"userid"`
	Follows   []string `json:"follows,omitempty" bson:"follows,omitempty"`
	Followers []string `json:"followers,omitempty" bson:"followers,omitempty"`
}
