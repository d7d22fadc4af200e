package models

import "time"

// Companion-board post status.
const (
	AccompanyOpen   = "OPEN"
	AccompanyClosed = "CLOSED"
)

// Application status.
const (
	ApplicationPending  = "PENDING"
	ApplicationAccepted = "ACCEPTED"
	ApplicationRejected = "REJECTED"
)

type AccompanyPost struct {
	PostID         string    `json:"id" bson:"postid"`
	AuthorID       string    `json:"author_id" bson:"author_id"`
	AuthorNickname string    `json:"author_nickname" bson:"author_nickname"`
	TripID         string    `json:"trip_id" bson:"trip_id"`
	Title          string    `json:"title" bson:"title"`
	Content        string    `json:"content" bson:"content"`
	Status         string    `json:"status" bson:"status"`
	Deleted        bool      `json:"-" bson:"deleted,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

type AccompanyApplication struct {
	ApplicationID     string    `json:"id" bson:"applicationid"`
	PostID            string    `json:"post_id" bson:"post_id"`
	ApplicantID       string    `json:"applicant_id" bson:"applicant_id"`
	ApplicantNickname string    `json:"applicant_nickname" bson:"applicant_nickname"`
	Message           string    `json:"message" bson:"message"`
	Status            string    `json:"status" bson:"status"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

type AccompanyComment struct {
	CommentID      string    `json:"id" bson:"commentid"`
	PostID         string    `json:"post_id" bson:"post_id"`
	AuthorID       string    `json:"author_id" bson:"author_id"`
	AuthorNickname string    `json:"author_nickname" bson:"author_nickname"`
	Content        string    `json:"content" bson:"content"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
