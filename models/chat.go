package models

import "time"

// RegionMessage is a message posted into a per-city region room.
type RegionMessage struct {
	MessageID string    `json:"id" bson:"messageid"`
	City      string    `json:"city" bson:"city"`
	UserID    string    `json:"userid" bson:"userid"`
	Nickname  string    `json:"nickname" bson:"nickname"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Chat is a direct conversation between trip companions.
type Chat struct {
	ChatID    string    `json:"chatid" bson:"chatid"`
	Users     []string  `json:"users" bson:"users"`
	TripID    string    `json:"trip_id,omitempty" bson:"trip_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Message struct {
	MessageID string    `json:"messageid" bson:"messageid"`
	ChatID    string    `json:"chatid" bson:"chatid"`
	UserID    string    `json:"userid" bson:"userid"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
