package models

import "time"

// Notification types.
const (
	NotifAccompanyApplication = "ACCOMPANY_APPLICATION"
	NotifApplicationAccepted  = "APPLICATION_ACCEPTED"
	NotifApplicationRejected  = "APPLICATION_REJECTED"
	NotifGroupChatCreated     = "GROUP_CHAT_CREATED"
	NotifNewFollower          = "NEW_FOLLOWER"
	NotifPostComment          = "POST_COMMENT"
	NotifPostLike             = "POST_LIKE"
)

type Notification struct {
	NotificationID string    `json:"id" bson:"notificationid"`
	UserID         string    `json:"userid" bson:"userid"`
	Type           string    `json:"type" bson:"type"`
	Message        string    `json:"message" bson:"message"`
	EntityType     string    `json:"entity_type,omitempty" bson:"entity_type,omitempty"`
	EntityID       string    `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
