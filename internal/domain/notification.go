package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotifySubmission NotificationType = "SUBMISSION"
	NotifyNewComment NotificationType = "NEW_COMMENT"
	NotifyUpdate     NotificationType = "UPDATE"
)

// IdeaNotification is one in-app notification row; the fan-out creates one
// per recipient. Only the receiver may flip the read flag.
type IdeaNotification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content     string             `bson:"content"       json:"content"`
	Type        NotificationType   `bson:"type"          json:"type"`
	Idea        primitive.ObjectID `bson:"idea"          json:"idea"`
	Receiver    primitive.ObjectID `bson:"receiver"      json:"receiver"`
	Read        bool               `bson:"read"          json:"read"`
	IsAnonymous bool               `bson:"is_anonymous"  json:"isAnonymous"`
	CreatedAt   time.Time          `bson:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at"    json:"updatedAt"`
	UpdatedBy   primitive.ObjectID `bson:"updated_by"    json:"updatedBy"`
}
