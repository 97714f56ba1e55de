package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventSchema string

const (
	SchemaUser             EventSchema = "USER"
	SchemaDepartment       EventSchema = "DEPARTMENT"
	SchemaThread           EventSchema = "THREAD"
	SchemaCategory         EventSchema = "CATEGORY"
	SchemaIdea             EventSchema = "IDEA"
	SchemaIdeaNotification EventSchema = "IDEA_NOTIFICATION"
)

type EventAction string

const (
	ActionCreate EventAction = "CREATE"
	ActionRead   EventAction = "READ"
	ActionUpdate EventAction = "UPDATE"
	ActionDelete EventAction = "DELETE"
)

// Event is the append-only audit record. Written after every successful
// handler operation, never read back by the application.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Schema      EventSchema        `bson:"schema"        json:"schema"`
	Action      EventAction        `bson:"action"        json:"action"`
	SchemaID    primitive.ObjectID `bson:"schema_id,omitempty" json:"schemaId,omitempty"`
	Actor       primitive.ObjectID `bson:"actor"         json:"actor"`
	Description string             `bson:"description"   json:"description"`
	CreatedAt   time.Time          `bson:"created_at"    json:"createdAt"`
}
