package queue

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routing keys on the topic exchange.
const (
	KeyIdeaCreated    = "idea.created"
	KeyIdeaCommented  = "idea.commented"
	KeyUserRegistered = "user.registered"
)

type IdeaCreated struct {
	IdeaID      primitive.ObjectID `json:"idea_id"`
	Title       string             `json:"title"`
	ThreadID    primitive.ObjectID `json:"thread_id"`
	IsAnonymous bool               `json:"is_anonymous"`
}

type IdeaCommented struct {
	IdeaID      primitive.ObjectID `json:"idea_id"`
	CommentID   primitive.ObjectID `json:"comment_id"`
	IsAnonymous bool               `json:"is_anonymous"`
}

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Role   string             `json:"role"`
}
