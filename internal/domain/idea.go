package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Engagement is one like/dislike/view entry. Like and dislike are sets
// (a user appears at most once, and never in both); views are raw appends.
type Engagement struct {
	User      primitive.ObjectID `bson:"user"       json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type EditSnapshot struct {
	Content   string    `bson:"content"    json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type Comment struct {
	ID          primitive.ObjectID `bson:"_id"          json:"id"`
	Content     string             `bson:"content"      json:"content"`
	CreatedBy   primitive.ObjectID `bson:"created_by"   json:"createdBy"`
	CreatedAt   time.Time          `bson:"created_at"   json:"createdAt"`
	IsAnonymous bool               `bson:"is_anonymous" json:"isAnonymous"`
	EditHistory []EditSnapshot     `bson:"edit_history" json:"editHistory"`
}

type Document struct {
	ContentType string `bson:"content_type" json:"contentType"`
	Name        string `bson:"name"         json:"name"`
	URL         string `bson:"url"          json:"url"`
}

// Idea is the central aggregate. Comments and engagement entries are
// embedded children; every mutation is a single-document update.
type Idea struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title"         json:"title"`
	Description string             `bson:"description"   json:"description"`
	Documents   []Document         `bson:"documents"     json:"documents"`
	Category    primitive.ObjectID `bson:"category"      json:"category"`
	Thread      primitive.ObjectID `bson:"thread"        json:"thread"`
	Department  primitive.ObjectID `bson:"department"    json:"department"`
	IsAnonymous bool               `bson:"is_anonymous"  json:"isAnonymous"`
	Like        []Engagement       `bson:"like"          json:"like"`
	Dislike     []Engagement       `bson:"dislike"       json:"dislike"`
	Views       []Engagement       `bson:"views"         json:"views"`
	Comments    []Comment          `bson:"comments"      json:"comments"` // newest first
	Subscribers []Engagement       `bson:"subscribers"   json:"subscribers"`
	CreatedAt   time.Time          `bson:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at"    json:"updatedAt"`
	UpdatedBy   primitive.ObjectID `bson:"updated_by"    json:"updatedBy"`
}

func (i *Idea) CommentByID(id primitive.ObjectID) *Comment {
	for k := range i.Comments {
		if i.Comments[k].ID == id {
			return &i.Comments[k]
		}
	}
	return nil
}

func (i *Idea) HasLike(user primitive.ObjectID) bool    { return hasUser(i.Like, user) }
func (i *Idea) HasDislike(user primitive.ObjectID) bool { return hasUser(i.Dislike, user) }
func (i *Idea) HasView(user primitive.ObjectID) bool    { return hasUser(i.Views, user) }

// VoteUpdate describes the like/dislike toggle decision for one actor.
// At most one push and the pulls apply together as one atomic update.
type VoteUpdate struct {
	User        primitive.ObjectID
	At          time.Time
	PullLike    bool
	PullDislike bool
	PushLike    bool
	PushDislike bool
}

func hasUser(set []Engagement, user primitive.ObjectID) bool {
	for _, e := range set {
		if e.User == user {
			return true
		}
	}
	return false
}
