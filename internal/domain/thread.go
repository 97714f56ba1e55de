package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ThreadStatus string

const (
	ThreadActive      ThreadStatus = "ACTIVE"
	ThreadSoftExpired ThreadStatus = "SOFT_EXPIRED"
	ThreadExpired     ThreadStatus = "EXPIRED"
)

// Thread is a time-boxed campaign. Status is derived once at creation;
// anything that gates on closure must compare against the dates, not the
// stored status (the document is never re-derived afterwards).
type Thread struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"      json:"id"`
	Name             string             `bson:"name"               json:"name"`
	Description      string             `bson:"description"        json:"description"`
	Note             string             `bson:"note"               json:"note"`
	ClosureDate      time.Time          `bson:"closure_date"       json:"closureDate"`
	FinalClosureDate time.Time          `bson:"final_closure_date" json:"finalClosureDate"`
	Status           ThreadStatus       `bson:"status"             json:"status"`
	CreatedAt        time.Time          `bson:"created_at"         json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at"         json:"updatedAt"`
	UpdatedBy        primitive.ObjectID `bson:"updated_by"         json:"updatedBy"`
}

// StatusAt derives the closure state relative to now.
func (t *Thread) StatusAt(now time.Time) ThreadStatus {
	switch {
	case t.FinalClosureDate.Before(now):
		return ThreadExpired
	case t.ClosureDate.Before(now):
		return ThreadSoftExpired
	default:
		return ThreadActive
	}
}

// AcceptsSubmissions reports whether ideas/comments may still be added.
func (t *Thread) AcceptsSubmissions(now time.Time) bool {
	return now.Before(t.FinalClosureDate)
}
