package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EntityStatus string

const (
	StatusActive   EntityStatus = "ACTIVE"
	StatusInactive EntityStatus = "INACTIVE"
)

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Status    EntityStatus       `bson:"status"        json:"status"`
	CreatedAt time.Time          `bson:"created_at"    json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at"    json:"updatedAt"`
	UpdatedBy primitive.ObjectID `bson:"updated_by"    json:"updatedBy"`
}

type Department struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Note      string             `bson:"note"          json:"note"`
	Status    EntityStatus       `bson:"status"        json:"status"`
	CreatedAt time.Time          `bson:"created_at"    json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at"    json:"updatedAt"`
	UpdatedBy primitive.ObjectID `bson:"updated_by"    json:"updatedBy"`
}
