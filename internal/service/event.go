package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/domain"
)

// Events appends to the audit log. The application only ever writes it.
type Events struct {
	store EventStore
	Now   func() time.Time
}

func NewEvents(store EventStore) *Events { return &Events{store: store} }

func (e *Events) Log(ctx context.Context, schema domain.EventSchema, action domain.EventAction, schemaID, actor primitive.ObjectID, description string) error {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}
	return e.store.InsertEvent(ctx, &domain.Event{
		Schema:      schema,
		Action:      action,
		SchemaID:    schemaID,
		Actor:       actor,
		Description: description,
		CreatedAt:   now,
	})
}
