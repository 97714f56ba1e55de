package repo

import (
	"context"
	"time"

	"github.com/tazhibayda/idea-service/internal/domain"
)

// InsertEvent appends to the audit log. The collection is write-only from
// the application's point of view.
func (s *Store) InsertEvent(ctx context.Context, e *domain.Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.colEvents.InsertOne(ctx, e)
	return err
}
