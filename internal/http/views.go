package http

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/service"
)

// Anonymity is decided here, once, by zeroing the author reference before
// the response is serialized. Identifiers stored on the documents never
// change; only the outward side hides them.

// redactIdea covers the mutation responses, which return the raw aggregate
// rather than the expanded detail view.
func redactIdea(i *domain.Idea) *domain.Idea {
	if i.IsAnonymous {
		i.UpdatedBy = primitive.NilObjectID
	}
	for k := range i.Comments {
		if i.Comments[k].IsAnonymous {
			i.Comments[k].CreatedBy = primitive.NilObjectID
		}
	}
	return i
}

func redactIdeaDetail(d *service.IdeaDetail) *service.IdeaDetail {
	if d.IsAnonymous {
		d.UpdatedBy = domain.UserRef{}
	}
	for i := range d.Comments {
		if d.Comments[i].IsAnonymous {
			d.Comments[i].CreatedBy = domain.UserRef{}
		}
	}
	return d
}

func redactIdeaList(l *service.IdeaList) *service.IdeaList {
	for i := range l.Ideas {
		if l.Ideas[i].IsAnonymous {
			l.Ideas[i].UpdatedBy = domain.UserRef{}
		}
	}
	return l
}

func redactNotifications(l *service.NotificationList) *service.NotificationList {
	for i := range l.Notifications {
		if l.Notifications[i].IsAnonymous {
			l.Notifications[i].Actor = domain.UserRef{}
		}
	}
	return l
}
