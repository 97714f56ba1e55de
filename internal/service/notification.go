package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/repo"
)

type NotificationService struct {
	notes NotificationStore
	users UserStore
}

func NewNotificationService(notes NotificationStore, users UserStore) *NotificationService {
	return &NotificationService{notes: notes, users: users}
}

type NotificationView struct {
	domain.IdeaNotification
	Actor domain.UserRef `json:"actor"`
}

type NotificationList struct {
	Notifications []NotificationView `json:"notifications"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	TotalPage     int                `json:"totalPage"`
}

// List returns the receiver's notifications, newest first, with the
// triggering actor expanded. Anonymous entries keep the actor attached
// here; the HTTP layer strips it before responding.
func (s *NotificationService) List(ctx context.Context, receiver primitive.ObjectID, p domain.ListParams) (*NotificationList, error) {
	notes, total, err := s.notes.ListNotifications(ctx, receiver, p)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.UpdatedBy)
	}
	refs, err := s.users.FindUserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationView, 0, len(notes))
	for _, n := range notes {
		out = append(out, NotificationView{IdeaNotification: n, Actor: refOrID(refs, n.UpdatedBy)})
	}
	return &NotificationList{
		Notifications: out,
		Total:         total,
		Page:          p.Page + 1,
		TotalPage:     domain.TotalPages(total, p.Limit),
	}, nil
}

// MarkRead flips the read flag. Only the receiver may do it.
func (s *NotificationService) MarkRead(ctx context.Context, id, receiver primitive.ObjectID) (*domain.IdeaNotification, error) {
	n, err := s.notes.FindNotificationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperr.ErrNotificationNotExist
	}
	if n.Receiver != receiver {
		return nil, apperr.ErrReadOtherNotification
	}
	updated, err := s.notes.MarkNotificationRead(ctx, id, receiver)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrNotificationNotExist
	}
	return updated, err
}
