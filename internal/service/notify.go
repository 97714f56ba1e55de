package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/log"
	"github.com/tazhibayda/idea-service/internal/mail"
	"github.com/tazhibayda/idea-service/internal/metrics"
	"github.com/tazhibayda/idea-service/internal/queue"
)

// Notifier fans idea activity out to in-app notifications and email, and
// mirrors the activity onto the message bus. One notification row per
// recipient, one batched email per event.
type Notifier struct {
	users    UserStore
	notes    NotificationStore
	mailer   mail.Sender
	pub      queue.Publisher
	exchange string
	baseURL  string
}

func NewNotifier(users UserStore, notes NotificationStore, mailer mail.Sender, pub queue.Publisher, exchange, baseURL string) *Notifier {
	return &Notifier{users: users, notes: notes, mailer: mailer, pub: pub, exchange: exchange, baseURL: baseURL}
}

func (n *Notifier) ideaLink(id primitive.ObjectID) string {
	return n.baseURL + "/ideas/lists/" + id.Hex()
}

// IdeaSubmitted notifies every ACTIVE quality assurance coordinator about a
// new idea: one IdeaNotification row each plus a single email to all of
// them. The mail failure surfaces to the caller; the idea itself is already
// committed by then.
func (n *Notifier) IdeaSubmitted(ctx context.Context, idea *domain.Idea, author *domain.User, thread *domain.Thread, reqID string) error {
	coordinators, err := n.users.FindUsersByRole(ctx, domain.RoleQAC)
	if err != nil {
		return err
	}

	content := fmt.Sprintf("%s has submitted the new idea %q in thread %q", author.FullName(), idea.Title, thread.Name)
	if idea.IsAnonymous {
		content = fmt.Sprintf("An anonymous user has submitted the new idea %q in thread %q", idea.Title, thread.Name)
	}

	now := time.Now()
	var recipients []string
	for i := range coordinators {
		c := &coordinators[i]
		if c.Status != domain.UserActive {
			continue
		}
		note := &domain.IdeaNotification{
			Content:     content,
			Type:        domain.NotifySubmission,
			Idea:        idea.ID,
			Receiver:    c.ID,
			IsAnonymous: idea.IsAnonymous,
			CreatedAt:   now,
			UpdatedAt:   now,
			UpdatedBy:   author.ID,
		}
		if err := n.notes.InsertNotification(ctx, note); err != nil {
			return err
		}
		recipients = append(recipients, c.Email)
		metrics.NotificationsFanout.WithLabelValues(string(domain.NotifySubmission)).Inc()
	}

	n.publish(ctx, queue.KeyIdeaCreated, queue.IdeaCreated{
		IdeaID:      idea.ID,
		Title:       idea.Title,
		ThreadID:    thread.ID,
		IsAnonymous: idea.IsAnonymous,
	}, reqID)

	if len(recipients) == 0 {
		return nil
	}
	body := fmt.Sprintf(`%s<br><a href="%s">Open the idea</a>`, content, n.ideaLink(idea.ID))
	if err := n.mailer.Send(ctx, recipients, "New idea submitted", body); err != nil {
		metrics.MailsSent.WithLabelValues("submission", "fail").Inc()
		return err
	}
	metrics.MailsSent.WithLabelValues("submission", "ok").Inc()
	return nil
}

// IdeaCommented notifies the idea's previous last actor that someone
// commented, unless the commenter is that same person (the caller checks).
func (n *Notifier) IdeaCommented(ctx context.Context, idea *domain.Idea, commenter *domain.User, receiver primitive.ObjectID, c domain.Comment, reqID string) error {
	content := fmt.Sprintf("%s commented on the idea %q", commenter.FullName(), idea.Title)
	if c.IsAnonymous {
		content = fmt.Sprintf("Someone commented on the idea %q", idea.Title)
	}

	now := time.Now()
	note := &domain.IdeaNotification{
		Content:     content,
		Type:        domain.NotifyNewComment,
		Idea:        idea.ID,
		Receiver:    receiver,
		IsAnonymous: c.IsAnonymous,
		CreatedAt:   now,
		UpdatedAt:   now,
		UpdatedBy:   commenter.ID,
	}
	if err := n.notes.InsertNotification(ctx, note); err != nil {
		return err
	}
	metrics.NotificationsFanout.WithLabelValues(string(domain.NotifyNewComment)).Inc()

	// собственная запись комментатора, чтобы действие было видно в его ленте
	own := &domain.IdeaNotification{
		Content:     fmt.Sprintf("You commented on the idea %q", idea.Title),
		Type:        domain.NotifyNewComment,
		Idea:        idea.ID,
		Receiver:    commenter.ID,
		IsAnonymous: c.IsAnonymous,
		CreatedAt:   now,
		UpdatedAt:   now,
		UpdatedBy:   commenter.ID,
	}
	if err := n.notes.InsertNotification(ctx, own); err != nil {
		return err
	}

	n.publish(ctx, queue.KeyIdeaCommented, queue.IdeaCommented{
		IdeaID:      idea.ID,
		CommentID:   c.ID,
		IsAnonymous: c.IsAnonymous,
	}, reqID)

	to, err := n.users.FindUserByID(ctx, receiver)
	if err != nil {
		return err
	}
	if to == nil || to.Status != domain.UserActive {
		return nil
	}
	body := fmt.Sprintf(`%s<br><a href="%s">Open the idea</a>`, content, n.ideaLink(idea.ID))
	if err := n.mailer.Send(ctx, []string{to.Email}, "New comment on your idea", body); err != nil {
		metrics.MailsSent.WithLabelValues("comment", "fail").Inc()
		return err
	}
	metrics.MailsSent.WithLabelValues("comment", "ok").Inc()
	return nil
}

// publish is best effort: the in-app rows are the source of truth, a bus
// hiccup must not fail the request.
func (n *Notifier) publish(ctx context.Context, key string, event any, reqID string) {
	if n.pub == nil {
		return
	}
	if err := n.pub.Publish(ctx, n.exchange, key, event, reqID); err != nil {
		log.L().Warn("publish failed", zap.String("key", key), zap.Error(err))
	}
}
