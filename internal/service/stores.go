// Package service owns the domain operations. Services talk to Mongo
// through the narrow store interfaces below (implemented by repo.Store and
// by in-memory fakes in tests) and expand cross-entity references
// themselves; the storage engine never joins.
package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/domain"
)

type IdeaStore interface {
	InsertIdea(ctx context.Context, i *domain.Idea) error
	FindIdeaByTitle(ctx context.Context, title string) (*domain.Idea, error)
	FindIdeaByID(ctx context.Context, id primitive.ObjectID) (*domain.Idea, error)
	ApplyVote(ctx context.Context, id primitive.ObjectID, v domain.VoteUpdate) (*domain.Idea, error)
	AppendView(ctx context.Context, id primitive.ObjectID, e domain.Engagement) (*domain.Idea, error)
	PushComment(ctx context.Context, id primitive.ObjectID, c domain.Comment) (*domain.Idea, error)
	EditComment(ctx context.Context, ideaID, commentID primitive.ObjectID, snap domain.EditSnapshot, content string, now time.Time) (*domain.Idea, error)
	RemoveComment(ctx context.Context, ideaID, commentID primitive.ObjectID) (*domain.Idea, error)
	ListIdeas(ctx context.Context, p domain.ListParams, f domain.IdeaFilter) ([]domain.IdeaRow, int64, error)
	IdeasBetween(ctx context.Context, from, to time.Time) ([]domain.Idea, error)
}

type UserStore interface {
	InsertUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindUsersByRole(ctx context.Context, roles ...domain.UserRole) ([]domain.User, error)
	FindUserRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.UserRef, error)
	SetUserStatus(ctx context.Context, id primitive.ObjectID, status domain.UserStatus, actor primitive.ObjectID) (*domain.User, error)
	SetUserPassword(ctx context.Context, id primitive.ObjectID, hash string, consumeCode bool, actor primitive.ObjectID) (*domain.User, error)
	SetUserCode(ctx context.Context, id primitive.ObjectID, code string, expires time.Time, actor primitive.ObjectID) (*domain.User, error)
	SetUserAvatar(ctx context.Context, id primitive.ObjectID, avatar string, actor primitive.ObjectID) (*domain.User, error)
	SetUserDepartment(ctx context.Context, id, department, actor primitive.ObjectID) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, p domain.ProfileUpdate) (*domain.User, error)
	ConsumeActivationCode(ctx context.Context, id primitive.ObjectID, code string, newStatus domain.UserStatus) (*domain.User, error)
	ListUsers(ctx context.Context, p domain.ListParams) ([]domain.User, int64, error)
}

type ThreadStore interface {
	InsertThread(ctx context.Context, t *domain.Thread) error
	FindThreadByName(ctx context.Context, name string) (*domain.Thread, error)
	FindThreadByID(ctx context.Context, id primitive.ObjectID) (*domain.Thread, error)
	ListThreads(ctx context.Context, p domain.ListParams) ([]domain.Thread, int64, error)
}

type CategoryStore interface {
	InsertCategory(ctx context.Context, c *domain.Category) error
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	SetCategoryStatus(ctx context.Context, id primitive.ObjectID, status domain.EntityStatus, actor primitive.ObjectID) (*domain.Category, error)
	ListCategories(ctx context.Context, p domain.ListParams) ([]domain.Category, int64, error)
}

type DepartmentStore interface {
	InsertDepartment(ctx context.Context, d *domain.Department) error
	FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error)
	FindDepartmentByID(ctx context.Context, id primitive.ObjectID) (*domain.Department, error)
	SetDepartmentStatus(ctx context.Context, id primitive.ObjectID, status domain.EntityStatus, actor primitive.ObjectID) (*domain.Department, error)
	ListDepartments(ctx context.Context, p domain.ListParams) ([]domain.Department, int64, error)
}

type NotificationStore interface {
	InsertNotification(ctx context.Context, n *domain.IdeaNotification) error
	FindNotificationByID(ctx context.Context, id primitive.ObjectID) (*domain.IdeaNotification, error)
	MarkNotificationRead(ctx context.Context, id, receiver primitive.ObjectID) (*domain.IdeaNotification, error)
	ListNotifications(ctx context.Context, receiver primitive.ObjectID, p domain.ListParams) ([]domain.IdeaNotification, int64, error)
}

type EventStore interface {
	InsertEvent(ctx context.Context, e *domain.Event) error
}

// Throttle limits repeat code requests; *repo.Redis implements it.
type Throttle interface {
	AllowCodeRequest(ctx context.Context, userID string, gap time.Duration) (bool, error)
}
