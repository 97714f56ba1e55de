package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/repo"
)

// Фейки повторяют семантику одиночных атомарных апдейтов хранилища,
// чтобы сервисную логику можно было гонять без Mongo.

type fakeIdeas struct {
	mu    sync.Mutex
	ideas map[primitive.ObjectID]*domain.Idea
}

func newFakeIdeas() *fakeIdeas {
	return &fakeIdeas{ideas: map[primitive.ObjectID]*domain.Idea{}}
}

func (f *fakeIdeas) InsertIdea(ctx context.Context, i *domain.Idea) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	cp := *i
	f.ideas[i.ID] = &cp
	return nil
}

func (f *fakeIdeas) FindIdeaByTitle(ctx context.Context, title string) (*domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.ideas {
		if i.Title == title {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeIdeas) FindIdeaByID(ctx context.Context, id primitive.ObjectID) (*domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.ideas[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (f *fakeIdeas) ApplyVote(ctx context.Context, id primitive.ObjectID, v domain.VoteUpdate) (*domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.ideas[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	pull := func(set []domain.Engagement) []domain.Engagement {
		out := set[:0]
		for _, e := range set {
			if e.User != v.User {
				out = append(out, e)
			}
		}
		return out
	}
	if v.PullLike {
		i.Like = pull(i.Like)
	}
	if v.PullDislike {
		i.Dislike = pull(i.Dislike)
	}
	if v.PushLike {
		i.Like = append(i.Like, domain.Engagement{User: v.User, CreatedAt: v.At})
	}
	if v.PushDislike {
		i.Dislike = append(i.Dislike, domain.Engagement{User: v.User, CreatedAt: v.At})
	}
	i.UpdatedAt = v.At
	cp := *i
	return &cp, nil
}

func (f *fakeIdeas) AppendView(ctx context.Context, id primitive.ObjectID, e domain.Engagement) (*domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.ideas[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	i.Views = append(i.Views, e)
	cp := *i
	return &cp, nil
}

func (f *fakeIdeas) PushComment(ctx context.Context, id primitive.ObjectID, c domain.Comment) (*domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.ideas[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	// новые комментарии в голову
	i.Comments = append([]domain.Comment{c}, i.Comments...)
	i.UpdatedAt = c.CreatedAt
	i.UpdatedBy = c.CreatedBy
	cp := *i
	return &cp, nil
}

func (f *fakeIdeas) EditComment(ctx context.Context, ideaID, commentID primitive.ObjectID, snap domain.EditSnapshot, content string, now time.Time) (*domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.ideas[ideaID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	for k := range i.Comments {
		if i.Comments[k].ID == commentID {
			i.Comments[k].EditHistory = append(i.Comments[k].EditHistory, snap)
			i.Comments[k].Content = content
			i.Comments[k].CreatedAt = now
			cp := *i
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeIdeas) RemoveComment(ctx context.Context, ideaID, commentID primitive.ObjectID) (*domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.ideas[ideaID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	out := i.Comments[:0]
	for _, c := range i.Comments {
		if c.ID != commentID {
			out = append(out, c)
		}
	}
	i.Comments = out
	cp := *i
	return &cp, nil
}

func (f *fakeIdeas) ListIdeas(ctx context.Context, p domain.ListParams, flt domain.IdeaFilter) ([]domain.IdeaRow, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []domain.IdeaRow
	for _, i := range f.ideas {
		rows = append(rows, domain.IdeaRow{
			ID: i.ID, Title: i.Title, Description: i.Description,
			Category: i.Category, Thread: i.Thread, Department: i.Department,
			IsAnonymous: i.IsAnonymous, CreatedAt: i.CreatedAt,
			UpdatedAt: i.UpdatedAt, UpdatedBy: i.UpdatedBy,
			LikeCount: len(i.Like), DislikeCount: len(i.Dislike),
			ViewCount: len(i.Views), CommentsCount: len(i.Comments),
		})
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].CreatedAt.After(rows[b].CreatedAt) })
	total := int64(len(rows))
	from := int(p.Skip())
	if from > len(rows) {
		from = len(rows)
	}
	to := from + p.Limit
	if to > len(rows) {
		to = len(rows)
	}
	return rows[from:to], total, nil
}

func (f *fakeIdeas) IdeasBetween(ctx context.Context, from, to time.Time) ([]domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Idea
	for _, i := range f.ideas {
		if !i.CreatedAt.Before(from) && i.CreatedAt.Before(to) {
			out = append(out, *i)
		}
	}
	return out, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[primitive.ObjectID]*domain.User{}}
}

func (f *fakeUsers) add(u domain.User) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID] = &u
	return u.ID
}

func (f *fakeUsers) InsertUser(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindUsersByRole(ctx context.Context, roles ...domain.UserRole) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.users {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUsers) FindUserRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.UserRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[primitive.ObjectID]domain.UserRef{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u.Ref()
		}
	}
	return out, nil
}

func (f *fakeUsers) set(id primitive.ObjectID, fn func(u *domain.User)) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	fn(u)
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) SetUserStatus(ctx context.Context, id primitive.ObjectID, status domain.UserStatus, actor primitive.ObjectID) (*domain.User, error) {
	return f.set(id, func(u *domain.User) { u.Status = status; u.UpdatedBy = actor })
}

func (f *fakeUsers) SetUserPassword(ctx context.Context, id primitive.ObjectID, hash string, consumeCode bool, actor primitive.ObjectID) (*domain.User, error) {
	return f.set(id, func(u *domain.User) {
		u.PasswordHash = hash
		if consumeCode {
			u.CodeExpires = time.Now()
		}
	})
}

func (f *fakeUsers) SetUserCode(ctx context.Context, id primitive.ObjectID, code string, expires time.Time, actor primitive.ObjectID) (*domain.User, error) {
	return f.set(id, func(u *domain.User) { u.Code = code; u.CodeExpires = expires })
}

func (f *fakeUsers) SetUserAvatar(ctx context.Context, id primitive.ObjectID, avatar string, actor primitive.ObjectID) (*domain.User, error) {
	return f.set(id, func(u *domain.User) { u.Avatar = avatar })
}

func (f *fakeUsers) SetUserDepartment(ctx context.Context, id, department, actor primitive.ObjectID) (*domain.User, error) {
	return f.set(id, func(u *domain.User) { u.Department = department; u.UpdatedBy = actor })
}

func (f *fakeUsers) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, p domain.ProfileUpdate) (*domain.User, error) {
	return f.set(id, func(u *domain.User) {
		u.FirstName = p.FirstName
		u.LastName = p.LastName
		u.Address = p.Address
		u.DOB = p.DOB
		u.PhoneNumber = p.PhoneNumber
		u.Gender = p.Gender
	})
}

func (f *fakeUsers) ConsumeActivationCode(ctx context.Context, id primitive.ObjectID, code string, newStatus domain.UserStatus) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.Code != code || !u.CodeExpires.After(time.Now()) {
		return nil, repo.ErrNotFound
	}
	u.CodeExpires = time.Now()
	if newStatus != "" {
		u.Status = newStatus
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) ListUsers(ctx context.Context, p domain.ListParams) ([]domain.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	total := int64(len(out))
	from := int(p.Skip())
	if from > len(out) {
		from = len(out)
	}
	to := from + p.Limit
	if to > len(out) {
		to = len(out)
	}
	return out[from:to], total, nil
}

type fakeThreads struct {
	mu      sync.Mutex
	threads map[primitive.ObjectID]*domain.Thread
}

func newFakeThreads() *fakeThreads {
	return &fakeThreads{threads: map[primitive.ObjectID]*domain.Thread{}}
}

func (f *fakeThreads) InsertThread(ctx context.Context, t *domain.Thread) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	f.threads[t.ID] = &cp
	return nil
}

func (f *fakeThreads) FindThreadByName(ctx context.Context, name string) (*domain.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.threads {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeThreads) FindThreadByID(ctx context.Context, id primitive.ObjectID) (*domain.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.threads[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeThreads) ListThreads(ctx context.Context, p domain.ListParams) ([]domain.Thread, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Thread
	for _, t := range f.threads {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

type fakeCats struct {
	mu   sync.Mutex
	cats map[primitive.ObjectID]*domain.Category
}

func newFakeCats() *fakeCats {
	return &fakeCats{cats: map[primitive.ObjectID]*domain.Category{}}
}

func (f *fakeCats) InsertCategory(ctx context.Context, c *domain.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	f.cats[c.ID] = &cp
	return nil
}

func (f *fakeCats) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cats {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCats) FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cats[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCats) SetCategoryStatus(ctx context.Context, id primitive.ObjectID, status domain.EntityStatus, actor primitive.ObjectID) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cats[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c.Status = status
	c.UpdatedBy = actor
	cp := *c
	return &cp, nil
}

func (f *fakeCats) ListCategories(ctx context.Context, p domain.ListParams) ([]domain.Category, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Category
	for _, c := range f.cats {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeDeps struct {
	mu   sync.Mutex
	deps map[primitive.ObjectID]*domain.Department
}

func newFakeDeps() *fakeDeps {
	return &fakeDeps{deps: map[primitive.ObjectID]*domain.Department{}}
}

func (f *fakeDeps) InsertDepartment(ctx context.Context, d *domain.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	cp := *d
	f.deps[d.ID] = &cp
	return nil
}

func (f *fakeDeps) FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.deps {
		if d.Name == name {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDeps) FindDepartmentByID(ctx context.Context, id primitive.ObjectID) (*domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.deps[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDeps) SetDepartmentStatus(ctx context.Context, id primitive.ObjectID, status domain.EntityStatus, actor primitive.ObjectID) (*domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.deps[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	d.Status = status
	d.UpdatedBy = actor
	cp := *d
	return &cp, nil
}

func (f *fakeDeps) ListDepartments(ctx context.Context, p domain.ListParams) ([]domain.Department, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Department
	for _, d := range f.deps {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

type fakeNotes struct {
	mu    sync.Mutex
	notes []domain.IdeaNotification
}

func (f *fakeNotes) InsertNotification(ctx context.Context, n *domain.IdeaNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	f.notes = append(f.notes, *n)
	return nil
}

func (f *fakeNotes) FindNotificationByID(ctx context.Context, id primitive.ObjectID) (*domain.IdeaNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notes {
		if n.ID == id {
			cp := n
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeNotes) MarkNotificationRead(ctx context.Context, id, receiver primitive.ObjectID) (*domain.IdeaNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.notes {
		if f.notes[k].ID == id && f.notes[k].Receiver == receiver {
			f.notes[k].Read = true
			cp := f.notes[k]
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeNotes) ListNotifications(ctx context.Context, receiver primitive.ObjectID, p domain.ListParams) ([]domain.IdeaNotification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.IdeaNotification
	for _, n := range f.notes {
		if n.Receiver == receiver {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	total := int64(len(out))
	from := int(p.Skip())
	if from > len(out) {
		from = len(out)
	}
	to := from + p.Limit
	if to > len(out) {
		to = len(out)
	}
	return out[from:to], total, nil
}

func (f *fakeNotes) forReceiver(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, note := range f.notes {
		if note.Receiver == id {
			n++
		}
	}
	return n
}

type fakeEvents struct {
	mu     sync.Mutex
	events []domain.Event
}

func (f *fakeEvents) InsertEvent(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *e)
	return nil
}

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

type fakeMail struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMail) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

type fakeThrottle struct{ allow bool }

func (f fakeThrottle) AllowCodeRequest(ctx context.Context, userID string, gap time.Duration) (bool, error) {
	return f.allow, nil
}
