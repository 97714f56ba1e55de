package repo_test

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/log"
	"github.com/tazhibayda/idea-service/internal/repo"
)

type testEnv struct {
	T     *testing.T
	Ctx   context.Context
	Mongo *mongodb.MongoDBContainer
	Store *repo.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("container test")
	}
	ctx := context.Background()

	// поднять Mongo (testcontainers)
	mc, err := mongodb.RunContainer(ctx,
		testcontainers.WithImage("mongo:6"),
	)
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}

	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo uri: %v", err)
	}

	if _, err := log.Init(false); err != nil {
		t.Fatalf("log init: %v", err)
	}

	store, err := repo.NewStore(ctx, uri, "idea_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}
	return &testEnv{T: t, Ctx: ctx, Mongo: mc, Store: store}
}

func (e *testEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close(e.Ctx)
	}
	if e.Mongo != nil {
		_ = e.Mongo.Terminate(e.Ctx)
	}
}

func (e *testEnv) insertIdea(title string, createdAt time.Time) *domain.Idea {
	e.T.Helper()
	i := &domain.Idea{
		Title:       title,
		Description: "d",
		Category:    primitive.NewObjectID(),
		Thread:      primitive.NewObjectID(),
		Department:  primitive.NewObjectID(),
		Like:        []domain.Engagement{},
		Dislike:     []domain.Engagement{},
		Views:       []domain.Engagement{},
		Comments:    []domain.Comment{},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		UpdatedBy:   primitive.NewObjectID(),
	}
	if err := e.Store.InsertIdea(e.Ctx, i); err != nil {
		e.T.Fatalf("insert idea %s: %v", title, err)
	}
	return i
}

func TestUniqueIndexes(t *testing.T) {
	e := newTestEnv(t)
	defer e.Close()

	u := &domain.User{Email: "dup@corp.kz", Role: domain.RoleStaff, Status: domain.UserActive}
	if err := e.Store.InsertUser(e.Ctx, u); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := e.Store.InsertUser(e.Ctx, &domain.User{Email: "dup@corp.kz", Role: domain.RoleStaff})
	if err == nil || !repo.IsDup(err) {
		t.Errorf("dup email: err=%v IsDup=%v", err, repo.IsDup(err))
	}

	e.insertIdea("Same title", time.Now().UTC())
	i2 := &domain.Idea{Title: "Same title", CreatedAt: time.Now().UTC()}
	err = e.Store.InsertIdea(e.Ctx, i2)
	if err == nil || !repo.IsDup(err) {
		t.Errorf("dup title: err=%v IsDup=%v", err, repo.IsDup(err))
	}
}

func TestApplyVote_SingleUpdate(t *testing.T) {
	e := newTestEnv(t)
	defer e.Close()

	i := e.insertIdea("Vote target", time.Now().UTC())
	user := primitive.NewObjectID()
	at := time.Now().UTC().Truncate(time.Millisecond)

	got, err := e.Store.ApplyVote(e.Ctx, i.ID, domain.VoteUpdate{User: user, At: at, PushLike: true})
	if err != nil {
		t.Fatalf("push like: %v", err)
	}
	if !got.HasLike(user) || len(got.Like) != 1 {
		t.Fatalf("like not applied: %+v", got.Like)
	}

	// переключение лайка на дизлайк одним апдейтом
	got, err = e.Store.ApplyVote(e.Ctx, i.ID, domain.VoteUpdate{
		User: user, At: at, PullLike: true, PushDislike: true,
	})
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if got.HasLike(user) || !got.HasDislike(user) {
		t.Errorf("after switch: like=%v dislike=%v", got.Like, got.Dislike)
	}

	// снятие
	got, err = e.Store.ApplyVote(e.Ctx, i.ID, domain.VoteUpdate{User: user, At: at, PullDislike: true})
	if err != nil {
		t.Fatalf("retract: %v", err)
	}
	if len(got.Like) != 0 || len(got.Dislike) != 0 {
		t.Errorf("after retract: like=%v dislike=%v", got.Like, got.Dislike)
	}

	if _, err := e.Store.ApplyVote(e.Ctx, primitive.NewObjectID(), domain.VoteUpdate{User: user, At: at, PushLike: true}); err != repo.ErrNotFound {
		t.Errorf("missing idea: %v", err)
	}
}

func TestComment_Lifecycle(t *testing.T) {
	e := newTestEnv(t)
	defer e.Close()

	i := e.insertIdea("Commented", time.Now().UTC())
	author := primitive.NewObjectID()
	t0 := time.Now().UTC().Truncate(time.Millisecond)

	first := domain.Comment{ID: primitive.NewObjectID(), Content: "first", CreatedBy: author, CreatedAt: t0, EditHistory: []domain.EditSnapshot{}}
	second := domain.Comment{ID: primitive.NewObjectID(), Content: "second", CreatedBy: author, CreatedAt: t0.Add(time.Minute), EditHistory: []domain.EditSnapshot{}}

	if _, err := e.Store.PushComment(e.Ctx, i.ID, first); err != nil {
		t.Fatalf("push first: %v", err)
	}
	got, err := e.Store.PushComment(e.Ctx, i.ID, second)
	if err != nil {
		t.Fatalf("push second: %v", err)
	}
	// новые комментарии встают в голову массива
	if len(got.Comments) != 2 || got.Comments[0].ID != second.ID {
		t.Fatalf("order: %+v", got.Comments)
	}
	if got.UpdatedBy != author {
		t.Errorf("updated_by not stamped: %s", got.UpdatedBy.Hex())
	}

	editAt := t0.Add(2 * time.Minute)
	got, err = e.Store.EditComment(e.Ctx, i.ID, first.ID,
		domain.EditSnapshot{Content: "first", CreatedAt: t0, UpdatedAt: editAt}, "first v2", editAt)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	c := got.CommentByID(first.ID)
	if c == nil || c.Content != "first v2" {
		t.Fatalf("edit not applied: %+v", c)
	}
	if len(c.EditHistory) != 1 || c.EditHistory[0].Content != "first" {
		t.Errorf("history: %+v", c.EditHistory)
	}
	// второй комментарий не задет array filter'ом
	if o := got.CommentByID(second.ID); o == nil || o.Content != "second" || len(o.EditHistory) != 0 {
		t.Errorf("sibling touched: %+v", o)
	}

	if _, err := e.Store.EditComment(e.Ctx, i.ID, primitive.NewObjectID(), domain.EditSnapshot{}, "x", editAt); err != repo.ErrNotFound {
		t.Errorf("edit missing comment: %v", err)
	}

	got, err = e.Store.RemoveComment(e.Ctx, i.ID, first.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got.Comments) != 1 || got.Comments[0].ID != second.ID {
		t.Errorf("after remove: %+v", got.Comments)
	}
}

func TestConsumeActivationCode_Once(t *testing.T) {
	e := newTestEnv(t)
	defer e.Close()

	u := &domain.User{Email: "act@corp.kz", Role: domain.RoleStaff, Status: domain.UserInactive}
	if err := e.Store.InsertUser(e.Ctx, u); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Store.SetUserCode(e.Ctx, u.ID, "ABC123", time.Now().UTC().Add(time.Hour), u.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := e.Store.ConsumeActivationCode(e.Ctx, u.ID, "WRONG1", domain.UserActive); err != repo.ErrNotFound {
		t.Errorf("wrong code: %v", err)
	}

	got, err := e.Store.ConsumeActivationCode(e.Ctx, u.ID, "ABC123", domain.UserActive)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if got.Status != domain.UserActive {
		t.Errorf("status=%s", got.Status)
	}
	// код одноразовый: expiry сброшен, повтор не проходит
	if _, err := e.Store.ConsumeActivationCode(e.Ctx, u.ID, "ABC123", domain.UserActive); err != repo.ErrNotFound {
		t.Errorf("second consume: %v", err)
	}
}

func TestListIdeas_CountsSortPaginate(t *testing.T) {
	e := newTestEnv(t)
	defer e.Close()

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	a := e.insertIdea("Idea A", base)
	b := e.insertIdea("Idea B", base.Add(time.Hour))
	c := e.insertIdea("Idea C", base.Add(2*time.Hour))

	// лайки: A=2, B=1, C=0; просмотр и комментарий на A
	for k, n := range map[primitive.ObjectID]int{a.ID: 2, b.ID: 1} {
		for j := 0; j < n; j++ {
			if _, err := e.Store.ApplyVote(e.Ctx, k, domain.VoteUpdate{User: primitive.NewObjectID(), At: base, PushLike: true}); err != nil {
				t.Fatal(err)
			}
		}
	}
	if _, err := e.Store.AppendView(e.Ctx, a.ID, domain.Engagement{User: primitive.NewObjectID(), CreatedAt: base}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Store.PushComment(e.Ctx, a.ID, domain.Comment{ID: primitive.NewObjectID(), Content: "c", CreatedBy: primitive.NewObjectID(), CreatedAt: base}); err != nil {
		t.Fatal(err)
	}

	rows, total, err := e.Store.ListIdeas(e.Ctx, domain.ListParams{Page: 0, Limit: 5, Sort: domain.SortLikeDesc}, domain.IdeaFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("total=%d rows=%d", total, len(rows))
	}
	if rows[0].ID != a.ID || rows[0].LikeCount != 2 || rows[0].ViewCount != 1 || rows[0].CommentsCount != 1 {
		t.Errorf("row0: %+v", rows[0])
	}
	if rows[1].ID != b.ID || rows[1].LikeCount != 1 {
		t.Errorf("row1: %+v", rows[1])
	}

	// дефолтный порядок — новые сверху; фильтр по thread
	rows, _, err = e.Store.ListIdeas(e.Ctx, domain.ListParams{Page: 0, Limit: 5}, domain.IdeaFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].ID != c.ID {
		t.Errorf("default sort head: %s", rows[0].Title)
	}
	rows, total, err = e.Store.ListIdeas(e.Ctx, domain.ListParams{Page: 0, Limit: 5}, domain.IdeaFilter{Threads: []primitive.ObjectID{b.Thread}})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != b.ID {
		t.Errorf("thread filter: total=%d rows=%+v", total, rows)
	}

	// пагинация: limit 2 → вторая страница несёт хвост
	rows, total, err = e.Store.ListIdeas(e.Ctx, domain.ListParams{Page: 1, Limit: 2}, domain.IdeaFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(rows) != 1 {
		t.Errorf("page 2: total=%d rows=%d", total, len(rows))
	}
}

func TestIdeasBetween_HalfOpen(t *testing.T) {
	e := newTestEnv(t)
	defer e.Close()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	e.insertIdea("Inside", from.Add(12*time.Hour))
	e.insertIdea("At from", from)
	e.insertIdea("At to", to)
	e.insertIdea("Before", from.Add(-time.Second))

	got, err := e.Store.IdeasBetween(e.Ctx, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 ideas in window, got %d", len(got))
	}
	for _, i := range got {
		if i.Title == "At to" || i.Title == "Before" {
			t.Errorf("%s must be outside the window", i.Title)
		}
	}
}

func TestNotifications_ReceiverScope(t *testing.T) {
	e := newTestEnv(t)
	defer e.Close()

	recv, other := primitive.NewObjectID(), primitive.NewObjectID()
	base := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		n := &domain.IdeaNotification{
			Receiver:  recv,
			UpdatedBy: other,
			Type:      domain.NotifySubmission,
			Content:   "n",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := e.Store.InsertNotification(e.Ctx, n); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.Store.InsertNotification(e.Ctx, &domain.IdeaNotification{
		Receiver: other, UpdatedBy: recv, Type: domain.NotifySubmission, Content: "x", CreatedAt: base,
	}); err != nil {
		t.Fatal(err)
	}

	list, total, err := e.Store.ListNotifications(e.Ctx, recv, domain.ListParams{Page: 0, Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(list) != 3 {
		t.Fatalf("total=%d len=%d", total, len(list))
	}
	// новые сверху
	if !list[0].CreatedAt.After(list[2].CreatedAt) {
		t.Errorf("order: %v .. %v", list[0].CreatedAt, list[2].CreatedAt)
	}

	// пометить прочитанным может только получатель
	if _, err := e.Store.MarkNotificationRead(e.Ctx, list[0].ID, other); err != repo.ErrNotFound {
		t.Errorf("foreign mark: %v", err)
	}
	n, err := e.Store.MarkNotificationRead(e.Ctx, list[0].ID, recv)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !n.Read {
		t.Error("not marked read")
	}
}
