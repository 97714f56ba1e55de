package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
)

func TestNotifications_MarkReadReceiverOnly(t *testing.T) {
	notes := &fakeNotes{}
	svc := NewNotificationService(notes, newFakeUsers())
	ctx := context.Background()

	receiver := primitive.NewObjectID()
	other := primitive.NewObjectID()
	n := &domain.IdeaNotification{
		Content: "x", Type: domain.NotifySubmission,
		Receiver: receiver, CreatedAt: time.Now(),
	}
	if err := notes.InsertNotification(ctx, n); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.MarkRead(ctx, n.ID, other); err != apperr.ErrReadOtherNotification {
		t.Fatalf("want ErrReadOtherNotification, got %v", err)
	}
	got, err := svc.MarkRead(ctx, n.ID, receiver)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Read {
		t.Fatal("read flag not set")
	}
	if _, err := svc.MarkRead(ctx, primitive.NewObjectID(), receiver); err != apperr.ErrNotificationNotExist {
		t.Fatalf("want ErrNotificationNotExist, got %v", err)
	}
}

func TestNotifications_ListNewestFirst(t *testing.T) {
	notes := &fakeNotes{}
	users := newFakeUsers()
	svc := NewNotificationService(notes, users)
	ctx := context.Background()

	actorID := users.add(domain.User{FirstName: "A", Email: "a@corp.local"})
	receiver := primitive.NewObjectID()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		_ = notes.InsertNotification(ctx, &domain.IdeaNotification{
			Content: "n", Type: domain.NotifyNewComment, Receiver: receiver,
			UpdatedBy: actorID, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	// чужие записи не попадают в выдачу
	_ = notes.InsertNotification(ctx, &domain.IdeaNotification{
		Content: "other", Receiver: primitive.NewObjectID(), CreatedAt: base,
	})

	l, err := svc.List(ctx, receiver, domain.ListParams{Page: 0, Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if l.Total != 7 || l.TotalPage != 2 || len(l.Notifications) != 5 {
		t.Fatalf("total=%d totalPage=%d len=%d", l.Total, l.TotalPage, len(l.Notifications))
	}
	if !l.Notifications[0].CreatedAt.After(l.Notifications[1].CreatedAt) {
		t.Fatal("must be newest first")
	}
	if l.Notifications[0].Actor.Email != "a@corp.local" {
		t.Fatalf("actor not expanded: %+v", l.Notifications[0].Actor)
	}
}

func TestDashboard_Rollups(t *testing.T) {
	ideas := newFakeIdeas()
	deps := newFakeDeps()
	users := newFakeUsers()
	svc := NewDashboardService(ideas, deps, users)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }
	ctx := context.Background()

	dep := &domain.Department{Name: "Engineering", Status: domain.StatusActive}
	_ = deps.InsertDepartment(ctx, dep)
	u1 := users.add(domain.User{FirstName: "U1", Email: "u1@corp.local"})
	u2 := users.add(domain.User{FirstName: "U2", Email: "u2@corp.local"})

	put := func(at time.Time, by primitive.ObjectID) {
		_ = ideas.InsertIdea(ctx, &domain.Idea{
			Title:      at.String() + by.Hex(),
			Department: dep.ID, UpdatedBy: by, CreatedAt: at,
		})
	}
	put(now.Add(-time.Hour), u1)                                   // сегодня
	put(time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC), u1)          // вчера
	put(time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC), u2)         // вчера
	put(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), u1)           // март
	put(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), u1)           // прошлые годы
	put(time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC), u1)           // за пределами окна
	put(time.Date(2025, 6, 14, 11, 0, 0, 0, time.UTC), u1)         // вчера, тот же автор

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Today != 1 {
		t.Fatalf("today=%d", stats.Today)
	}
	if stats.Yesterday != 3 {
		t.Fatalf("yesterday=%d", stats.Yesterday)
	}
	if len(stats.Years) != 5 || stats.Years[0].Year != 2021 || stats.Years[4].Year != 2025 {
		t.Fatalf("years window: %+v", stats.Years)
	}
	for _, y := range stats.Years {
		switch y.Year {
		case 2023:
			if y.Count != 1 {
				t.Fatalf("2023=%d", y.Count)
			}
		case 2025:
			if y.Count != 5 {
				t.Fatalf("2025=%d", y.Count)
			}
		}
	}

	var june *MonthStats
	for i := range stats.Months {
		if stats.Months[i].Month == time.June {
			june = &stats.Months[i]
		}
	}
	if june == nil {
		t.Fatal("june bucket missing")
	}
	if june.Count != 4 {
		t.Fatalf("june count=%d", june.Count)
	}
	if len(june.Users) != 2 {
		t.Fatalf("june distinct users=%d", len(june.Users))
	}
	if len(june.Departments) != 1 || june.Departments[0].Count != 4 {
		t.Fatalf("june departments: %+v", june.Departments)
	}
}

func TestDashboard_MonthlyOrderStable(t *testing.T) {
	ideas := newFakeIdeas()
	deps := newFakeDeps()
	users := newFakeUsers()
	svc := NewDashboardService(ideas, deps, users)
	svc.Now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		d := &domain.Department{Name: fmt.Sprintf("D%d", i), Status: domain.StatusActive}
		if err := deps.InsertDepartment(ctx, d); err != nil {
			t.Fatal(err)
		}
		by := users.add(domain.User{FirstName: fmt.Sprintf("U%d", i), Email: fmt.Sprintf("u%d@corp.local", i)})
		_ = ideas.InsertIdea(ctx, &domain.Idea{
			Title: fmt.Sprintf("idea-%d", i), Department: d.ID, UpdatedBy: by,
			CreatedAt: time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}

	first, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Months) != 1 || len(first.Months[0].Departments) != 4 {
		t.Fatalf("months: %+v", first.Months)
	}
	ms := first.Months[0]
	for i := 1; i < len(ms.Departments); i++ {
		if ms.Departments[i-1].Department.ID.Hex() >= ms.Departments[i].Department.ID.Hex() {
			t.Fatalf("departments not ordered by id: %+v", ms.Departments)
		}
	}
	for i := 1; i < len(ms.Users); i++ {
		if ms.Users[i-1].ID.Hex() >= ms.Users[i].ID.Hex() {
			t.Fatalf("users not ordered by id: %+v", ms.Users)
		}
	}
	// карта в бакете даёт случайный порядок обхода; выдача обязана совпадать
	if !reflect.DeepEqual(first.Months, second.Months) {
		t.Fatal("rollup order changed between calls")
	}
}
