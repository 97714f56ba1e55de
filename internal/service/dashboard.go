package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/domain"
)

// DashboardService is a read-side reducer over the ideas collection. It
// has no state of its own.
type DashboardService struct {
	ideas IdeaStore
	deps  DepartmentStore
	users UserStore
	Now   func() time.Time
}

func NewDashboardService(ideas IdeaStore, deps DepartmentStore, users UserStore) *DashboardService {
	return &DashboardService{ideas: ideas, deps: deps, users: users}
}

func (s *DashboardService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type DepartmentCount struct {
	Department *domain.Department `json:"department"`
	Count      int                `json:"count"`
}

type MonthStats struct {
	Month       time.Month        `json:"month"`
	Count       int               `json:"count"`
	Departments []DepartmentCount `json:"departments"`
	Users       []domain.UserRef  `json:"users"`
}

type DashboardStats struct {
	Today     int          `json:"today"`
	Yesterday int          `json:"yesterday"`
	Years     []YearCount  `json:"years"`
	Months    []MonthStats `json:"months"`
}

// Stats builds the rollups: today/yesterday counts, the last five calendar
// years, and the current year broken down per month by department and
// distinct contributing users.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	now := s.clock()
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	today, err := s.countBetween(ctx, todayStart, now)
	if err != nil {
		return nil, err
	}
	yesterday, err := s.countBetween(ctx, todayStart.AddDate(0, 0, -1), todayStart)
	if err != nil {
		return nil, err
	}

	out := &DashboardStats{Today: today, Yesterday: yesterday}

	var thisYear []domain.Idea
	for y := now.Year() - 4; y <= now.Year(); y++ {
		from := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		to := from.AddDate(1, 0, 0)
		ideas, err := s.ideas.IdeasBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		out.Years = append(out.Years, YearCount{Year: y, Count: len(ideas)})
		if y == now.Year() {
			thisYear = ideas
		}
	}

	months, err := s.monthly(ctx, thisYear)
	if err != nil {
		return nil, err
	}
	out.Months = months
	return out, nil
}

func (s *DashboardService) countBetween(ctx context.Context, from, to time.Time) (int, error) {
	ideas, err := s.ideas.IdeasBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return len(ideas), nil
}

func (s *DashboardService) monthly(ctx context.Context, ideas []domain.Idea) ([]MonthStats, error) {
	type bucket struct {
		count int
		deps  map[primitive.ObjectID]int
		users map[primitive.ObjectID]struct{}
	}
	buckets := map[time.Month]*bucket{}
	for _, i := range ideas {
		m := i.CreatedAt.Month()
		b, ok := buckets[m]
		if !ok {
			b = &bucket{deps: map[primitive.ObjectID]int{}, users: map[primitive.ObjectID]struct{}{}}
			buckets[m] = b
		}
		b.count++
		if !i.Department.IsZero() {
			b.deps[i.Department]++
		}
		if !i.UpdatedBy.IsZero() {
			b.users[i.UpdatedBy] = struct{}{}
		}
	}

	depCache := map[primitive.ObjectID]*domain.Department{}
	var out []MonthStats
	for m := time.January; m <= time.December; m++ {
		b, ok := buckets[m]
		if !ok {
			continue
		}
		ms := MonthStats{Month: m, Count: b.count}
		// map iteration order is random; the response must be stable
		for _, id := range sortedIDs(b.deps) {
			dep, ok := depCache[id]
			if !ok {
				var err error
				if dep, err = s.deps.FindDepartmentByID(ctx, id); err != nil {
					return nil, err
				}
				depCache[id] = dep
			}
			ms.Departments = append(ms.Departments, DepartmentCount{Department: dep, Count: b.deps[id]})
		}
		ids := make([]primitive.ObjectID, 0, len(b.users))
		for id := range b.users {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a].Hex() < ids[b].Hex() })
		refs, err := s.users.FindUserRefs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			ms.Users = append(ms.Users, refOrID(refs, id))
		}
		out = append(out, ms)
	}
	return out, nil
}

func sortedIDs(m map[primitive.ObjectID]int) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a].Hex() < ids[b].Hex() })
	return ids
}
