package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/repo"
)

// The registry services manage the three reference collections ideas point
// at. They share the same shape: unique name, actor expansion on reads,
// paginated lists.

type ThreadView struct {
	domain.Thread
	UpdatedBy domain.UserRef `json:"updatedBy"`
}

type CategoryView struct {
	domain.Category
	UpdatedBy domain.UserRef `json:"updatedBy"`
}

type DepartmentView struct {
	domain.Department
	UpdatedBy domain.UserRef `json:"updatedBy"`
}

type ThreadList struct {
	Threads   []ThreadView `json:"threads"`
	Total     int64        `json:"total"`
	Page      int          `json:"page"`
	TotalPage int          `json:"totalPage"`
}

type CategoryList struct {
	Categories []CategoryView `json:"categories"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPage  int            `json:"totalPage"`
}

type DepartmentList struct {
	Departments []DepartmentView `json:"departments"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	TotalPage   int              `json:"totalPage"`
}

type ThreadService struct {
	threads ThreadStore
	users   UserStore
	Now     func() time.Time
}

func NewThreadService(threads ThreadStore, users UserStore) *ThreadService {
	return &ThreadService{threads: threads, users: users}
}

func (s *ThreadService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type CreateThreadInput struct {
	Name             string
	Description      string
	Note             string
	ClosureDate      time.Time
	FinalClosureDate time.Time
}

// CreateThread derives the status from the closure dates once, at creation.
// It is never re-derived on the stored document afterwards.
func (s *ThreadService) CreateThread(ctx context.Context, in CreateThreadInput, actor primitive.ObjectID) (*domain.Thread, error) {
	if existing, err := s.threads.FindThreadByName(ctx, in.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.ErrThreadExisted
	}
	now := s.clock()
	t := &domain.Thread{
		Name:             in.Name,
		Description:      in.Description,
		Note:             in.Note,
		ClosureDate:      in.ClosureDate,
		FinalClosureDate: in.FinalClosureDate,
		CreatedAt:        now,
		UpdatedAt:        now,
		UpdatedBy:        actor,
	}
	t.Status = t.StatusAt(now)
	if err := s.threads.InsertThread(ctx, t); err != nil {
		if repo.IsDup(err) {
			return nil, apperr.ErrThreadExisted
		}
		return nil, err
	}
	return t, nil
}

func (s *ThreadService) GetThread(ctx context.Context, id primitive.ObjectID) (*ThreadView, error) {
	t, err := s.threads.FindThreadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.ErrThreadNotExisted
	}
	ref, err := actorRef(ctx, s.users, t.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &ThreadView{Thread: *t, UpdatedBy: ref}, nil
}

func (s *ThreadService) ListThreads(ctx context.Context, p domain.ListParams) (*ThreadList, error) {
	threads, total, err := s.threads.ListThreads(ctx, p)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(threads))
	for _, t := range threads {
		ids = append(ids, t.UpdatedBy)
	}
	refs, err := s.users.FindUserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]ThreadView, 0, len(threads))
	for _, t := range threads {
		out = append(out, ThreadView{Thread: t, UpdatedBy: refOrID(refs, t.UpdatedBy)})
	}
	return &ThreadList{Threads: out, Total: total, Page: p.Page + 1, TotalPage: domain.TotalPages(total, p.Limit)}, nil
}

type CategoryService struct {
	cats  CategoryStore
	users UserStore
	Now   func() time.Time
}

func NewCategoryService(cats CategoryStore, users UserStore) *CategoryService {
	return &CategoryService{cats: cats, users: users}
}

func (s *CategoryService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string, actor primitive.ObjectID) (*domain.Category, error) {
	if existing, err := s.cats.FindCategoryByName(ctx, name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.ErrCategoryExisted
	}
	now := s.clock()
	c := &domain.Category{Name: name, Status: domain.StatusActive, CreatedAt: now, UpdatedAt: now, UpdatedBy: actor}
	if err := s.cats.InsertCategory(ctx, c); err != nil {
		if repo.IsDup(err) {
			return nil, apperr.ErrCategoryExisted
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id primitive.ObjectID) (*CategoryView, error) {
	c, err := s.cats.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrCategoryNotExisted
	}
	ref, err := actorRef(ctx, s.users, c.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &CategoryView{Category: *c, UpdatedBy: ref}, nil
}

// DeactivateCategory is a one-way guard: deactivating an already inactive
// category is an error, not a no-op.
func (s *CategoryService) DeactivateCategory(ctx context.Context, id, actor primitive.ObjectID) (*domain.Category, error) {
	c, err := s.cats.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrCategoryNotExisted
	}
	if c.Status == domain.StatusInactive {
		return nil, apperr.ErrCategoryInactive
	}
	updated, err := s.cats.SetCategoryStatus(ctx, id, domain.StatusInactive, actor)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrCategoryNotExisted
	}
	return updated, err
}

func (s *CategoryService) ListCategories(ctx context.Context, p domain.ListParams) (*CategoryList, error) {
	cats, total, err := s.cats.ListCategories(ctx, p)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.UpdatedBy)
	}
	refs, err := s.users.FindUserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryView{Category: c, UpdatedBy: refOrID(refs, c.UpdatedBy)})
	}
	return &CategoryList{Categories: out, Total: total, Page: p.Page + 1, TotalPage: domain.TotalPages(total, p.Limit)}, nil
}

type DepartmentService struct {
	deps  DepartmentStore
	users UserStore
	Now   func() time.Time
}

func NewDepartmentService(deps DepartmentStore, users UserStore) *DepartmentService {
	return &DepartmentService{deps: deps, users: users}
}

func (s *DepartmentService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, name, note string, actor primitive.ObjectID) (*domain.Department, error) {
	if existing, err := s.deps.FindDepartmentByName(ctx, name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.ErrDepartmentExisted
	}
	now := s.clock()
	d := &domain.Department{Name: name, Note: note, Status: domain.StatusActive, CreatedAt: now, UpdatedAt: now, UpdatedBy: actor}
	if err := s.deps.InsertDepartment(ctx, d); err != nil {
		if repo.IsDup(err) {
			return nil, apperr.ErrDepartmentExisted
		}
		return nil, err
	}
	return d, nil
}

func (s *DepartmentService) GetDepartment(ctx context.Context, id primitive.ObjectID) (*DepartmentView, error) {
	d, err := s.deps.FindDepartmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrDepartmentNotExisted
	}
	ref, err := actorRef(ctx, s.users, d.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &DepartmentView{Department: *d, UpdatedBy: ref}, nil
}

// ToggleDepartment flips ACTIVE <-> INACTIVE. Asking for the state the
// department is already in is an error.
func (s *DepartmentService) ToggleDepartment(ctx context.Context, id primitive.ObjectID, target domain.EntityStatus, actor primitive.ObjectID) (*domain.Department, error) {
	d, err := s.deps.FindDepartmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrDepartmentNotExisted
	}
	if d.Status == target {
		if target == domain.StatusActive {
			return nil, apperr.ErrDepartmentActive
		}
		return nil, apperr.ErrDepartmentInactive
	}
	updated, err := s.deps.SetDepartmentStatus(ctx, id, target, actor)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrDepartmentNotExisted
	}
	return updated, err
}

func (s *DepartmentService) ListDepartments(ctx context.Context, p domain.ListParams) (*DepartmentList, error) {
	deps, total, err := s.deps.ListDepartments(ctx, p)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(deps))
	for _, d := range deps {
		ids = append(ids, d.UpdatedBy)
	}
	refs, err := s.users.FindUserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]DepartmentView, 0, len(deps))
	for _, d := range deps {
		out = append(out, DepartmentView{Department: d, UpdatedBy: refOrID(refs, d.UpdatedBy)})
	}
	return &DepartmentList{Departments: out, Total: total, Page: p.Page + 1, TotalPage: domain.TotalPages(total, p.Limit)}, nil
}

func actorRef(ctx context.Context, users UserStore, id primitive.ObjectID) (domain.UserRef, error) {
	if id.IsZero() {
		return domain.UserRef{}, nil
	}
	u, err := users.FindUserByID(ctx, id)
	if err != nil {
		return domain.UserRef{}, err
	}
	if u == nil {
		return domain.UserRef{ID: id}, nil
	}
	return u.Ref(), nil
}

func refOrID(refs map[primitive.ObjectID]domain.UserRef, id primitive.ObjectID) domain.UserRef {
	if r, ok := refs[id]; ok {
		return r
	}
	return domain.UserRef{ID: id}
}
