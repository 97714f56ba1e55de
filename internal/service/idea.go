package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/policy"
	"github.com/tazhibayda/idea-service/internal/repo"
)

type IdeaService struct {
	ideas    IdeaStore
	threads  ThreadStore
	cats     CategoryStore
	users    UserStore
	notifier *Notifier

	// DedupeViews switches repeat views by the same user from raw appends
	// to at-most-once. Off by default, matching the historical behavior.
	DedupeViews bool
	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func NewIdeaService(ideas IdeaStore, threads ThreadStore, cats CategoryStore, users UserStore, notifier *Notifier) *IdeaService {
	return &IdeaService{ideas: ideas, threads: threads, cats: cats, users: users, notifier: notifier}
}

func (s *IdeaService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type CreateIdeaInput struct {
	Title       string
	Description string
	Documents   []domain.Document
	Category    primitive.ObjectID
	Thread      primitive.ObjectID
	IsAnonymous bool
}

// CreateIdea validates the thread window and the category state before
// inserting. The fan-out runs after the insert; a mail failure therefore
// leaves the idea committed while the request reports the failure.
func (s *IdeaService) CreateIdea(ctx context.Context, in CreateIdeaInput, actor *domain.User, reqID string) (*domain.Idea, error) {
	if existing, err := s.ideas.FindIdeaByTitle(ctx, in.Title); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.ErrIdeaExisted
	}

	now := s.clock()

	thread, err := s.threads.FindThreadByID(ctx, in.Thread)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, apperr.ErrThreadNotExisted
	}
	if !thread.AcceptsSubmissions(now) {
		return nil, apperr.ErrThreadExpired
	}

	cat, err := s.cats.FindCategoryByID(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.ErrCategoryNotExisted
	}
	if cat.Status != domain.StatusActive {
		return nil, apperr.ErrCategoryInactive
	}

	idea := &domain.Idea{
		Title:       in.Title,
		Description: in.Description,
		Documents:   in.Documents,
		Category:    in.Category,
		Thread:      in.Thread,
		Department:  actor.Department,
		IsAnonymous: in.IsAnonymous,
		Like:        []domain.Engagement{},
		Dislike:     []domain.Engagement{},
		Views:       []domain.Engagement{},
		Comments:    []domain.Comment{},
		Subscribers: []domain.Engagement{},
		CreatedAt:   now,
		UpdatedAt:   now,
		UpdatedBy:   actor.ID,
	}
	if err := s.ideas.InsertIdea(ctx, idea); err != nil {
		if repo.IsDup(err) {
			return nil, apperr.ErrIdeaExisted
		}
		return nil, err
	}

	if err := s.notifier.IdeaSubmitted(ctx, idea, actor, thread, reqID); err != nil {
		return nil, err
	}
	return idea, nil
}

type EngagementView struct {
	User      domain.UserRef `json:"user"`
	CreatedAt time.Time      `json:"createdAt"`
}

type CommentView struct {
	ID          primitive.ObjectID    `json:"id"`
	Content     string                `json:"content"`
	CreatedBy   domain.UserRef        `json:"createdBy"`
	CreatedAt   time.Time             `json:"createdAt"`
	IsAnonymous bool                  `json:"isAnonymous"`
	EditHistory []domain.EditSnapshot `json:"editHistory"`
}

// IdeaDetail is the fully expanded aggregate: every stored identifier
// resolved to the referenced document. Anonymity redaction happens at the
// HTTP boundary, not here.
type IdeaDetail struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Documents   []domain.Document  `json:"documents"`
	Category    *domain.Category   `json:"category"`
	Thread      *domain.Thread     `json:"thread"`
	Department  primitive.ObjectID `json:"department"`
	IsAnonymous bool               `json:"isAnonymous"`
	Like        []EngagementView   `json:"like"`
	Dislike     []EngagementView   `json:"dislike"`
	Views       []EngagementView   `json:"views"`
	Comments    []CommentView      `json:"comments"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	UpdatedBy   domain.UserRef     `json:"updatedBy"`
}

// GetIdeaDetail expands the aggregate app-side: one batched user lookup for
// every identifier embedded in the document.
func (s *IdeaService) GetIdeaDetail(ctx context.Context, id primitive.ObjectID) (*IdeaDetail, error) {
	idea, err := s.ideas.FindIdeaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, apperr.ErrIdeaNotExisted
	}
	return s.expandIdea(ctx, idea)
}

func (s *IdeaService) expandIdea(ctx context.Context, idea *domain.Idea) (*IdeaDetail, error) {
	ids := make([]primitive.ObjectID, 0, len(idea.Like)+len(idea.Dislike)+len(idea.Views)+len(idea.Comments)+1)
	ids = append(ids, idea.UpdatedBy)
	for _, e := range idea.Like {
		ids = append(ids, e.User)
	}
	for _, e := range idea.Dislike {
		ids = append(ids, e.User)
	}
	for _, e := range idea.Views {
		ids = append(ids, e.User)
	}
	for _, c := range idea.Comments {
		ids = append(ids, c.CreatedBy)
	}
	refs, err := s.users.FindUserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	ref := func(id primitive.ObjectID) domain.UserRef {
		if r, ok := refs[id]; ok {
			return r
		}
		return domain.UserRef{ID: id}
	}
	engagements := func(in []domain.Engagement) []EngagementView {
		out := make([]EngagementView, 0, len(in))
		for _, e := range in {
			out = append(out, EngagementView{User: ref(e.User), CreatedAt: e.CreatedAt})
		}
		return out
	}

	cat, err := s.cats.FindCategoryByID(ctx, idea.Category)
	if err != nil {
		return nil, err
	}
	thread, err := s.threads.FindThreadByID(ctx, idea.Thread)
	if err != nil {
		return nil, err
	}

	d := &IdeaDetail{
		ID:          idea.ID,
		Title:       idea.Title,
		Description: idea.Description,
		Documents:   idea.Documents,
		Category:    cat,
		Thread:      thread,
		Department:  idea.Department,
		IsAnonymous: idea.IsAnonymous,
		Like:        engagements(idea.Like),
		Dislike:     engagements(idea.Dislike),
		Views:       engagements(idea.Views),
		Comments:    make([]CommentView, 0, len(idea.Comments)),
		CreatedAt:   idea.CreatedAt,
		UpdatedAt:   idea.UpdatedAt,
		UpdatedBy:   ref(idea.UpdatedBy),
	}
	for _, c := range idea.Comments {
		d.Comments = append(d.Comments, CommentView{
			ID:          c.ID,
			Content:     c.Content,
			CreatedBy:   ref(c.CreatedBy),
			CreatedAt:   c.CreatedAt,
			IsAnonymous: c.IsAnonymous,
			EditHistory: c.EditHistory,
		})
	}
	return d, nil
}

type IdeaListItem struct {
	domain.IdeaRow
	Category  *domain.Category `json:"category"`
	Thread    *domain.Thread   `json:"thread"`
	UpdatedBy domain.UserRef   `json:"updatedBy"`
}

type IdeaList struct {
	Ideas     []IdeaListItem `json:"ideas"`
	Total     int64          `json:"total"`
	Page      int            `json:"page"` // 1-based, as the client sent it
	TotalPage int            `json:"totalPage"`
}

// ListIdeas runs the count-aware list pipeline and then expands the
// category/thread/actor references of each row.
func (s *IdeaService) ListIdeas(ctx context.Context, p domain.ListParams, f domain.IdeaFilter) (*IdeaList, error) {
	rows, total, err := s.ideas.ListIdeas(ctx, p, f)
	if err != nil {
		return nil, err
	}

	userIDs := make([]primitive.ObjectID, 0, len(rows))
	for _, r := range rows {
		userIDs = append(userIDs, r.UpdatedBy)
	}
	refs, err := s.users.FindUserRefs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	cats := map[primitive.ObjectID]*domain.Category{}
	threads := map[primitive.ObjectID]*domain.Thread{}
	items := make([]IdeaListItem, 0, len(rows))
	for _, r := range rows {
		cat, ok := cats[r.Category]
		if !ok {
			if cat, err = s.cats.FindCategoryByID(ctx, r.Category); err != nil {
				return nil, err
			}
			cats[r.Category] = cat
		}
		thread, ok := threads[r.Thread]
		if !ok {
			if thread, err = s.threads.FindThreadByID(ctx, r.Thread); err != nil {
				return nil, err
			}
			threads[r.Thread] = thread
		}
		ref := refs[r.UpdatedBy]
		if ref.ID.IsZero() {
			ref = domain.UserRef{ID: r.UpdatedBy}
		}
		items = append(items, IdeaListItem{IdeaRow: r, Category: cat, Thread: thread, UpdatedBy: ref})
	}

	return &IdeaList{
		Ideas:     items,
		Total:     total,
		Page:      p.Page + 1,
		TotalPage: domain.TotalPages(total, p.Limit),
	}, nil
}

// voteDecision holds the like/dislike toggle rules: voting the same way
// twice retracts the vote, voting the other way moves it. The sets stay
// mutually exclusive.
func voteDecision(i *domain.Idea, user primitive.ObjectID, like bool, at time.Time) domain.VoteUpdate {
	v := domain.VoteUpdate{User: user, At: at}
	if like {
		if i.HasLike(user) {
			v.PullLike = true
			return v
		}
		v.PullDislike = i.HasDislike(user)
		v.PushLike = true
		return v
	}
	if i.HasDislike(user) {
		v.PullDislike = true
		return v
	}
	v.PullLike = i.HasLike(user)
	v.PushDislike = true
	return v
}

func (s *IdeaService) LikeDislike(ctx context.Context, id, actor primitive.ObjectID, like bool) (*domain.Idea, error) {
	idea, err := s.ideas.FindIdeaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, apperr.ErrIdeaNotExisted
	}
	updated, err := s.ideas.ApplyVote(ctx, id, voteDecision(idea, actor, like, s.clock()))
	if err == repo.ErrNotFound {
		return nil, apperr.ErrIdeaNotExisted
	}
	return updated, err
}

// View records a view. Historically every GET appended, even repeats by
// the same user; DedupeViews makes it at-most-once per user.
func (s *IdeaService) View(ctx context.Context, id, actor primitive.ObjectID) (*domain.Idea, error) {
	idea, err := s.ideas.FindIdeaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, apperr.ErrIdeaNotExisted
	}
	if s.DedupeViews && idea.HasView(actor) {
		return idea, nil
	}
	updated, err := s.ideas.AppendView(ctx, id, domain.Engagement{User: actor, CreatedAt: s.clock()})
	if err == repo.ErrNotFound {
		return nil, apperr.ErrIdeaNotExisted
	}
	return updated, err
}

// AddComment re-checks the thread's final closure date and notifies the
// idea's previous last actor when somebody else comments.
func (s *IdeaService) AddComment(ctx context.Context, ideaID primitive.ObjectID, actor *domain.User, content string, isAnonymous bool, reqID string) (*domain.Idea, error) {
	idea, err := s.ideas.FindIdeaByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, apperr.ErrIdeaNotExisted
	}

	now := s.clock()
	thread, err := s.threads.FindThreadByID(ctx, idea.Thread)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, apperr.ErrThreadNotExisted
	}
	if !thread.AcceptsSubmissions(now) {
		return nil, apperr.ErrThreadExpired
	}

	c := domain.Comment{
		ID:          primitive.NewObjectID(),
		Content:     content,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		IsAnonymous: isAnonymous,
		EditHistory: []domain.EditSnapshot{},
	}
	prev := idea.UpdatedBy
	updated, err := s.ideas.PushComment(ctx, ideaID, c)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrIdeaNotExisted
	}
	if err != nil {
		return nil, err
	}

	if !prev.IsZero() && prev != actor.ID {
		if err := s.notifier.IdeaCommented(ctx, updated, actor, prev, c, reqID); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// EditComment snapshots the current content into the edit history before
// overwriting. Only the author (or an admin) may edit.
func (s *IdeaService) EditComment(ctx context.Context, ideaID, commentID primitive.ObjectID, actor *domain.User, content string) (*domain.Idea, error) {
	idea, err := s.ideas.FindIdeaByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, apperr.ErrIdeaNotExisted
	}
	c := idea.CommentByID(commentID)
	if c == nil {
		return nil, apperr.ErrCommentNotExisted
	}
	if !policy.CanTouchComment(actor.Role, c.CreatedBy == actor.ID) {
		return nil, apperr.ErrEditOtherComment
	}

	now := s.clock()
	snap := domain.EditSnapshot{Content: c.Content, CreatedAt: c.CreatedAt, UpdatedAt: now}
	updated, err := s.ideas.EditComment(ctx, ideaID, commentID, snap, content, now)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrCommentNotExisted
	}
	return updated, err
}

func (s *IdeaService) DeleteComment(ctx context.Context, ideaID, commentID primitive.ObjectID, actor *domain.User) (*domain.Idea, error) {
	idea, err := s.ideas.FindIdeaByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, apperr.ErrIdeaNotExisted
	}
	c := idea.CommentByID(commentID)
	if c == nil {
		return nil, apperr.ErrCommentNotExisted
	}
	if !policy.CanTouchComment(actor.Role, c.CreatedBy == actor.ID) {
		return nil, apperr.ErrDeleteOtherComment
	}
	updated, err := s.ideas.RemoveComment(ctx, ideaID, commentID)
	if err == repo.ErrNotFound {
		return nil, apperr.ErrIdeaNotExisted
	}
	return updated, err
}
