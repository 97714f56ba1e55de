package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/service"
)

type createIdeaReq struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Documents   []domain.Document `json:"documents"`
	Category    string            `json:"category"`
	Thread      string            `json:"thread"`
	IsAnonymous bool              `json:"isAnonymous"`
}

// CreateIdea godoc
// @Summary Submit an idea (staff)
// @Tags ideas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createIdeaReq true "idea"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/ideas [post]
func (h *Handler) CreateIdea(c *gin.Context) {
	var in createIdeaReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	cat, err := objID(in.Category)
	if err != nil {
		Fail(c, err)
		return
	}
	thread, err := objID(in.Thread)
	if err != nil {
		Fail(c, err)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		Fail(c, err)
		return
	}
	idea, err := h.Ideas.CreateIdea(c.Request.Context(), service.CreateIdeaInput{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Documents:   in.Documents,
		Category:    cat,
		Thread:      thread,
		IsAnonymous: in.IsAnonymous,
	}, actor, reqID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdea, domain.ActionCreate, idea.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, redactIdea(idea))
}

// GetIdea godoc
// @Summary Idea detail; the read itself is recorded as a view
// @Tags ideas
// @Security BearerAuth
// @Produce json
// @Param id path string true "idea id"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/ideas/{id} [get]
func (h *Handler) GetIdea(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	if _, err := h.Ideas.View(c.Request.Context(), id, actor); err != nil {
		Fail(c, err)
		return
	}
	d, err := h.Ideas.GetIdeaDetail(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdea, domain.ActionRead, id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, redactIdeaDetail(d))
}

func idFilter(c *gin.Context, key string) ([]primitive.ObjectID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	var out []primitive.ObjectID
	for _, s := range strings.Split(raw, ",") {
		id, err := objID(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// ListIdeas godoc
// @Summary List ideas with counts, filters and sorting
// @Tags ideas
// @Security BearerAuth
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "min 5"
// @Param sort query string false "sort key"
// @Param categories query string false "comma separated category ids"
// @Param threads query string false "comma separated thread ids"
// @Param departments query string false "comma separated department ids"
// @Success 200 {object} envelope
// @Router /api/ideas [get]
func (h *Handler) ListIdeas(c *gin.Context) {
	p, err := listParams(c)
	if err != nil {
		Fail(c, err)
		return
	}
	var f domain.IdeaFilter
	if f.Categories, err = idFilter(c, "categories"); err != nil {
		Fail(c, err)
		return
	}
	if f.Threads, err = idFilter(c, "threads"); err != nil {
		Fail(c, err)
		return
	}
	if f.Departments, err = idFilter(c, "departments"); err != nil {
		Fail(c, err)
		return
	}
	var l *service.IdeaList
	WithSpan(c.Request.Context(), "http.idea.list", func(ctx context.Context) {
		l, err = h.Ideas.ListIdeas(ctx, p, f)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdea, domain.ActionRead, primitive.NilObjectID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, redactIdeaList(l))
}

type voteReq struct {
	Type string `json:"type"` // like | dislike
}

// Vote godoc
// @Summary Toggle like/dislike
// @Tags ideas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "idea id"
// @Param payload body voteReq true "like or dislike"
// @Success 200 {object} envelope
// @Router /api/ideas/{id}/vote [put]
func (h *Handler) Vote(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	var in voteReq
	if err := c.ShouldBindJSON(&in); err != nil || (in.Type != "like" && in.Type != "dislike") {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	idea, err := h.Ideas.LikeDislike(c.Request.Context(), id, actor, in.Type == "like")
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdea, domain.ActionUpdate, idea.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, redactIdea(idea))
}

type commentReq struct {
	Content     string `json:"content"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// AddComment godoc
// @Summary Comment on an idea
// @Tags ideas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "idea id"
// @Param payload body commentReq true "comment"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/ideas/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	var in commentReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Content) == "" {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		Fail(c, err)
		return
	}
	idea, err := h.Ideas.AddComment(c.Request.Context(), id, actor, strings.TrimSpace(in.Content), in.IsAnonymous, reqID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdea, domain.ActionUpdate, idea.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, redactIdea(idea))
}

type editCommentReq struct {
	Content string `json:"content"`
}

// EditComment godoc
// @Summary Edit a comment; the previous content goes into its history
// @Tags ideas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "idea id"
// @Param commentId path string true "comment id"
// @Param payload body editCommentReq true "new content"
// @Success 200 {object} envelope
// @Router /api/ideas/{id}/comments/{commentId} [put]
func (h *Handler) EditComment(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	commentID, err := objID(c.Param("commentId"))
	if err != nil {
		Fail(c, err)
		return
	}
	var in editCommentReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Content) == "" {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		Fail(c, err)
		return
	}
	idea, err := h.Ideas.EditComment(c.Request.Context(), id, commentID, actor, strings.TrimSpace(in.Content))
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdea, domain.ActionUpdate, idea.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, redactIdea(idea))
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags ideas
// @Security BearerAuth
// @Produce json
// @Param id path string true "idea id"
// @Param commentId path string true "comment id"
// @Success 200 {object} envelope
// @Router /api/ideas/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	commentID, err := objID(c.Param("commentId"))
	if err != nil {
		Fail(c, err)
		return
	}
	actor, err := h.actor(c)
	if err != nil {
		Fail(c, err)
		return
	}
	idea, err := h.Ideas.DeleteComment(c.Request.Context(), id, commentID, actor)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdea, domain.ActionDelete, idea.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, redactIdea(idea))
}
