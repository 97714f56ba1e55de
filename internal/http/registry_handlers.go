package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/service"
)

type createThreadReq struct {
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Note             string    `json:"note"`
	ClosureDate      time.Time `json:"closureDate"`
	FinalClosureDate time.Time `json:"finalClosureDate"`
}

// CreateThread godoc
// @Summary Create a submission thread (admin / QA manager)
// @Tags threads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createThreadReq true "thread"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/threads [post]
func (h *Handler) CreateThread(c *gin.Context) {
	var in createThreadReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	if !in.ClosureDate.Before(in.FinalClosureDate) {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	t, err := h.Threads.CreateThread(c.Request.Context(), service.CreateThreadInput{
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		Note:             in.Note,
		ClosureDate:      in.ClosureDate,
		FinalClosureDate: in.FinalClosureDate,
	}, actor)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaThread, domain.ActionCreate, t.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, t)
}

// GetThread godoc
// @Summary Thread by id
// @Tags threads
// @Security BearerAuth
// @Produce json
// @Param id path string true "thread id"
// @Success 200 {object} envelope
// @Router /api/threads/{id} [get]
func (h *Handler) GetThread(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	t, err := h.Threads.GetThread(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaThread, domain.ActionRead, id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, t)
}

// ListThreads godoc
// @Summary List threads
// @Tags threads
// @Security BearerAuth
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "min 5"
// @Param sort query string false "sort key"
// @Success 200 {object} envelope
// @Router /api/threads [get]
func (h *Handler) ListThreads(c *gin.Context) {
	p, err := listParams(c)
	if err != nil {
		Fail(c, err)
		return
	}
	l, err := h.Threads.ListThreads(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaThread, domain.ActionRead, primitive.NilObjectID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, l)
}

type createCategoryReq struct {
	Name string `json:"name"`
}

// CreateCategory godoc
// @Summary Create a category (admin / QA manager)
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createCategoryReq true "category"
// @Success 201 {object} envelope
// @Router /api/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var in createCategoryReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	cat, err := h.Cats.CreateCategory(c.Request.Context(), strings.TrimSpace(in.Name), actor)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaCategory, domain.ActionCreate, cat.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, cat)
}

// GetCategory godoc
// @Summary Category by id
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Param id path string true "category id"
// @Success 200 {object} envelope
// @Router /api/categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	cat, err := h.Cats.GetCategory(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaCategory, domain.ActionRead, id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, cat)
}

// DeactivateCategory godoc
// @Summary Deactivate a category (admin / QA manager)
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Param id path string true "category id"
// @Success 200 {object} envelope
// @Router /api/categories/{id}/deactivate [put]
func (h *Handler) DeactivateCategory(c *gin.Context) {
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
	cat, err := h.Cats.DeactivateCategory(c.Request.Context(), id, actor)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaCategory, domain.ActionUpdate, cat.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, cat)
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "min 5"
// @Param sort query string false "sort key"
// @Success 200 {object} envelope
// @Router /api/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	p, err := listParams(c)
	if err != nil {
		Fail(c, err)
		return
	}
	l, err := h.Cats.ListCategories(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaCategory, domain.ActionRead, primitive.NilObjectID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, l)
}

type createDepartmentReq struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// CreateDepartment godoc
// @Summary Create a department (admin)
// @Tags departments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createDepartmentReq true "department"
// @Success 201 {object} envelope
// @Router /api/departments [post]
func (h *Handler) CreateDepartment(c *gin.Context) {
	var in createDepartmentReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	d, err := h.Deps.CreateDepartment(c.Request.Context(), strings.TrimSpace(in.Name), in.Note, actor)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaDepartment, domain.ActionCreate, d.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, d)
}

// GetDepartment godoc
// @Summary Department by id
// @Tags departments
// @Security BearerAuth
// @Produce json
// @Param id path string true "department id"
// @Success 200 {object} envelope
// @Router /api/departments/{id} [get]
func (h *Handler) GetDepartment(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	d, err := h.Deps.GetDepartment(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaDepartment, domain.ActionRead, id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, d)
}

type toggleDepartmentReq struct {
	Status string `json:"status"`
}

// ToggleDepartment godoc
// @Summary Flip a department ACTIVE/INACTIVE (admin)
// @Tags departments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "department id"
// @Param payload body toggleDepartmentReq true "target status"
// @Success 200 {object} envelope
// @Router /api/departments/{id}/status [put]
func (h *Handler) ToggleDepartment(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	var in toggleDepartmentReq
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	target := domain.EntityStatus(in.Status)
	if target != domain.StatusActive && target != domain.StatusInactive {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	d, err := h.Deps.ToggleDepartment(c.Request.Context(), id, target, actor)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaDepartment, domain.ActionUpdate, d.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, d)
}

// ListDepartments godoc
// @Summary List departments
// @Tags departments
// @Security BearerAuth
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "min 5"
// @Param sort query string false "sort key"
// @Success 200 {object} envelope
// @Router /api/departments [get]
func (h *Handler) ListDepartments(c *gin.Context) {
	p, err := listParams(c)
	if err != nil {
		Fail(c, err)
		return
	}
	l, err := h.Deps.ListDepartments(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaDepartment, domain.ActionRead, primitive.NilObjectID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, l)
}
