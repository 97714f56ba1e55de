package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/service"
)

// ListNotifications godoc
// @Summary Own notifications, newest first
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "min 5"
// @Success 200 {object} envelope
// @Router /api/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	p, err := listParams(c)
	if err != nil {
		Fail(c, err)
		return
	}
	receiver, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	l, err := h.Notes.List(c.Request.Context(), receiver, p)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdeaNotification, domain.ActionRead, primitive.NilObjectID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, redactNotifications(l))
}

// MarkNotificationRead godoc
// @Summary Mark own notification read
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param id path string true "notification id"
// @Success 200 {object} envelope
// @Failure 403 {object} envelope
// @Router /api/notifications/{id}/read [put]
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	receiver, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	n, err := h.Notes.MarkRead(c.Request.Context(), id, receiver)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdeaNotification, domain.ActionUpdate, n.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, n)
}

// Dashboard godoc
// @Summary Idea rollups: today, yesterday, last five years, per month
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} envelope
// @Router /api/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	var (
		stats *service.DashboardStats
		err   error
	)
	WithSpan(c.Request.Context(), "http.dashboard", func(ctx context.Context) {
		stats, err = h.Dash.Stats(ctx)
	})
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaIdea, domain.ActionRead, primitive.NilObjectID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, stats)
}
