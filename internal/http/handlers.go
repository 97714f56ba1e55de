package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/service"
)

type Handler struct {
	Users   *service.UserService
	Ideas   *service.IdeaService
	Threads *service.ThreadService
	Cats    *service.CategoryService
	Deps    *service.DepartmentService
	Notes   *service.NotificationService
	Dash    *service.DashboardService
	Events  *service.Events

	userStore service.UserStore
	JWTSecret string
}

func NewHandler(
	users *service.UserService,
	ideas *service.IdeaService,
	threads *service.ThreadService,
	cats *service.CategoryService,
	deps *service.DepartmentService,
	notes *service.NotificationService,
	dash *service.DashboardService,
	events *service.Events,
	userStore service.UserStore,
	jwtSecret string,
) *Handler {
	return &Handler{
		Users: users, Ideas: ideas, Threads: threads, Cats: cats, Deps: deps,
		Notes: notes, Dash: dash, Events: events,
		userStore: userStore, JWTSecret: jwtSecret,
	}
}

func reqID(c *gin.Context) string { return c.GetString("X-Request-ID") }

func actorID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.GetString("uid"))
	if err != nil {
		return primitive.NilObjectID, apperr.ErrInvalidToken
	}
	return id, nil
}

// actor loads the authenticated user's document. A token whose subject no
// longer resolves is treated as invalid.
func (h *Handler) actor(c *gin.Context) (*domain.User, error) {
	id, err := actorID(c)
	if err != nil {
		return nil, err
	}
	u, err := h.userStore.FindUserByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrInvalidToken
	}
	return u, nil
}

// listParams reads the shared pagination query: page is 1-based and at
// least 1, limit at least 5. Internally pages are 0-based.
func listParams(c *gin.Context) (domain.ListParams, error) {
	page := 1
	if s := c.Query("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return domain.ListParams{}, apperr.ErrUnknownData
		}
		page = v
	}
	limit := 5
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 5 {
			return domain.ListParams{}, apperr.ErrUnknownData
		}
		limit = v
	}
	return domain.ListParams{Page: page - 1, Limit: limit, Sort: c.Query("sort")}, nil
}

func objID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrUnknownData
	}
	return id, nil
}

// audit appends to the event log after a successful operation, reads
// included. A failed append fails the request; the log is part of the
// contract. Lists pass a nil schema id.
func (h *Handler) audit(c *gin.Context, schema domain.EventSchema, action domain.EventAction, schemaID primitive.ObjectID) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	return h.Events.Log(c.Request.Context(), schema, action, schemaID, actor, c.Request.Method+" "+c.FullPath())
}
