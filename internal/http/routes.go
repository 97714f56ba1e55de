package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/policy"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := AuthJWT(h.JWTSecret)

	users := r.Group("/api/users")
	{
		users.POST("/login", h.Login)
		users.POST("/activate", h.Activate)
		users.POST("/activation-code", h.RequestActivationCode)
		users.POST("/password-reset", h.RequestPasswordReset)
		users.POST("/password-reset/confirm", h.ResetPassword)

		users.POST("", auth, Require(policy.SignupUser, apperr.ErrAdminOnly), h.Signup)
		users.GET("", auth, Require(policy.ListUsers, apperr.ErrNotAdminOrQAM), h.ListUsers)
		users.GET("/profile", auth, h.GetProfile)
		users.PUT("/profile", auth, h.UpdateProfile)
		users.PUT("/avatar", auth, h.SetAvatar)
		users.PUT("/password", auth, h.ChangePassword)
		users.PUT("/:id/deactivate", auth, Require(policy.DeactivateUser, apperr.ErrAdminOnly), h.Deactivate)
		users.PUT("/:id/department", auth, Require(policy.ChangeDepartment, apperr.ErrAdminOnly), h.ChangeDepartment)
	}

	threads := r.Group("/api/threads", auth)
	{
		threads.POST("", Require(policy.CreateThread, apperr.ErrNotAdminOrQAM), h.CreateThread)
		threads.GET("", h.ListThreads)
		threads.GET("/:id", h.GetThread)
	}

	categories := r.Group("/api/categories", auth)
	{
		categories.POST("", Require(policy.ManageCategory, apperr.ErrNotAdminOrQAM), h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id/deactivate", Require(policy.ManageCategory, apperr.ErrNotAdminOrQAM), h.DeactivateCategory)
	}

	departments := r.Group("/api/departments", auth)
	{
		departments.POST("", Require(policy.ManageDepartment, apperr.ErrAdminOnly), h.CreateDepartment)
		departments.GET("", h.ListDepartments)
		departments.GET("/:id", h.GetDepartment)
		departments.PUT("/:id/status", Require(policy.ManageDepartment, apperr.ErrAdminOnly), h.ToggleDepartment)
	}

	ideas := r.Group("/api/ideas", auth)
	{
		ideas.POST("", Require(policy.SubmitIdea, apperr.ErrOnlyStaffSubmitIdea), h.CreateIdea)
		ideas.GET("", h.ListIdeas)
		ideas.GET("/:id", h.GetIdea)
		ideas.PUT("/:id/vote", h.Vote)
		ideas.POST("/:id/comments", h.AddComment)
		ideas.PUT("/:id/comments/:commentId", h.EditComment)
		ideas.DELETE("/:id/comments/:commentId", h.DeleteComment)
	}

	notifications := r.Group("/api/notifications", auth)
	{
		notifications.GET("", h.ListNotifications)
		notifications.PUT("/:id/read", h.MarkNotificationRead)
	}

	r.GET("/api/dashboard", auth, h.Dashboard)

	return r
}
