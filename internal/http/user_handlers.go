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

type signupReq struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// Signup godoc
// @Summary Create a user account (admin)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body signupReq true "signup"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/users [post]
func (h *Handler) Signup(c *gin.Context) {
	var in signupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.Contains(email, "@") || strings.TrimSpace(in.FirstName) == "" {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	sin := service.SignupInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Role:      domain.UserRole(in.Role),
	}
	if in.Department != "" {
		dep, err := objID(in.Department)
		if err != nil {
			Fail(c, err)
			return
		}
		sin.Department = dep
	}
	actor, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	u, err := h.Users.Signup(c.Request.Context(), sin, actor, reqID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaUser, domain.ActionCreate, u.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, u)
}

type activateReq struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// Activate godoc
// @Summary Activate an account with the emailed code
// @Tags users
// @Accept json
// @Produce json
// @Param payload body activateReq true "activate"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/users/activate [post]
func (h *Handler) Activate(c *gin.Context) {
	var in activateReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Code == "" || len(in.Password) < 8 {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	u, err := h.Users.Activate(c.Request.Context(), strings.ToLower(strings.TrimSpace(in.Email)), in.Code, in.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Login
// @Tags users
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	res, err := h.Users.Login(c.Request.Context(), strings.ToLower(strings.TrimSpace(in.Email)), in.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, res)
}

type emailReq struct {
	Email string `json:"email"`
}

// RequestActivationCode godoc
// @Summary Request a fresh activation code
// @Tags users
// @Accept json
// @Produce json
// @Param payload body emailReq true "email"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/users/activation-code [post]
func (h *Handler) RequestActivationCode(c *gin.Context) {
	var in emailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	if err := h.Users.RequestActivationCode(c.Request.Context(), strings.ToLower(strings.TrimSpace(in.Email))); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, nil)
}

// RequestPasswordReset godoc
// @Summary Request a password reset code
// @Tags users
// @Accept json
// @Produce json
// @Param payload body emailReq true "email"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/users/password-reset [post]
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var in emailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	if err := h.Users.RequestPasswordReset(c.Request.Context(), strings.ToLower(strings.TrimSpace(in.Email))); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, nil)
}

// ResetPassword godoc
// @Summary Reset password with the emailed code
// @Tags users
// @Accept json
// @Produce json
// @Param payload body activateReq true "email, code, new password"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/users/password-reset/confirm [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var in activateReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Code == "" || len(in.Password) < 8 {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	u, err := h.Users.ResetPassword(c.Request.Context(), strings.ToLower(strings.TrimSpace(in.Email)), in.Code, in.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, u)
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword godoc
// @Summary Change own password
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body changePasswordReq true "old and new password"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/users/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	var in changePasswordReq
	if err := c.ShouldBindJSON(&in); err != nil || len(in.NewPassword) < 8 {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	id, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	u, err := h.Users.ChangePassword(c.Request.Context(), id, in.OldPassword, in.NewPassword)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaUser, domain.ActionUpdate, u.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, u)
}

// GetProfile godoc
// @Summary Own profile with department expanded
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} envelope
// @Router /api/users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	id, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	p, err := h.Users.GetProfile(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaUser, domain.ActionRead, id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, p)
}

type profileReq struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Address     string    `json:"address"`
	DOB         time.Time `json:"dob"`
	PhoneNumber string    `json:"phoneNumber"`
	Gender      string    `json:"gender"`
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body profileReq true "profile"
// @Success 200 {object} envelope
// @Router /api/users/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in profileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	id, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), id, domain.ProfileUpdate{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Address:     in.Address,
		DOB:         in.DOB,
		PhoneNumber: in.PhoneNumber,
		Gender:      in.Gender,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaUser, domain.ActionUpdate, u.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, u)
}

type avatarReq struct {
	Avatar string `json:"avatar"`
}

// SetAvatar godoc
// @Summary Set own avatar URL
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body avatarReq true "avatar"
// @Success 200 {object} envelope
// @Router /api/users/avatar [put]
func (h *Handler) SetAvatar(c *gin.Context) {
	var in avatarReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Avatar) == "" {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	id, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	u, err := h.Users.SetAvatar(c.Request.Context(), id, strings.TrimSpace(in.Avatar))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, u)
}

// ListUsers godoc
// @Summary List users (admin / QA manager)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "min 5"
// @Param sort query string false "sort key"
// @Success 200 {object} envelope
// @Router /api/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	p, err := listParams(c)
	if err != nil {
		Fail(c, err)
		return
	}
	l, err := h.Users.ListUsers(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaUser, domain.ActionRead, primitive.NilObjectID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, l)
}

// Deactivate godoc
// @Summary Lock a user account (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} envelope
// @Router /api/users/{id}/deactivate [put]
func (h *Handler) Deactivate(c *gin.Context) {
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
	u, err := h.Users.Deactivate(c.Request.Context(), id, actor)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaUser, domain.ActionUpdate, u.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, u)
}

type changeDepartmentReq struct {
	Department string `json:"department"`
}

// ChangeDepartment godoc
// @Summary Move a user to another department (admin)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param payload body changeDepartmentReq true "department id"
// @Success 200 {object} envelope
// @Router /api/users/{id}/department [put]
func (h *Handler) ChangeDepartment(c *gin.Context) {
	id, err := objID(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	var in changeDepartmentReq
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperr.ErrUnknownData)
		return
	}
	dep, err := objID(in.Department)
	if err != nil {
		Fail(c, err)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		Fail(c, err)
		return
	}
	u, err := h.Users.ChangeDepartment(c.Request.Context(), id, dep, actor)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.audit(c, domain.SchemaUser, domain.ActionUpdate, u.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, u)
}
