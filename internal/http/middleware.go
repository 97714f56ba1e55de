package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/metrics"
	"github.com/tazhibayda/idea-service/internal/policy"
	"github.com/tazhibayda/idea-service/internal/security"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.InFlight.Inc()
		c.Next()
		metrics.InFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// AuthJWT verifies the bearer token and puts uid/email/role into the
// request context. Handlers load the full actor document when they need
// more than the identity.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.AbortWithStatusJSON(apperr.ErrInvalidToken.Status, envelope{
				ErrorCode: apperr.ErrInvalidToken.Code, Message: apperr.ErrInvalidToken.Message,
			})
			return
		}
		tok := strings.TrimSpace(h[len("Bearer "):])
		claims, err := security.ParseAccess(secret, tok)
		if err != nil {
			c.AbortWithStatusJSON(apperr.ErrInvalidToken.Status, envelope{
				ErrorCode: apperr.ErrInvalidToken.Code, Message: apperr.ErrInvalidToken.Message,
			})
			return
		}
		uid := claims.UID
		if uid == "" {
			uid = claims.Subject
		}
		if uid == "" {
			c.AbortWithStatusJSON(apperr.ErrInvalidToken.Status, envelope{
				ErrorCode: apperr.ErrInvalidToken.Code, Message: apperr.ErrInvalidToken.Message,
			})
			return
		}
		c.Set("uid", uid)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// Require gates a route on the capability table. fail is the specific
// taxonomy error the route answers with when the role does not qualify.
func Require(action policy.Action, fail *apperr.Error) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.UserRole(c.GetString("role"))
		if !policy.Can(role, action) {
			c.AbortWithStatusJSON(fail.Status, envelope{ErrorCode: fail.Code, Message: fail.Message})
			return
		}
		c.Next()
	}
}
