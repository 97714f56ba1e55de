package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/idea-service/internal/apperr"
	"github.com/tazhibayda/idea-service/internal/log"
)

// Every endpoint answers with the same envelope. errorCode "0" is success;
// anything else comes from the fixed taxonomy clients branch on.
type envelope struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Errors    any    `json:"errors"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{ErrorCode: "0", Message: "Success", Data: data})
}

func Fail(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		c.JSON(ae.Status, envelope{ErrorCode: ae.Code, Message: ae.Message})
		return
	}
	log.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, envelope{ErrorCode: "500", Message: err.Error()})
}
