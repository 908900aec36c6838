package controller

import (
	"net/http"

	"melodix/logger"
	"melodix/util/apperr"
	"melodix/web/entity"

	"github.com/gin-gonic/gin"
)

// jsonData sends a success response wrapping obj in the data envelope.
func jsonData(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, entity.DataResponse{Data: obj})
}

// jsonMessage sends a success response carrying only a message.
func jsonMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, entity.MessageResponse{Message: msg})
}

// jsonError maps err to its HTTP status and sends the error body. Unexpected
// errors surface as 500 and are logged with the request path.
func jsonError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		logger.Warningf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, entity.MessageResponse{Message: apperr.Message(err)})
}
