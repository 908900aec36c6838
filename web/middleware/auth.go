package middleware

import (
	"net/http"
	"strings"

	"melodix/util/apperr"
	"melodix/util/token"
	"melodix/web/entity"
	"melodix/web/policy"
	"melodix/web/session"

	"github.com/gin-gonic/gin"
)

// TokenAuth verifies the bearer token and attaches the caller identity to the
// request context. Any verification failure is reported uniformly as 401.
func TokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			abortWithError(c, apperr.ErrUnauthorized)
			return
		}

		claims, err := token.Verify(raw)
		if err != nil {
			abortWithError(c, apperr.ErrUnauthorized)
			return
		}

		session.SetIdentity(c, policy.Identity{
			UserId: claims.UserId,
			Role:   claims.Role,
		})
		c.Next()
	}
}

// Require rejects the request unless the policy allows the caller to perform
// the given action. Resource-bound decisions are made in the services; this
// covers role-gated routes.
func Require(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.GetIdentity(c)
		if err := policy.Allow(id, action, nil); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, entity.MessageResponse{Message: apperr.Message(err)})
}
