// Package session stores the authenticated identity in the request context.
package session

import (
	"melodix/web/policy"

	"github.com/gin-gonic/gin"
)

const identityKey = "IDENTITY"

// SetIdentity attaches the verified caller identity to the request context.
// It is never persisted across requests.
func SetIdentity(c *gin.Context, id policy.Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the caller identity, or a zero identity when the
// request was not authenticated.
func GetIdentity(c *gin.Context) policy.Identity {
	if obj, ok := c.Get(identityKey); ok {
		if id, ok := obj.(policy.Identity); ok {
			return id
		}
	}
	return policy.Identity{}
}
