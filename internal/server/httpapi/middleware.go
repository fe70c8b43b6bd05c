package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

const identityKey = "identity"

// Identity is the authenticated caller, set by authRequired for handlers.
type Identity struct {
	ID    string
	Email string
}

const bearerPrefix = "Bearer "

// authRequired resolves the Authorization header to a user via the user
// service. A missing header, a non-Bearer scheme, and a rejected token all
// answer the same 401 so a probing client learns nothing about which check
// failed.
func (s *Server) authRequired(c *gin.Context) {

	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		s.logger.Error(c.Request.Context(), "authentication failed", "error", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.Set(identityKey, Identity{ID: user.ID, Email: user.Email})
	c.Next()
}

// identityFrom returns the Identity stored by authRequired. Handlers behind
// the middleware can rely on it being present.
func identityFrom(c *gin.Context) Identity {
	v, _ := c.Get(identityKey)
	id, _ := v.(Identity)
	return id
}
