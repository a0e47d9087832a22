package board

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/showboard/showboard/internal/api"
	"github.com/showboard/showboard/internal/session"
)

const ctxUsername = "username"

// withSession resolves the session cookie and injects the username into
// the gin context. Requests without a valid session pass through with
// no identity set.
func (r *Router) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		username, err := r.sessions.Resolve(c.Request.Context(), cookie)
		if err != nil {
			r.logger.Error("Failed to resolve session", zap.Error(err))
			c.Next()
			return
		}
		if username != "" {
			c.Set(ctxUsername, username)
		}

		c.Next()
	}
}

// requireAuth aborts with 401 when no session identity was resolved
func (r *Router) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUsername(c) == "" {
			api.Respond(c, api.Unauthenticated())
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUsername returns the session-bound username, or "" when the
// request carries no session.
func currentUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
