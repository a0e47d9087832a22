package board

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/showboard/showboard/internal/api"
)

// clearAll wipes every like, comment, post, user and session.
// Operator/maintenance surface, mounted only when admin mode is on.
func (r *Router) clearAll(c *gin.Context) {
	ctx := c.Request.Context()

	if err := r.repo.ClearAll(ctx); err != nil {
		api.Respond(c, err)
		return
	}
	if err := r.sessions.ClearAll(ctx); err != nil {
		api.Respond(c, err)
		return
	}

	r.logger.Warn("All board data cleared", zap.String("remote", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"message": "All data cleared"})
}
