package board

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showboard/showboard/internal/api"
	"github.com/showboard/showboard/internal/models"
)

// toggleLike flips the session user's like on a post. Presence of the
// like row is the toggle state; the composite primary key is what keeps
// rapid duplicate toggles from double-counting.
func (r *Router) toggleLike(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		api.Respond(c, api.NotFound("Post not found"))
		return
	}

	ctx := c.Request.Context()
	username := currentUsername(c)

	post, err := r.posts.GetByID(ctx, id)
	if err != nil {
		api.Respond(c, err)
		return
	}
	if post == nil {
		api.Respond(c, api.NotFound("Post not found"))
		return
	}

	exists, err := r.likes.Exists(ctx, id, username)
	if err != nil {
		api.Respond(c, err)
		return
	}

	liked := !exists
	if exists {
		if err := r.likes.Delete(ctx, id, username); err != nil {
			api.Respond(c, err)
			return
		}
	} else {
		like := &models.Like{
			PostID:    id,
			Username:  username,
			CreatedAt: time.Now().UTC(),
		}
		if err := r.likes.Create(ctx, like); err != nil {
			api.Respond(c, api.ServerError("Could not record like"))
			return
		}
	}

	count, err := r.likes.CountByPost(ctx, id)
	if err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": count})
}
