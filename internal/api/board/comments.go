package board

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showboard/showboard/internal/api"
	"github.com/showboard/showboard/internal/models"
)

type addCommentRequest struct {
	Content string `json:"content"`
}

// addComment persists a comment on an existing post
func (r *Router) addComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		api.Respond(c, api.NotFound("Post not found"))
		return
	}

	ctx := c.Request.Context()

	post, err := r.posts.GetByID(ctx, id)
	if err != nil {
		api.Respond(c, err)
		return
	}
	if post == nil {
		api.Respond(c, api.NotFound("Post not found"))
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Respond(c, api.Validation("Invalid request body"))
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		api.Respond(c, api.Validation("Comment content is required"))
		return
	}

	comment := &models.Comment{
		PostID:    id,
		Username:  currentUsername(c),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.comments.Create(ctx, comment); err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// deleteComment removes a comment authored by the session user
func (r *Router) deleteComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		api.Respond(c, api.NotFound("Comment not found"))
		return
	}

	ctx := c.Request.Context()

	comment, err := r.comments.GetByID(ctx, id)
	if err != nil {
		api.Respond(c, err)
		return
	}
	if comment == nil {
		api.Respond(c, api.NotFound("Comment not found"))
		return
	}
	if comment.Username != currentUsername(c) {
		api.Respond(c, api.Forbidden("You can only delete your own comments"))
		return
	}

	if err := r.comments.Delete(ctx, id); err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
