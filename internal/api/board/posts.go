package board

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showboard/showboard/internal/api"
	"github.com/showboard/showboard/internal/models"
)

type createPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	GithubURL   string `json:"github_url"`
}

// listPosts returns every post, newest first, annotated for the viewer
func (r *Router) listPosts(c *gin.Context) {
	ctx := c.Request.Context()

	posts, err := r.posts.ListNewest(ctx)
	if err != nil {
		api.Respond(c, err)
		return
	}

	annotated, err := r.annotatePosts(ctx, posts, currentUsername(c))
	if err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": annotated})
}

// getUserProfile returns a user's profile together with their posts
func (r *Router) getUserProfile(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.Param("username")

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		api.Respond(c, err)
		return
	}
	if user == nil {
		api.Respond(c, api.NotFound("User not found"))
		return
	}

	posts, err := r.posts.ListByUserNewest(ctx, username)
	if err != nil {
		api.Respond(c, err)
		return
	}

	annotated, err := r.annotatePosts(ctx, posts, currentUsername(c))
	if err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"posts":      annotated,
		"post_count": len(annotated),
	})
}

// createPost persists a new post for the session user
func (r *Router) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Respond(c, api.Validation("Invalid request body"))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		api.Respond(c, api.Validation("Title is required"))
		return
	}

	post := &models.Post{
		Username:    currentUsername(c),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		VideoURL:    strings.TrimSpace(req.VideoURL),
		GithubURL:   strings.TrimSpace(req.GithubURL),
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.posts.Create(c.Request.Context(), post); err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// getPost returns one post with its comment thread
func (r *Router) getPost(c *gin.Context) {
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

	annotated, err := r.annotatePost(ctx, *post, currentUsername(c))
	if err != nil {
		api.Respond(c, err)
		return
	}

	comments, err := r.comments.ListByPost(ctx, id)
	if err != nil {
		api.Respond(c, err)
		return
	}
	annotatedComments, err := r.annotateComments(ctx, comments)
	if err != nil {
		api.Respond(c, err)
		return
	}

	detail := models.PostDetail{
		AnnotatedPost: annotated,
		Comments:      annotatedComments,
	}
	c.JSON(http.StatusOK, gin.H{"post": detail})
}

// deletePost removes a post owned by the session user, children first
func (r *Router) deletePost(c *gin.Context) {
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
	if post.Username != currentUsername(c) {
		api.Respond(c, api.Forbidden("You can only delete your own posts"))
		return
	}

	if err := r.posts.DeleteCascade(ctx, id); err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// annotatePost decorates a post with its owner's first name and
// engagement counters.
func (r *Router) annotatePost(ctx context.Context, post models.Post, viewer string) (models.AnnotatedPost, error) {
	annotated := models.AnnotatedPost{Post: post}

	owner, err := r.users.GetByUsername(ctx, post.Username)
	if err != nil {
		return annotated, err
	}
	if owner != nil {
		annotated.FirstName = owner.FirstName
	}

	annotated.LikeCount, err = r.likes.CountByPost(ctx, post.ID)
	if err != nil {
		return annotated, err
	}
	annotated.CommentCount, err = r.comments.CountByPost(ctx, post.ID)
	if err != nil {
		return annotated, err
	}
	if viewer != "" {
		annotated.LikedByUser, err = r.likes.Exists(ctx, post.ID, viewer)
		if err != nil {
			return annotated, err
		}
	}

	return annotated, nil
}

func (r *Router) annotatePosts(ctx context.Context, posts []models.Post, viewer string) ([]models.AnnotatedPost, error) {
	annotated := make([]models.AnnotatedPost, 0, len(posts))
	for _, post := range posts {
		a, err := r.annotatePost(ctx, post, viewer)
		if err != nil {
			return nil, err
		}
		annotated = append(annotated, a)
	}
	return annotated, nil
}

func (r *Router) annotateComments(ctx context.Context, comments []models.Comment) ([]models.AnnotatedComment, error) {
	names := make(map[string]string)
	annotated := make([]models.AnnotatedComment, 0, len(comments))
	for _, comment := range comments {
		name, ok := names[comment.Username]
		if !ok {
			author, err := r.users.GetByUsername(ctx, comment.Username)
			if err != nil {
				return nil, err
			}
			if author != nil {
				name = author.FirstName
			}
			names[comment.Username] = name
		}
		annotated = append(annotated, models.AnnotatedComment{Comment: comment, FirstName: name})
	}
	return annotated, nil
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
