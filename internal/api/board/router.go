package board

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/showboard/showboard/internal/db"
	"github.com/showboard/showboard/internal/session"
	"github.com/showboard/showboard/pkg/logging"
)

// Router sets up Board Service routes
type Router struct {
	db       *db.DB
	users    *db.UserRepository
	posts    *db.PostRepository
	comments *db.CommentRepository
	likes    *db.LikeRepository
	repo     *db.Repository
	sessions *session.Manager
	admin    bool
	logger   *zap.Logger
}

// NewRouter creates a new Board Service router
func NewRouter(database *db.DB, sessions *session.Manager, adminEnabled bool) *Router {
	repo := db.NewRepository(database.DB)
	return &Router{
		db:       database,
		users:    db.NewUserRepository(repo),
		posts:    db.NewPostRepository(repo),
		comments: db.NewCommentRepository(repo),
		likes:    db.NewLikeRepository(repo),
		repo:     repo,
		sessions: sessions,
		admin:    adminEnabled,
		logger:   logging.GetLogger().With(zap.String("component", "board-api")),
	}
}

// SetupRoutes sets up all Board Service routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(r.withSession())

	engine.GET("/health", r.healthHandler)

	apiGroup := engine.Group("/api")
	apiGroup.POST("/login", r.login)
	apiGroup.POST("/logout", r.logout)
	apiGroup.POST("/check-username", r.checkUsername)
	apiGroup.GET("/current-user", r.currentUser)
	apiGroup.GET("/users/:username", r.getUserProfile)
	apiGroup.GET("/posts", r.listPosts)
	apiGroup.GET("/posts/:id", r.getPost)

	authed := apiGroup.Group("", r.requireAuth())
	authed.PUT("/profile", r.updateProfile)
	authed.POST("/posts", r.createPost)
	authed.DELETE("/posts/:id", r.deletePost)
	authed.POST("/posts/:id/like", r.toggleLike)
	authed.POST("/posts/:id/comments", r.addComment)
	authed.DELETE("/comments/:id", r.deleteComment)

	// Unguarded in the original; mounted only when explicitly enabled.
	if r.admin {
		apiGroup.POST("/admin/clear-all", r.clearAll)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "board-api",
	})
}
