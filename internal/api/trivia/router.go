package trivia

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/showboard/showboard/internal/api"
	"github.com/showboard/showboard/internal/trivia"
	"github.com/showboard/showboard/pkg/logging"
)

// Router sets up Trivia Feed Service routes
type Router struct {
	game   *trivia.Service
	logger *zap.Logger
}

// NewRouter creates a new Trivia Feed Service router
func NewRouter(game *trivia.Service) *Router {
	return &Router{
		game:   game,
		logger: logging.GetLogger().With(zap.String("component", "trivia-api")),
	}
}

// SetupRoutes sets up all Trivia Feed Service routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	apiGroup := engine.Group("/api")
	apiGroup.GET("/genres", r.listGenres)
	apiGroup.GET("/providers", r.listProviders)
	apiGroup.POST("/start-game", r.startGame)
	apiGroup.GET("/health", r.healthHandler)
}

type startGameRequest struct {
	Genre     string   `json:"genre"`
	Providers []string `json:"providers"`
}

// listGenres returns the static genre keyword list
func (r *Router) listGenres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": trivia.GenreKeywords()})
}

// listProviders returns the static provider keyword list
func (r *Router) listProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": trivia.ProviderKeywords()})
}

// startGame assembles one shuffled 20-movie round
func (r *Router) startGame(c *gin.Context) {
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Respond(c, api.Validation("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Genre) == "" {
		api.Respond(c, api.Validation("Genre is required"))
		return
	}

	movies, err := r.game.StartGame(c.Request.Context(), req.Genre, req.Providers)
	if err != nil {
		if trivia.IsInputError(err) {
			api.Respond(c, api.Validation(err.Error()))
			return
		}
		r.logger.Error("Failed to start game", zap.Error(err))
		api.Respond(c, api.ServerError("Could not start game"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies, "total": len(movies)})
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
