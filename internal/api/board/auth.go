package board

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/showboard/showboard/internal/api"
	"github.com/showboard/showboard/internal/models"
	"github.com/showboard/showboard/internal/session"
)

type loginRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

type checkUsernameRequest struct {
	Username string `json:"username"`
}

type updateProfileRequest struct {
	FirstName    string `json:"first_name"`
	PortfolioURL string `json:"portfolio_url"`
}

// login establishes a session. Existing handles log straight in; new
// handles need a first name and get an account created.
func (r *Router) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Respond(c, api.Validation("Invalid request body"))
		return
	}

	username := strings.TrimSpace(req.Username)
	firstName := strings.TrimSpace(req.FirstName)

	if username == "" {
		api.Respond(c, api.Validation("Username is required"))
		return
	}

	ctx := c.Request.Context()

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		api.Respond(c, err)
		return
	}

	returning := user != nil
	if user == nil {
		if firstName == "" {
			api.Respond(c, api.Validation("First name is required for new accounts"))
			return
		}

		user = &models.User{
			Username:     username,
			FirstName:    firstName,
			PortfolioURL: "",
			CreatedAt:    time.Now().UTC(),
		}
		if err := r.users.Create(ctx, user); err != nil {
			// Handle taken concurrently, or the store refused the write.
			r.logger.Error("Failed to create user", zap.String("username", username), zap.Error(err))
			api.Respond(c, api.ServerError("Could not create user"))
			return
		}
	}

	cookie, err := r.sessions.Start(ctx, username)
	if err != nil {
		api.Respond(c, api.ServerError("Could not create session"))
		return
	}
	r.setSessionCookie(c, cookie, int(r.sessions.TTL().Seconds()))

	c.JSON(http.StatusOK, gin.H{"user": user, "returning": returning})
}

// logout clears the session. Idempotent.
func (r *Router) logout(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		if err := r.sessions.End(c.Request.Context(), cookie); err != nil {
			r.logger.Error("Failed to end session", zap.Error(err))
		}
	}
	r.setSessionCookie(c, "", -1)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// checkUsername is a read-only existence probe; it never touches the
// session.
func (r *Router) checkUsername(c *gin.Context) {
	var req checkUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Respond(c, api.Validation("Invalid request body"))
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		api.Respond(c, api.Validation("Username is required"))
		return
	}

	user, err := r.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": user != nil, "user": user})
}

// currentUser returns the profile bound to the active session
func (r *Router) currentUser(c *gin.Context) {
	username := currentUsername(c)
	if username == "" {
		api.Respond(c, api.Unauthenticated())
		return
	}

	user, err := r.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		api.Respond(c, err)
		return
	}
	if user == nil {
		// Session outlived the user record (e.g. a data wipe).
		api.Respond(c, api.NotFound("User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// updateProfile updates the session user's profile. An empty first name
// leaves the stored one unchanged; the portfolio URL is always written,
// empty included.
func (r *Router) updateProfile(c *gin.Context) {
	username := currentUsername(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Respond(c, api.Validation("Invalid request body"))
		return
	}

	firstName := strings.TrimSpace(req.FirstName)
	portfolioURL := strings.TrimSpace(req.PortfolioURL)

	ctx := c.Request.Context()

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		api.Respond(c, err)
		return
	}
	if user == nil {
		api.Respond(c, api.NotFound("User not found"))
		return
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	user.PortfolioURL = portfolioURL

	if err := r.users.Update(ctx, user); err != nil {
		api.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (r *Router) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(session.CookieName, value, maxAge, "/", "", false, true)
}
