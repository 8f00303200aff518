// Package apitest provides an in-process fake of the recognition backend for
// exercising the HTTP clients against real request and response traffic.
package apitest

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/yourorg/bragboard-client/internal/model"
)

// Server is a fake backend. Seed its fields before serving; mutating
// endpoints record what they received so tests can assert on it.
type Server struct {
	mu sync.Mutex

	// Credentials accepted by the login endpoint.
	Email    string
	Password string
	// Token issued on login and required by authenticated endpoints.
	Token string

	User          model.User
	Users         []model.User
	Shoutouts     []model.Shoutout
	Comments      map[int64][]model.Comment
	Notifications []model.Notification
	Unread        int
	Analytics     model.Analytics
	Leaderboard   model.Leaderboard
	Reports       []model.Report

	// Records of mutations received.
	CreatedShoutouts []model.ShoutoutCreate
	CreatedComments  []model.CommentCreate
	AddedReactions   []string
	RemovedReactions []string
	MarkedRead       [][]int64
	Cleared          int
	ResolvedActions  []string

	// Failures injects an HTTP status to return for a given METHOD PATH key,
	// e.g. "GET /api/shoutouts". Detail becomes the error body.
	Failures map[string]int
	Detail   string
}

// NewServer returns a fake backend with a default login of
// jane@example.com / hunter22 issuing the token "test-token".
func NewServer() *Server {
	return &Server{
		Email:    "jane@example.com",
		Password: "hunter22",
		Token:    "test-token",
		User:     model.User{ID: 1, Name: "Jane Doe", Email: "jane@example.com", Department: "Engineering", Role: model.RoleEmployee, IsActive: true},
		Comments: map[int64][]model.Comment{},
	}
}

// Handler returns the routed HTTP handler for the fake backend.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/api/auth/login", s.login)
	r.POST("/api/auth/register", s.register)
	r.POST("/api/auth/refresh", s.refresh)

	authed := r.Group("/", s.requireToken)
	authed.GET("/api/users/me", s.me)
	authed.PUT("/api/users/me", s.updateMe)
	authed.GET("/api/users", s.listUsers)

	authed.GET("/api/shoutouts", s.listShoutouts)
	authed.GET("/api/shoutouts/:id", s.getShoutout)
	authed.POST("/api/shoutouts", s.createShoutout)
	authed.POST("/api/shoutouts/:id/reactions", s.addReaction)
	authed.DELETE("/api/shoutouts/:id/reactions/:type", s.removeReaction)
	authed.GET("/api/shoutouts/:id/reactions/:type/users", s.reactionUsers)
	authed.GET("/api/shoutouts/:id/reactions/users", s.allReactionUsers)
	authed.GET("/api/shoutouts/:id/comments", s.listComments)
	authed.POST("/api/shoutouts/:id/comments", s.createComment)

	authed.GET("/api/notifications", s.listNotifications)
	authed.POST("/api/notifications/read", s.markRead)
	authed.DELETE("/api/notifications", s.clearNotifications)

	authed.GET("/api/admin/analytics", s.analytics)
	authed.GET("/api/admin/leaderboard", s.leaderboard)
	authed.GET("/api/admin/reports", s.listReports)
	authed.POST("/api/admin/reports/:id/resolve", s.resolveReport)
	authed.DELETE("/api/admin/shoutouts/:id", s.deleteShoutout)
	authed.POST("/api/admin/shoutouts/:id/report", s.reportShoutout)

	return r
}

func (s *Server) fail(c *gin.Context) bool {
	s.mu.Lock()
	status, ok := s.Failures[c.Request.Method+" "+c.FullPath()]
	detail := s.Detail
	s.mu.Unlock()
	if !ok {
		return false
	}
	if detail == "" {
		detail = "injected failure"
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
	return true
}

func (s *Server) requireToken(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.Token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}
	c.Next()
}

func (s *Server) login(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	if req.Email != s.Email || req.Password != s.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}
	c.JSON(http.StatusOK, model.TokenPair{
		AccessToken:  s.Token,
		RefreshToken: "refresh-" + s.Token,
		TokenType:    "bearer",
	})
}

func (s *Server) register(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, model.RegisterResponse{RequiresVerification: true})
}

func (s *Server) refresh(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken != "refresh-"+s.Token {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, model.TokenPair{
		AccessToken:  s.Token,
		RefreshToken: "refresh-" + s.Token,
		TokenType:    "bearer",
	})
}

func (s *Server) me(c *gin.Context) {
	if s.fail(c) {
		return
	}
	c.JSON(http.StatusOK, s.User)
}

func (s *Server) updateMe(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var update model.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	s.mu.Lock()
	if update.Name != nil {
		s.User.Name = *update.Name
	}
	if update.Department != nil {
		s.User.Department = *update.Department
	}
	user := s.User
	s.mu.Unlock()
	c.JSON(http.StatusOK, user)
}

func (s *Server) listUsers(c *gin.Context) {
	if s.fail(c) {
		return
	}
	department := c.Query("department")
	out := []model.User{}
	for _, u := range s.Users {
		if department == "" || u.Department == department {
			out = append(out, u)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listShoutouts(c *gin.Context) {
	if s.fail(c) {
		return
	}
	c.JSON(http.StatusOK, s.Shoutouts)
}

func (s *Server) getShoutout(c *gin.Context) {
	if s.fail(c) {
		return
	}
	id := pathID(c, "id")
	for _, sh := range s.Shoutouts {
		if sh.ID == id {
			c.JSON(http.StatusOK, sh)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Shoutout not found"})
}

func (s *Server) createShoutout(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var create model.ShoutoutCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	s.mu.Lock()
	s.CreatedShoutouts = append(s.CreatedShoutouts, create)
	id := int64(len(s.Shoutouts) + 1)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, model.Shoutout{ID: id, Sender: s.User, Message: create.Message})
}

func (s *Server) addReaction(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var create model.ReactionCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	s.mu.Lock()
	s.AddedReactions = append(s.AddedReactions, create.Type)
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) removeReaction(c *gin.Context) {
	if s.fail(c) {
		return
	}
	s.mu.Lock()
	s.RemovedReactions = append(s.RemovedReactions, c.Param("type"))
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) reactionUsers(c *gin.Context) {
	if s.fail(c) {
		return
	}
	c.JSON(http.StatusOK, s.Users)
}

func (s *Server) allReactionUsers(c *gin.Context) {
	if s.fail(c) {
		return
	}
	c.JSON(http.StatusOK, map[string][]model.User{model.ReactionLike: s.Users})
}

func (s *Server) listComments(c *gin.Context) {
	if s.fail(c) {
		return
	}
	comments := s.Comments[pathID(c, "id")]
	if comments == nil {
		comments = []model.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) createComment(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var create model.CommentCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	s.mu.Lock()
	s.CreatedComments = append(s.CreatedComments, create)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, model.Comment{ID: 1, ShoutoutID: pathID(c, "id"), User: s.User, Content: create.Content})
}

func (s *Server) listNotifications(c *gin.Context) {
	if s.fail(c) {
		return
	}
	limit := len(s.Notifications)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n < limit {
			limit = n
		}
	}
	c.JSON(http.StatusOK, model.NotificationList{
		Notifications: s.Notifications[:limit],
		UnreadCount:   s.Unread,
	})
}

func (s *Server) markRead(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var req model.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	s.mu.Lock()
	s.MarkedRead = append(s.MarkedRead, req.IDs)
	s.Unread = 0
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) clearNotifications(c *gin.Context) {
	if s.fail(c) {
		return
	}
	s.mu.Lock()
	s.Cleared++
	s.Notifications = nil
	s.Unread = 0
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) analytics(c *gin.Context) {
	if s.fail(c) {
		return
	}
	c.JSON(http.StatusOK, s.Analytics)
}

func (s *Server) leaderboard(c *gin.Context) {
	if s.fail(c) {
		return
	}
	c.JSON(http.StatusOK, s.Leaderboard)
}

func (s *Server) listReports(c *gin.Context) {
	if s.fail(c) {
		return
	}
	status := c.Query("status")
	out := []model.Report{}
	for _, r := range s.Reports {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) resolveReport(c *gin.Context) {
	if s.fail(c) {
		return
	}
	s.mu.Lock()
	s.ResolvedActions = append(s.ResolvedActions, c.Query("action"))
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteShoutout(c *gin.Context) {
	if s.fail(c) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) reportShoutout(c *gin.Context) {
	if s.fail(c) {
		return
	}
	var create model.ReportCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, model.Report{ID: 1, ShoutoutID: pathID(c, "id"), Reason: create.Reason, Status: model.ReportPending})
}

func pathID(c *gin.Context, name string) int64 {
	id, _ := strconv.ParseInt(c.Param(name), 10, 64)
	return id
}
