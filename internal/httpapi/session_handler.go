package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"study-planner/internal/service"
)

type createSessionRequest struct {
	UserID uint `json:"userId" binding:"required"`
	service.SessionInput
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := s.sessions.Create(c.Request.Context(), req.UserID, req.SessionInput)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) listSessions(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return
	}

	if date := c.Query("date"); date != "" {
		sessions, err := s.sessions.ListByDate(c.Request.Context(), userID, date)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, sessions)
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	sessions, err := s.sessions.ListRecent(c.Request.Context(), userID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
