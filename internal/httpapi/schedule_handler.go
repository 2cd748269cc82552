package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"study-planner/internal/planner"
)

type generateRequest struct {
	UserID      uint                 `json:"userId" binding:"required"`
	Preferences *planner.Preferences `json:"preferences"`
}

func (s *Server) generateSchedule(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs := planner.Preferences{}
	if req.Preferences != nil {
		prefs = *req.Preferences
	} else if user, err := s.users.FindByID(c.Request.Context(), req.UserID); err == nil {
		prefs = planner.FromUser(user)
	}

	schedule, err := s.replanner.Generate(c.Request.Context(), req.UserID, prefs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

type syncGoogleRequest struct {
	UserID     uint `json:"userId" binding:"required"`
	ScheduleID uint `json:"scheduleId" binding:"required"`
}

func (s *Server) syncGoogle(c *gin.Context) {
	var req syncGoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.sync == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google integration is not configured"})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	schedule, err := s.schedules.FindOwned(ctx, req.UserID, req.ScheduleID)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := s.sync.SyncSchedule(ctx, user, schedule)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"calendarEventsSynced": result.CalendarEventsSynced,
		"tasksSynced":          result.TasksSynced,
		"totalItems":           result.TotalItems,
	})
}

type replanRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Reason string `json:"reason"`
}

func (s *Server) replanSchedule(c *gin.Context) {
	var req replanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Reason == "" {
		req.Reason = "manual replan"
	}

	schedule, err := s.replanner.Replan(c.Request.Context(), req.UserID, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// currentSchedule renders the active schedule, or null when there is none.
func (s *Server) currentSchedule(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return
	}

	schedule, err := s.schedules.FindActive(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (s *Server) scheduleHistory(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return
	}
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	schedules, err := s.schedules.History(c.Request.Context(), userID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, err
	}
	return uint(id), nil
}
