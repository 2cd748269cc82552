package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"study-planner/internal/google"
	"study-planner/internal/planner"
	"study-planner/internal/repository"
	"study-planner/internal/service"
)

// Server holds the HTTP surface and its collaborators.
type Server struct {
	users       *repository.UserRepository
	schedules   *repository.ScheduleRepository
	categories  *service.CategoryService
	sessions    *service.SessionService
	replanner   *planner.Replanner
	sync        *google.Client // nil when Google integration is off
	auth        *google.Auth
	frontendURL string
}

func NewServer(
	users *repository.UserRepository,
	schedules *repository.ScheduleRepository,
	categories *service.CategoryService,
	sessions *service.SessionService,
	replanner *planner.Replanner,
	sync *google.Client,
	auth *google.Auth,
	frontendURL string,
) *Server {
	return &Server{
		users:       users,
		schedules:   schedules,
		categories:  categories,
		sessions:    sessions,
		replanner:   replanner,
		sync:        sync,
		auth:        auth,
		frontendURL: frontendURL,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID(), CORS(s.frontendURL))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth/google")
	{
		authGroup.GET("/url", s.googleAuthURL)
		authGroup.GET("/callback", s.googleCallback)
		authGroup.POST("/disconnect", s.disconnectGoogle)
	}

	api := r.Group("/api")
	{
		api.POST("/schedule/generate", s.generateSchedule)
		api.POST("/schedule/sync-google", s.syncGoogle)
		api.POST("/schedule/replan", s.replanSchedule)
		api.GET("/schedule/current/:userId", s.currentSchedule)
		api.GET("/schedule/history/:userId", s.scheduleHistory)

		api.POST("/study-sessions", s.createSession)
		api.GET("/study-sessions/:userId", s.listSessions)

		api.POST("/categories", s.createCategory)
		api.GET("/categories/:userId", s.listCategories)
		api.DELETE("/categories/:userId/:id", s.archiveCategory)
	}

	return r
}

// fail maps domain errors to HTTP status codes.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, planner.ErrNoCategories):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
