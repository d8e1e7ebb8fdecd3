package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"outdooradvisor.app/config"
	advisoryerr "outdooradvisor.app/errors"
	"outdooradvisor.app/models"
	"outdooradvisor.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router          *gin.Engine
	db              *gorm.DB
	config          *config.Config
	advisoryService service.AdvisoryServiceInterface
	eventRepo       service.EventRepositoryInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	db *gorm.DB,
	config *config.Config,
	advisoryService service.AdvisoryServiceInterface,
	eventRepo service.EventRepositoryInterface,
) *Server {
	router := gin.Default()

	server := &Server{
		router:          router,
		db:              db,
		config:          config,
		advisoryService: advisoryService,
		eventRepo:       eventRepo,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/advisory", s.getAdvisory)
		api.POST("/events", s.createEvent)
		api.GET("/events/:id/advisory", s.getEventAdvisory)
		api.DELETE("/events/:id", s.deleteEvent)
		api.GET("/debug", s.debugEndpoint)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getAdvisory(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		s.handleError(c, advisoryerr.NewValidationError("latitude parameter is required and must be numeric"))
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		s.handleError(c, advisoryerr.NewValidationError("longitude parameter is required and must be numeric"))
		return
	}
	eventTime, err := time.Parse(time.RFC3339, c.Query("time"))
	if err != nil {
		s.handleError(c, advisoryerr.NewValidationError("time parameter is required in RFC3339 format"))
		return
	}
	eventID := c.DefaultQuery("event_id", "ad-hoc")

	coord := models.Coordinate{Latitude: lat, Longitude: lon}
	slog.Debug("Getting advisory", "event_id", eventID, "time", eventTime, "coordinate", coord.String())

	verdict, err := s.advisoryService.Advise(c.Request.Context(), eventID, eventTime, coord)
	if err != nil {
		slog.Error("Advisory service error", "error", err, "event_id", eventID)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, verdict)
}

func (s *Server) createEvent(c *gin.Context) {
	var req models.EventRequest
	slog.Debug("Handling event registration")

	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, advisoryerr.NewValidationError("invalid request format"))
		return
	}

	event := &models.Event{
		Name:          req.Name,
		ScheduledTime: req.ScheduledTime,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		ContactEmail:  req.ContactEmail,
	}

	if err := s.eventRepo.Create(event); err != nil {
		slog.Error("Event creation error", "error", err, "name", req.Name)
		s.handleError(c, advisoryerr.NewDatabaseError("failed to create event", err))
		return
	}

	slog.Debug("Event created successfully", "event_id", event.ID)
	c.JSON(http.StatusCreated, event)
}

func (s *Server) getEventAdvisory(c *gin.Context) {
	id := c.Param("id")

	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		s.handleError(c, advisoryerr.NewDatabaseError("failed to find event", err))
		return
	}
	if event == nil {
		s.handleError(c, advisoryerr.NewNotFoundError("event not found"))
		return
	}

	verdict, err := s.advisoryService.Advise(c.Request.Context(), event.ID, event.ScheduledTime, event.Coordinate())
	if err != nil {
		slog.Error("Advisory service error", "error", err, "event_id", event.ID)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":    event,
		"advisory": verdict,
	})
}

func (s *Server) deleteEvent(c *gin.Context) {
	id := c.Param("id")

	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		s.handleError(c, advisoryerr.NewDatabaseError("failed to find event", err))
		return
	}
	if event == nil {
		s.handleError(c, advisoryerr.NewNotFoundError("event not found"))
		return
	}

	if err := s.eventRepo.Delete(event); err != nil {
		s.handleError(c, advisoryerr.NewDatabaseError("failed to delete event", err))
		return
	}

	slog.Debug("Event deleted successfully", "event_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (s *Server) debugEndpoint(c *gin.Context) {
	slog.Debug("Debug endpoint called")

	var eventCount int64
	dbErr := s.db.Model(&models.Event{}).Count(&eventCount).Error

	response := gin.H{
		"database": map[string]interface{}{
			"connected":  dbErr == nil,
			"error":      dbErr,
			"eventCount": eventCount,
		},
		"providers": s.advisoryService.GetProviderInfo(),
		"cache":     s.advisoryService.GetCacheMetrics(),
		"config": map[string]interface{}{
			"freshnessWindow": s.config.Cache.FreshnessWindow.String(),
			"maxAge":          s.config.Cache.MaxAge.String(),
			"matchWindow":     s.config.Matcher.Window.String(),
		},
	}

	c.JSON(http.StatusOK, response)
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *advisoryerr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case advisoryerr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case advisoryerr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case advisoryerr.NoForecastError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case advisoryerr.RateLimitError, advisoryerr.UnauthorizedError,
			advisoryerr.UnreachableError, advisoryerr.MalformedResponseError,
			advisoryerr.ProviderUnavailableError:
			statusCode = http.StatusServiceUnavailable
			message = "Forecast provider unavailable"
		case advisoryerr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
