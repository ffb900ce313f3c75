package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-summarizer/errors"
	dto "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/validator"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	auth           echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers. A nil auth middleware
// leaves the API open.
func NewRouter(cfg *config.Config, meetingHandler *Meeting, auth echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		auth:           auth,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	if e.Validator == nil {
		e.Validator = validator.New()
	}

	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	if rt.auth != nil {
		v1.Use(rt.auth)
	}

	rt.setupMeetingRoutes(v1)
	v1.RouteNotFound("/*", rt.routeNotFound)
}

// setupMeetingRoutes configures meeting pipeline routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	if rt.meetingHandler == nil {
		meetings.Any("", rt.notImplemented)
		meetings.Any("/*", rt.notImplemented)
		return
	}

	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.GET("/:id/transcript", rt.meetingHandler.GetTranscript)
	meetings.POST("/:id/transcribe", rt.meetingHandler.Transcribe)
	meetings.POST("/:id/summarize", rt.meetingHandler.Summarize)
	meetings.POST("/:id/process", rt.meetingHandler.Process)
	meetings.POST("/:id/custom-summary", rt.meetingHandler.CustomSummary)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// routeNotFound answers unknown API paths in the standard error shape
func (rt *Router) routeNotFound(c echo.Context) error {
	return HandleError(nil, c, errors.ErrNotFound("Route "+c.Request().URL.Path))
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	resp := dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}
	if rt.cfg != nil {
		resp.Version = rt.cfg.Server.Version
		resp.Environment = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, resp)
}
