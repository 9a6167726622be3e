// handlers.go - HTTP Handler fuer alle Task-Endpoints
// Beinhaltet: Root-, Health-, Tasks- und Task-Handler; bindet JSON-Bodies
// und delegiert an den Dispatcher. Der Upload-Handler ist in upload.go.
package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/version"
)

// RootHandler beantwortet GET / mit Basisinformationen.
func (s *Server) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "visiond",
		"version": version.Version,
		"status":  "running",
		"health":  "/api/health",
	})
}

// HealthHandler beantwortet GET /api/health.
// Ein uninitialisiertes Backend ist "unhealthy", aber kein Transportfehler.
func (s *Server) HealthHandler(c *gin.Context) {
	handle := s.dispatcher.Handle()

	if _, err := handle.Engine(); err != nil {
		c.JSON(http.StatusOK, api.HealthResponse{
			Status:      "unhealthy",
			ModelLoaded: false,
			Version:     version.Version,
		})
		return
	}

	c.JSON(http.StatusOK, api.HealthResponse{
		Status:      "healthy",
		ModelLoaded: handle.Ready(),
		Version:     version.Version,
	})
}

// TasksHandler beantwortet GET /api/v1/tasks.
func (s *Server) TasksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.TaskListResponse{Tasks: api.TaskTypes()})
}

// bindJSON liest den Request-Body. Ein fehlender oder unparsbarer Body ist
// ein Transportfehler (400), kein Task-Fehler.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
		return false
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// requireEngine mappt ein uninitialisiertes Backend auf 503.
func (s *Server) requireEngine(c *gin.Context) bool {
	if _, err := s.dispatcher.Handle().Engine(); err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// Grounding2DHandler verarbeitet POST /api/v1/grounding/2d.
func (s *Server) Grounding2DHandler(c *gin.Context) {
	var req api.Grounding2DRequest
	if !bindJSON(c, &req) || !s.requireEngine(c) {
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.Grounding2D(c.Request.Context(), &req))
}

// SpatialUnderstandingHandler verarbeitet POST /api/v1/spatial/understanding.
func (s *Server) SpatialUnderstandingHandler(c *gin.Context) {
	var req api.SpatialUnderstandingRequest
	if !bindJSON(c, &req) || !s.requireEngine(c) {
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.SpatialUnderstanding(c.Request.Context(), &req))
}

// VideoUnderstandingHandler verarbeitet POST /api/v1/video/understanding.
func (s *Server) VideoUnderstandingHandler(c *gin.Context) {
	var req api.VideoUnderstandingRequest
	if !bindJSON(c, &req) || !s.requireEngine(c) {
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.VideoUnderstanding(c.Request.Context(), &req))
}

// ImageDescriptionHandler verarbeitet POST /api/v1/image/description.
func (s *Server) ImageDescriptionHandler(c *gin.Context) {
	var req api.ImageDescriptionRequest
	if !bindJSON(c, &req) || !s.requireEngine(c) {
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.ImageDescription(c.Request.Context(), &req))
}

// DocumentParsingHandler verarbeitet POST /api/v1/document/parsing.
func (s *Server) DocumentParsingHandler(c *gin.Context) {
	var req api.DocumentParsingRequest
	if !bindJSON(c, &req) || !s.requireEngine(c) {
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.DocumentParsing(c.Request.Context(), &req))
}

// DocumentOCRHandler verarbeitet POST /api/v1/ocr/document.
func (s *Server) DocumentOCRHandler(c *gin.Context) {
	var req api.OCRRequest
	if !bindJSON(c, &req) || !s.requireEngine(c) {
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.DocumentOCR(c.Request.Context(), &req))
}

// WildOCRHandler verarbeitet POST /api/v1/ocr/wild.
func (s *Server) WildOCRHandler(c *gin.Context) {
	var req api.OCRRequest
	if !bindJSON(c, &req) || !s.requireEngine(c) {
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.WildOCR(c.Request.Context(), &req))
}

// ImageComparisonHandler verarbeitet POST /api/v1/image/comparison.
func (s *Server) ImageComparisonHandler(c *gin.Context) {
	var req api.ImageComparisonRequest
	if !bindJSON(c, &req) || !s.requireEngine(c) {
		return
	}

	c.JSON(http.StatusOK, s.dispatcher.ImageComparison(c.Request.Context(), &req))
}
