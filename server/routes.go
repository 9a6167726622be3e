// Package server - Haupt-Router und Server-Setup fuer visiond
// Beinhaltet: Server-Struct, Router-Registrierung, Middleware, Server-Start
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/visiond/visiond/engine"
	"github.com/visiond/visiond/envconfig"
	"github.com/visiond/visiond/logutil"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/task"
	"github.com/visiond/visiond/version"
)

var mode string = gin.ReleaseMode

// Server verwaltet den HTTP-Server und den Task-Dispatcher.
type Server struct {
	addr       net.Addr
	dispatcher *task.Dispatcher
}

func init() {
	switch mode {
	case gin.DebugMode:
	case gin.ReleaseMode:
	case gin.TestMode:
	default:
		mode = gin.DebugMode
	}

	gin.SetMode(mode)
}

// NewServer erstellt einen Server um den gegebenen Dispatcher.
func NewServer(dispatcher *task.Dispatcher) *Server {
	return &Server{dispatcher: dispatcher}
}

// GenerateRoutes erstellt und konfiguriert den HTTP-Router.
func (s *Server) GenerateRoutes() (http.Handler, error) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"User-Agent",
		"Accept",
		"X-Requested-With",
	}
	corsConfig.AllowOrigins = envconfig.AllowedOrigins()

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(
		cors.New(corsConfig),
		allowedHostsMiddleware(s.addr),
	)

	// General
	r.HEAD("/", s.RootHandler)
	r.GET("/", s.RootHandler)
	r.HEAD("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/api/health", s.HealthHandler)
	r.GET("/api/v1/tasks", s.TasksHandler)

	// Task endpoints
	r.POST("/api/v1/grounding/2d", s.Grounding2DHandler)
	r.POST("/api/v1/spatial/understanding", s.SpatialUnderstandingHandler)
	r.POST("/api/v1/video/understanding", s.VideoUnderstandingHandler)
	r.POST("/api/v1/video/understanding/upload", s.VideoUploadHandler)
	r.POST("/api/v1/image/description", s.ImageDescriptionHandler)
	r.POST("/api/v1/document/parsing", s.DocumentParsingHandler)
	r.POST("/api/v1/ocr/document", s.DocumentOCRHandler)
	r.POST("/api/v1/ocr/wild", s.WildOCRHandler)
	r.POST("/api/v1/image/comparison", s.ImageComparisonHandler)

	return r, nil
}

// Serve startet den HTTP-Server und initialisiert das Generation-Backend.
func Serve(ln net.Listener) error {
	slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
	slog.Info("server config", "env", envconfig.Values())

	// Engine-Handle wird genau einmal befuellt und danach nur gelesen
	handle := engine.NewHandle()
	backend := envconfig.Backend()
	model := envconfig.Model()
	handle.Set(engine.NewVLLM(backend, model, http.DefaultClient))
	slog.Info("generation backend configured", "backend", backend, "model", model)

	store := media.NewStore(envconfig.TempDir())
	dispatcher := task.NewDispatcher(handle, store)

	s := &Server{addr: ln.Addr(), dispatcher: dispatcher}

	h, err := s.GenerateRoutes()
	if err != nil {
		return err
	}

	slog.Info(fmt.Sprintf("Listening on %s (version %s)", ln.Addr(), version.Version))
	srvr := &http.Server{
		Handler: h,
	}

	// listen for a ctrl+c and shut the server down
	ctx, done := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		srvr.Close()
		done()
	}()

	err = srvr.Serve(ln)
	// If server is closed from the signal handler, wait for the ctx to be
	// done otherwise error out quickly
	if !slices.Contains([]error{http.ErrServerClosed}, err) {
		return err
	}
	<-ctx.Done()
	return nil
}
