package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"fitlab/internal"
	"fitlab/internal/playground"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Server represents the web server for the fitlab playground
type Server struct {
	router    *gin.Engine
	registry  *playground.Registry
	templates *template.Template
	logger    *internal.Logger
}

// NewServer parses the embedded templates and wires routes
func NewServer(registry *playground.Registry, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"fixed": func(v float64, decimals int) string { return fmt.Sprintf("%.*f", decimals, v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		registry:  registry,
		templates: templates,
		logger:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger(), gin.Recovery())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/playground")
	api.GET("/state", s.handleState)
	api.POST("/params", s.handleParams)
	api.POST("/regenerate", s.handleRegenerate)
	api.GET("/sweep", s.handleSweep)
	api.GET("/export", s.handleExport)
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}
