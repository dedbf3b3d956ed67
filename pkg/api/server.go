// Package api provides the HTTP API server for the debate service.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/parley-ai/parley/pkg/core"
	"github.com/parley-ai/parley/pkg/debate"
	"github.com/parley-ai/parley/pkg/llm"
	"github.com/parley-ai/parley/pkg/store"
)

// ServerConfig contains configuration for the API server.
type ServerConfig struct {
	Host         string
	Port         int
	AllowOrigins []string
	StoreURI     string
	LogLevel     string
}

// Server represents the HTTP API server.
type Server struct {
	config       *ServerConfig
	logger       *logrus.Logger
	store        core.DebateStore
	registry     *llm.Registry
	orchestrator *debate.Orchestrator
	adjudicator  *debate.Adjudicator
	metrics      *metrics
	engine       *gin.Engine
	upgrader     websocket.Upgrader
}

// NewServer creates a new API server instance.
func NewServer(config *ServerConfig) (*Server, error) {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(config.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	debateStore, err := store.NewStoreFromURI(config.StoreURI)
	if err != nil {
		return nil, fmt.Errorf("failed to create debate store: %w", err)
	}

	registry := llm.NewRegistry(logger)

	server := &Server{
		config:       config,
		logger:       logger,
		store:        debateStore,
		registry:     registry,
		orchestrator: debate.NewOrchestrator(debateStore, registry, logger),
		adjudicator:  debate.NewAdjudicator(debateStore, registry, logger),
		metrics:      newMetrics(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(s.config.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.config.AllowOrigins
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	s.engine.Use(cors.New(corsConfig))

	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	debates := s.engine.Group("/debate")
	{
		debates.POST("/create", s.handleCreateDebate)
		debates.GET("/", s.handleListDebates)
		debates.GET("/models/available", s.handleAvailableModels)
		debates.GET("/:id", s.handleGetDebate)
		debates.POST("/:id/start", s.handleStartDebate)
		debates.POST("/:id/adjudicate", s.handleAdjudicateDebate)
		debates.DELETE("/:id", s.handleDeleteDebate)
		debates.GET("/:id/watch", s.handleWatchDebate)
	}

	// Scaffold groups for future retrieval and tool-protocol support.
	rag := s.engine.Group("/rag")
	{
		rag.GET("/", scaffoldHandler("rag"))
		rag.GET("/health", scaffoldHealthHandler("rag"))
	}
	mcp := s.engine.Group("/mcp")
	{
		mcp.GET("/", scaffoldHandler("mcp"))
		mcp.GET("/health", scaffoldHealthHandler("mcp"))
	}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.WithField("address", address).Info("starting debate API server")
	return s.engine.Run(address)
}

// handleError translates classified errors into HTTP failure responses.
func (s *Server) handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := "internal_error"

	switch core.KindOf(err) {
	case core.KindNotFound:
		status, kind = http.StatusNotFound, string(core.KindNotFound)
	case core.KindState:
		status, kind = http.StatusConflict, string(core.KindState)
	case core.KindConfiguration:
		status, kind = http.StatusUnprocessableEntity, string(core.KindConfiguration)
	case core.KindProvider:
		status, kind = http.StatusBadGateway, string(core.KindProvider)
	case core.KindParse:
		status, kind = http.StatusBadGateway, string(core.KindParse)
	}

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed")
	} else {
		s.logger.WithError(err).Warn("request rejected")
	}

	c.JSON(status, gin.H{
		"error": gin.H{
			"kind":    kind,
			"message": err.Error(),
		},
	})
}

func scaffoldHandler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": service + " endpoint - scaffold for future implementation",
			"status":  "not_implemented",
		})
	}
}

func scaffoldHealthHandler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": service})
	}
}
