package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"airsync/internal/api/handlers"
	"airsync/internal/api/middleware"
	"airsync/internal/config"
	"airsync/internal/database"
	"airsync/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, syncer handlers.Syncer, publisher handlers.EventPublisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	// Initialize handlers
	webhookHandler := handlers.NewWebhookHandler(syncer, publisher, logger)
	syncRecordHandler := handlers.NewSyncRecordHandler(db.DB, logger)

	// Routes
	router.GET("/", handlers.Home)
	router.GET("/healthz", handlers.Health)
	router.POST("/airtable-webhook", middleware.SecretToken(cfg.WebhookSecret), webhookHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/syncs", syncRecordHandler.List)
	}

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      cors.Default().Handler(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
