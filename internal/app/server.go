// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lead_capture_backend/internal/auth"
	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/jobs"
	"lead_capture_backend/internal/lead"
	"lead_capture_backend/internal/metrics"
	"lead_capture_backend/internal/middleware"
	"lead_capture_backend/internal/pages"
	"lead_capture_backend/internal/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler  *auth.Handler
	leadHandler  *lead.Handler
	pagesHandler *pages.Handler

	// Jobs
	leadDigestJob *jobs.LeadDigestJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	leadHandler *lead.Handler,
	pagesHandler *pages.Handler,
	leadDigestJob *jobs.LeadDigestJob,
	db *gorm.DB,
	sessionService shared.SessionService,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.SetHTMLTemplate(pages.Templates())

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Schema for the lead store. The unique indexes on email and phone are
	// required: they back-stop the non-atomic duplicate check.
	if err := db.AutoMigrate(&lead.Lead{}); err != nil {
		return nil, fmt.Errorf("failed to migrate leads table: %w", err)
	}

	// Create middleware instances
	authMW := middleware.RequireSession(sessionService, cfg, logger.Named("RequireSession"))
	pageGateMW := middleware.RequireSessionPage(sessionService, cfg, "/auth/signin")
	signInGateMW := middleware.RedirectIfAuthenticated(sessionService, cfg, "/contacts")

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Lead Capture API is healthy!"})
	})

	metrics.Register()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := router.Group("")
	authHandler.RegisterRoutes(root, authMW)
	leadHandler.RegisterRoutes(root, authMW)
	pagesHandler.RegisterRoutes(router, pageGateMW, signInGateMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:    httpServer,
		router:        router,
		cfg:           cfg,
		logger:        logger,
		authHandler:   authHandler,
		leadHandler:   leadHandler,
		pagesHandler:  pagesHandler,
		leadDigestJob: leadDigestJob,
	}, nil
}

func (s *Server) Start() error {
	if s.leadDigestJob != nil {
		if err := s.leadDigestJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start lead digest job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.leadDigestJob != nil {
		s.leadDigestJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
