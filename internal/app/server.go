// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"profilehub_backend/internal/account"
	"profilehub_backend/internal/config"
	"profilehub_backend/internal/jobs"
	"profilehub_backend/internal/middleware"
	"profilehub_backend/internal/shared"
	"profilehub_backend/internal/user"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	userHandler    *user.Handler
	accountHandler *account.Handler

	// Jobs
	verificationCleanupJob *jobs.VerificationCleanupJob

	// Middleware instances
	authMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *user.Handler,
	accountHandler *account.Handler,
	verificationCleanupJob *jobs.VerificationCleanupJob,
	db *gorm.DB,
	identityService shared.IdentityService,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(identityService, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "message": "Database is unreachable."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "ProfileHub API is healthy!"})
	})

	api := router.Group("/api")
	userHandler.RegisterRoutes(api, authMW)
	accountHandler.RegisterRoutes(api, authMW)

	// SERVER_TIMEOUT_SECONDS bounds both a single request and the shutdown
	// drain in main.
	requestTimeout := cfg.ServerTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:             httpServer,
		router:                 router,
		cfg:                    cfg,
		logger:                 logger,
		userHandler:            userHandler,
		accountHandler:         accountHandler,
		verificationCleanupJob: verificationCleanupJob,
		authMW:                 authMW,
	}, nil
}

func (s *Server) Start() error {
	if s.verificationCleanupJob != nil {
		if err := s.verificationCleanupJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start verification cleanup job", zap.Error(err))
		}
	} else {
		s.logger.Info("Verification cleanup job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.verificationCleanupJob != nil {
		s.verificationCleanupJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
