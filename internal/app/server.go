// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"poi_backend/internal/auth"
	"poi_backend/internal/category"
	"poi_backend/internal/common"
	"poi_backend/internal/config"
	"poi_backend/internal/middleware"
	"poi_backend/internal/poi"
	"poi_backend/internal/shared"
	"poi_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
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
	authHandler     *auth.Handler
	userHandler     *user.Handler
	categoryHandler *category.Handler
	poiHandler      *poi.Handler

	// Middleware instances
	authMW      gin.HandlerFunc
	adminRoleMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server. It migrates
// the schema, seeds the configured admin principal, and wires the route
// table before the listener starts.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	categoryHandler *category.Handler,
	poiHandler *poi.Handler,
	tokenService shared.TokenService,
	blocklist auth.TokenBlocklistService,
	userService user.Service,
	db *gorm.DB,
) (*Server, error) {
	if err := db.AutoMigrate(&user.User{}, &category.Category{}, &poi.POI{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}
	if err := userService.EnsureAdmin(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to bootstrap admin principal: %w", err)
	}

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

	// Create middleware instances
	authMW := middleware.AuthMiddleware(tokenService, blocklist, cfg, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "POI API is healthy!"})
	})

	// The route table lives at the root; the paths are part of the
	// application's public contract.
	root := router.Group("")
	authHandler.RegisterRoutes(root, authMW)
	userHandler.RegisterRoutes(root, authMW, adminRoleMW)
	categoryHandler.RegisterRoutes(root, authMW)
	poiHandler.RegisterRoutes(root, authMW, adminRoleMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:      httpServer,
		router:          router,
		cfg:             cfg,
		logger:          logger,
		authHandler:     authHandler,
		userHandler:     userHandler,
		categoryHandler: categoryHandler,
		poiHandler:      poiHandler,
		authMW:          authMW,
		adminRoleMW:     adminRoleMW,
	}, nil
}

func (s *Server) Start() error {
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
	return s.httpServer.Shutdown(ctx)
}
