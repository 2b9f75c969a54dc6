package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alligatorO15/fin-lists/internal/api/handlers"
	"github.com/alligatorO15/fin-lists/internal/api/middleware"
	"github.com/alligatorO15/fin-lists/internal/config"
	"github.com/alligatorO15/fin-lists/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router   *gin.Engine
	config   *config.Config
	services *service.Services
	logger   *zap.Logger
	server   *http.Server
}

func NewServer(cfg *config.Config, services *service.Services, logger *zap.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	server := &Server{
		router:   router,
		config:   cfg,
		services: services,
		logger:   logger,
	}
	server.setupRoutes()

	server.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run блокируется до Shutdown; штатная остановка не считается ошибкой
func (s *Server) Run() error {
	s.logger.Info("http server started", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger.Named("http")))
	s.router.Use(middleware.CORS())

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accountHandler := handlers.NewAccountHandler(s.services.Account)
	recordHandler := handlers.NewRecordHandler(s.services.Record)
	categoryHandler := handlers.NewCategoryHandler(s.services.Category)

	protected := s.router.Group("/api/v1")
	protected.Use(middleware.Auth(s.config.JWTSecret))
	{
		groups := protected.Group("/account-groups")
		{
			groups.GET("", accountHandler.ListGroups)
			groups.GET("/:id", accountHandler.GetGroup)
			groups.POST("/:id/drag", accountHandler.Drag)
		}

		accounts := protected.Group("/accounts")
		{
			accounts.POST("/:id/move", accountHandler.Move)
			accounts.DELETE("/:id", accountHandler.Delete)
		}

		protected.GET("/records", recordHandler.List)
		protected.GET("/categories", categoryHandler.List)
	}
}
