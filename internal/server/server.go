package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"tienda-pos/internal/config"
	custommiddleware "tienda-pos/internal/middleware"
	"tienda-pos/internal/pos"
	"tienda-pos/internal/repository"
	"tienda-pos/internal/service"
	"tienda-pos/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Redis client, used by the login rate limiter
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Initialize repositories
	operatorRepo := repository.NewOperatorRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Initialize services
	authService := service.NewAuthService(operatorRepo, cfg.JWT.Secret)
	catalogService := service.NewCatalogService(db, categoryRepo, productRepo)
	posService := service.NewPOSService(pos.NewSessionManager(), productRepo)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	posHandler := transport.NewPOSHandler(posService, logger)

	// Create route-level middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminOnly := custommiddleware.RequireAdmin(logger)
	loginRateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:login",
	}, logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware, loginRateLimit)
	catalogHandler.RegisterRoutes(router, authMiddleware, adminOnly)
	posHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
