package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vape-shop/internal/config"
	"vape-shop/internal/database"
	"vape-shop/internal/media"
	custommiddleware "vape-shop/internal/middleware"
	"vape-shop/internal/repository"
	"vape-shop/internal/service"
	"vape-shop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	client *mongo.Client
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, client *mongo.Client, redisClient *redis.Client) *Server {
	db := client.Database(cfg.Mongo.Database)

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
			KeyPrefix:         "rate_limit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	colorRepo := repository.NewColorRepository(db)

	// Initialize the image cleanup collaborator
	deleter := media.NewCloudinaryDeleter(cfg.Cloudinary, logger)

	// Initialize services
	tokenService := service.NewTokenService(userRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, deleter, logger)
	categoryService := service.NewCategoryService(categoryRepo, deleter, logger)
	colorService := service.NewColorService(colorRepo)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, tokenService, logger)
	productHandler := transport.NewProductHandler(productService, logger)
	categoryHandler := transport.NewCategoryHandler(categoryService, logger)
	colorHandler := transport.NewColorHandler(colorService, logger)

	// Auth verifies the token; the admin gate resolves the caller's current
	// role from the store on every request.
	auth := custommiddleware.AuthMiddleware(tokenService, logger)
	requireAdmin := custommiddleware.RequireAdmin(userRepo, logger)

	// Register routes
	userHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router, auth, requireAdmin)
	categoryHandler.RegisterRoutes(router, auth, requireAdmin)
	colorHandler.RegisterRoutes(router, auth, requireAdmin)

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
		client: client,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.client != nil {
		if err := database.Disconnect(ctx, s.client, s.logger); err != nil {
			s.logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
