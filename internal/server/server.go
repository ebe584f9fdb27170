package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shopgate/internal/admin"
	"shopgate/internal/checkout"
	"shopgate/internal/config"
	custommiddleware "shopgate/internal/middleware"
	"shopgate/internal/payments"
	"shopgate/internal/session"
	"shopgate/internal/transport"
	"shopgate/internal/upstream"
	"shopgate/internal/wishlist"
)

type Server struct {
	*http.Server
	config   *config.Config
	logger   *zap.Logger
	redis    *redis.Client
	sessions *session.Manager
}

func NewServer(cfg *config.Config, logger *zap.Logger, sessions *session.Manager) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Rate limiting, keyed by session when authenticated
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "shopgate_rate_limit",
	}, sessions, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Upstream commerce API client
	api := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger)

	// Initialize services
	resolver := payments.NewStripe(cfg.Stripe.APIKey)
	checkoutService := checkout.NewService(api, resolver, logger)
	wishlistService := wishlist.NewService(api, logger)
	panels := admin.Panels(api, logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(api, sessions, logger)
	catalogHandler := transport.NewCatalogHandler(api, logger)
	cartHandler := transport.NewCartHandler(checkoutService, logger)
	orderHandler := transport.NewOrderHandler(checkoutService, api, logger)
	wishlistHandler := transport.NewWishlistHandler(wishlistService, logger)
	adminHandler := transport.NewAdminHandler(panels, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(sessions, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware)
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router, authMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware)
	wishlistHandler.RegisterRoutes(router, authMiddleware)
	adminHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:   cfg,
		logger:   logger,
		redis:    redisClient,
		sessions: sessions,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
