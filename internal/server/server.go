package server

import (
	"fmt"
	"net/http"
	"time"

	"bakehouse/internal/config"
	custommiddleware "bakehouse/internal/middleware"
	"bakehouse/internal/notify"
	"bakehouse/internal/repository"
	"bakehouse/internal/service"
	"bakehouse/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Repositories bundles the in-memory stores so main can seed them before
// the server starts serving.
type Repositories struct {
	Users         repository.UserRepository
	RefreshTokens repository.RefreshTokenRepository
	Products      repository.ProductRepository
	Carts         repository.CartRepository
	Orders        repository.OrderRepository
}

// NewRepositories creates the full set of in-memory stores.
func NewRepositories() *Repositories {
	return &Repositories{
		Users:         repository.NewUserRepository(),
		RefreshTokens: repository.NewRefreshTokenRepository(),
		Products:      repository.NewProductRepository(),
		Carts:         repository.NewCartRepository(),
		Orders:        repository.NewOrderRepository(),
	}
}

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *Repositories) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "rate_limit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize services
	userService := service.NewUserService(repos.Users, repos.RefreshTokens, cfg.Auth.JWTSecret)
	catalogService := service.NewCatalogService(repos.Products)
	cartService := service.NewCartService(repos.Carts, repos.Products)
	orderService := service.NewOrderService(
		repos.Orders,
		repos.Carts,
		cfg.Pricing.DeliveryFee,
		cfg.Pricing.MinDeliveryLead,
		cfg.Orders.StatusPolicy,
	)

	handoff := notify.NewBuilder(
		cfg.Payment.WhatsAppNumber,
		cfg.Payment.MerchantHandle,
		cfg.Payment.QRBaseURL,
		cfg.Payment.QRSize,
	)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	orderHandler := transport.NewOrderHandler(orderService, handoff, logger)

	// Create guards
	authMiddleware := custommiddleware.AuthMiddleware(cfg.Auth.JWTSecret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	// Register routes
	userHandler.RegisterRoutes(router, authMiddleware)
	catalogHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	cartHandler.RegisterRoutes(router, authMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
