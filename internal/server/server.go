package server

import (
	"fmt"
	"net/http"
	"time"

	"storefront/internal/cart"
	"storefront/internal/config"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	resources *Resources
}

func NewServer(cfg *config.Config, logger *zap.Logger, res *Resources) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.IsDevelopment()))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(repository.DefaultProducts())
	shippingRepo := repository.NewShippingRepository(repository.DefaultShippingOptions())

	// Initialize services
	carts := cart.NewManager(res.Store, logger, cart.WithKey(cfg.Storage.Key))
	checkoutService := service.NewCheckoutService(carts, shippingRepo, logger,
		service.WithDelay(cfg.Checkout.Delay),
	)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(productRepo, shippingRepo, logger)
	cartHandler := transport.NewCartHandler(carts, productRepo, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, logger)

	// Order submission is throttled only when redis is reachable
	var placeOrderLimit func(http.Handler) http.Handler
	if res.Redis != nil {
		placeOrderLimit = custommiddleware.RateLimitMiddleware(res.Redis, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit:checkout",
		}, logger)
	}

	// Register routes
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router, placeOrderLimit)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		resources: res,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if err := s.resources.Close(); err != nil {
		s.logger.Error("Failed to close server resources", zap.Error(err))
	}

	s.logger.Sync()
	return nil
}
