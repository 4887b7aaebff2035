package server

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"pvc-shop/internal/config"
	"pvc-shop/internal/database"
	custommiddleware "pvc-shop/internal/middleware"
	"pvc-shop/internal/repository"
	"pvc-shop/internal/service"
	"pvc-shop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers onto one chi router.
// redisClient may be nil, in which case rate limiting is off.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB(), cfg.Database.Database),
	)
	metrics := custommiddleware.NewMetrics(registry)

	for _, mw := range custommiddleware.DefaultMiddlewareStack(cfg.Server.RequestTimeout) {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(metrics.Middleware)
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))

	router.Get("/health", healthHandler(db))
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// Initialize repositories
	sqlDB := db.DB()
	productRepo := repository.NewProductRepository(sqlDB)
	categoryRepo := repository.NewCategoryRepository(sqlDB)
	brandRepo := repository.NewBrandRepository(sqlDB)
	inventoryRepo := repository.NewInventoryRepository(sqlDB)
	promotionRepo := repository.NewPromotionRepository(sqlDB)
	specRepo := repository.NewSpecificationRepository(sqlDB)
	userRepo := repository.NewUserRepository(sqlDB)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, inventoryRepo, specRepo, promotionRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	brandService := service.NewBrandService(brandRepo)
	merchandisingService := service.NewMerchandisingService(inventoryRepo, specRepo, promotionRepo)
	userService := service.NewUserService(userRepo)

	guards := transport.Guards{
		Authenticate: custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger),
		Admin:        custommiddleware.RequireAdmin(logger),
		Staff:        custommiddleware.RequireStaff(logger),
	}

	router.Route("/api/v1", func(r chi.Router) {
		if redisClient != nil && cfg.RateLimit.Enabled {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "pvc_shop:rate_limit",
			}, logger))
		}

		transport.NewProductHandler(catalogService, logger).RegisterRoutes(r, guards)
		transport.NewCategoryHandler(categoryService, logger).RegisterRoutes(r, guards)
		transport.NewBrandHandler(brandService, logger).RegisterRoutes(r, guards)
		transport.NewMerchandisingHandler(merchandisingService, logger).RegisterRoutes(r, guards)
		transport.NewUserHandler(userService, logger).RegisterRoutes(r, guards)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         net.JoinHostPort("", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func healthHandler(db database.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := db.Health()
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	var firstErr error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
			firstErr = fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to close database: %w", err)
			}
		}
	}

	s.logger.Sync()
	return firstErr
}
