package server

import (
	"fmt"
	"net/http"
	"time"

	"tienda-api/internal/config"
	"tienda-api/internal/database"
	custommiddleware "tienda-api/internal/middleware"
	"tienda-api/internal/repository"
	"tienda-api/internal/service"
	"tienda-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service) *Server {
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

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, db.Health(r.Context()))
	})

	// Initialize repositories
	gdb := db.DB()
	countryRepo := repository.NewCountryRepository(gdb)
	provinceRepo := repository.NewProvinceRepository(gdb)
	localityRepo := repository.NewLocalityRepository(gdb)
	addressRepo := repository.NewAddressRepository(gdb)
	userRepo := repository.NewUserRepository(gdb)
	productRepo := repository.NewProductRepository(gdb)
	categoryRepo := repository.NewCategoryRepository(gdb)
	priceRepo := repository.NewPriceRepository(gdb)
	discountRepo := repository.NewDiscountRepository(gdb)
	detailRepo := repository.NewProductDetailRepository(gdb)
	imageRepo := repository.NewImageRepository(gdb)
	orderRepo := repository.NewBuyOrderRepository(gdb)
	orderDetailRepo := repository.NewBuyOrderDetailRepository(gdb)

	// Initialize services
	tokenService := service.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute)
	authService := service.NewAuthService(userRepo, tokenService)

	// Admin-only gate for protected resources
	adminGate := []func(http.Handler) http.Handler{
		custommiddleware.AuthMiddleware(tokenService, logger),
		custommiddleware.RequireAdmin(logger),
	}

	// Register routes
	transport.NewAuthHandler(authService, logger).RegisterRoutes(router)
	transport.NewCountryHandler(countryRepo, logger).RegisterRoutes(router)
	transport.NewProvinceHandler(provinceRepo, countryRepo, logger).RegisterRoutes(router)
	transport.NewLocalityHandler(localityRepo, provinceRepo, logger).RegisterRoutes(router)
	transport.NewAddressHandler(addressRepo, localityRepo, logger).RegisterRoutes(router, adminGate...)
	transport.NewUserHandler(userRepo, logger).RegisterRoutes(router)
	transport.NewProductHandler(productRepo, logger).RegisterRoutes(router, adminGate...)
	transport.NewCategoryHandler(categoryRepo, logger).RegisterRoutes(router)
	transport.NewPriceHandler(priceRepo, logger).RegisterRoutes(router)
	transport.NewDiscountHandler(discountRepo, logger).RegisterRoutes(router, adminGate...)
	transport.NewProductDetailHandler(detailRepo, productRepo, priceRepo, logger).RegisterRoutes(router)
	transport.NewImageHandler(imageRepo, detailRepo, logger).RegisterRoutes(router)
	transport.NewBuyOrderHandler(orderRepo, addressRepo, logger).RegisterRoutes(router)
	transport.NewBuyOrderDetailHandler(orderDetailRepo, orderRepo, detailRepo, logger).RegisterRoutes(router)

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
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
