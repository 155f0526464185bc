// Package app wires the storefront backend together: config, connections,
// repositories, services, handlers, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cartevent "github.com/abedalshalabi/abo-zaina-sub001/internal/cart/event"
	carthttp "github.com/abedalshalabi/abo-zaina-sub001/internal/cart/handler/http"
	cartredis "github.com/abedalshalabi/abo-zaina-sub001/internal/cart/repository/redis"
	cartservice "github.com/abedalshalabi/abo-zaina-sub001/internal/cart/service"
	cataloghttp "github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/handler/http"
	catalogpg "github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/repository/postgres"
	catalogservice "github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/service"
	checkoutdomain "github.com/abedalshalabi/abo-zaina-sub001/internal/checkout/domain"
	checkouthttp "github.com/abedalshalabi/abo-zaina-sub001/internal/checkout/handler/http"
	checkoutservice "github.com/abedalshalabi/abo-zaina-sub001/internal/checkout/service"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/config"
	orderevent "github.com/abedalshalabi/abo-zaina-sub001/internal/order/event"
	orderhttp "github.com/abedalshalabi/abo-zaina-sub001/internal/order/handler/http"
	orderpg "github.com/abedalshalabi/abo-zaina-sub001/internal/order/repository/postgres"
	orderservice "github.com/abedalshalabi/abo-zaina-sub001/internal/order/service"
	settingshttp "github.com/abedalshalabi/abo-zaina-sub001/internal/settings/handler/http"
	settingspg "github.com/abedalshalabi/abo-zaina-sub001/internal/settings/repository/postgres"
	settingsservice "github.com/abedalshalabi/abo-zaina-sub001/internal/settings/service"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/database"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/health"
	pkgkafka "github.com/abedalshalabi/abo-zaina-sub001/pkg/kafka"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/middleware"
)

// App owns the service's long-lived resources.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	redis    *redis.Client
	producer *pkgkafka.Producer
	server   *http.Server
}

// New connects to the backing stores and assembles the HTTP server.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pgCfg := cfg.PostgresPoolConfig()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.Kafka.Brokers), logger)

	a := &App{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		redis:    redisClient,
		producer: producer,
	}

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      a.buildRouter(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return a, nil
}

func (a *App) buildRouter() *chi.Mux {
	cfg := a.cfg
	logger := a.logger

	// Repositories
	cartRepo := cartredis.NewCartRepository(a.redis, cfg.Cart.TTL)
	orderRepo := orderpg.NewOrderRepository(a.pool)
	productRepo := catalogpg.NewProductRepository(a.pool)
	categoryRepo := catalogpg.NewCategoryRepository(a.pool)
	brandRepo := catalogpg.NewBrandRepository(a.pool)
	reviewRepo := catalogpg.NewReviewRepository(a.pool)
	settingRepo := settingspg.NewSettingRepository(a.pool)
	shippingRepo := settingspg.NewShippingCityRepository(a.pool)

	// Services
	cartSvc := cartservice.NewCartService(cartRepo, cartevent.NewProducer(a.producer, logger), logger, cfg.Cart.TTL)
	orderSvc := orderservice.NewOrderService(orderRepo, orderevent.NewProducer(a.producer, logger), logger)
	productSvc := catalogservice.NewProductService(productRepo, logger)
	categorySvc := catalogservice.NewCategoryService(categoryRepo, logger)
	brandSvc := catalogservice.NewBrandService(brandRepo, logger)
	reviewSvc := catalogservice.NewReviewService(reviewRepo, productRepo, logger)
	settingsSvc := settingsservice.NewSettingsService(settingRepo, logger)
	shippingSvc := settingsservice.NewShippingService(shippingRepo, logger)

	rule := checkoutdomain.ShippingRule{
		FreeThreshold: cfg.Shipping.FreeThreshold,
		FlatFee:       cfg.Shipping.FlatFee,
	}
	checkoutSvc := checkoutservice.NewCheckoutService(cartSvc, orderSvc, shippingSvc, rule, logger)

	// Health
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return a.pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return a.redis.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", a.producer.Ping)

	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.RateLimit(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, logger))
	r.Use(middleware.CORS)
	r.Use(middleware.ContentTypeJSON)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		carthttp.NewCartHandler(cartSvc, logger).RegisterRoutes(r)
		checkouthttp.NewCheckoutHandler(checkoutSvc, logger).RegisterRoutes(r)
		orderhttp.NewOrderHandler(orderSvc, logger).RegisterRoutes(r)
		cataloghttp.NewProductHandler(productSvc, logger).RegisterRoutes(r)
		cataloghttp.NewCategoryHandler(categorySvc, logger).RegisterRoutes(r)
		cataloghttp.NewBrandHandler(brandSvc, logger).RegisterRoutes(r)
		cataloghttp.NewReviewHandler(reviewSvc, logger).RegisterRoutes(r)
		settingshttp.NewSettingsHandler(settingsSvc, logger).RegisterRoutes(r)
		settingshttp.NewShippingHandler(shippingSvc, logger).RegisterRoutes(r)
	})

	return r
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// Close releases the backing connections.
func (a *App) Close() {
	if err := a.producer.Close(); err != nil {
		a.logger.Error("close kafka producer", slog.String("error", err.Error()))
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("close redis client", slog.String("error", err.Error()))
	}
	a.pool.Close()
}
