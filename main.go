package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/data"
	"storefront-service/database"
	"storefront-service/middleware"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const serviceName = "storefront-service"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	log := logger.Log
	defer log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Storage ---
	storage, closeStorage, err := openStorage(cfg, log)
	if err != nil {
		log.Fatal("Storage init failed", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}

	// --- AWS setup (non-fatal) ---
	var (
		publisher aws_pkg.SNSPublisher
		presigner aws_pkg.PutPresigner
		metrics   aws_pkg.MetricsRecorder
	)
	awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
	if err != nil {
		log.Warn("AWS config load failed, checkout events and uploads disabled", zap.Error(err))
	} else {
		publisher = aws_pkg.NewSNSClient(awsCfg)
		if cfg.ProductImageBucket != "" {
			presigner = aws_pkg.NewS3Presigner(awsCfg, cfg.ProductImageBucket, cfg.PresignExpiry)
		}
		metrics = aws_pkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled)
	}

	seed, err := data.Products()
	if err != nil {
		log.Fatal("Failed to load product catalog", zap.Error(err))
	}

	// --- Dependency injection ---
	sessionService := services.NewSessionService(
		repository.NewSessionRepository(storage),
		services.SessionConfig{
			Delay:             cfg.AuthDelay,
			AdminEmail:        cfg.AdminEmail,
			AdminPasswordHash: cfg.AdminPasswordHash,
		},
		metrics,
		log,
	)
	cartService := services.NewCartService(
		repository.NewCartRepository(storage),
		services.CartConfig{
			ShippingCost:        cfg.ShippingCost,
			CheckoutSNSTopicARN: cfg.CheckoutSNSTopicARN,
		},
		publisher,
		metrics,
		log,
	)
	catalogService := services.NewCatalogService(
		seed,
		repository.NewProductOverrideRepository(storage),
		presigner,
		metrics,
		log,
	)

	// --- HTTP router ---
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	limiter := middleware.NewRateLimiter(rate.Limit(20), 40, 10*time.Minute)
	go limiter.Cleanup(bgCtx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.ClientIDHeader, "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", middleware.ClientIDHeader, "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware(limiter))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.MetricsMiddleware(metrics, serviceName))
	r.Use(apperrors.ErrorMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName, "storage": cfg.StorageBackend})
	})

	routes.RegisterRoutes(r, routes.Controllers{
		Session: controllers.NewSessionController(sessionService),
		Cart:    controllers.NewCartController(cartService, sessionService),
		Product: controllers.NewProductController(catalogService),
	}, sessionService, cfg.Env == "production", log)

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Storefront Service started", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := closeStorage(); err != nil {
		log.Error("Storage close error", zap.Error(err))
	}

	log.Info("Storefront Service stopped gracefully")
}

// openStorage connects the configured LocalStorage backend and returns a
// function that releases it.
func openStorage(cfg *config.Config, log *zap.Logger) (repository.LocalStorage, func() error, error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Connected to Redis")
		return repository.NewRedisStorage(client, cfg.StorageTTL), client.Close, nil
	case config.StoragePostgres:
		db, err := database.ConnectPostgres(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		log.Info("Connected to Postgres")
		return repository.NewGormStorage(db), func() error { return database.Close(db) }, nil
	default:
		log.Warn("Using in-memory storage, state is lost on restart")
		return repository.NewMemoryStorage(), func() error { return nil }, nil
	}
}
