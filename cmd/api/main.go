package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/asset-service/internal/api/http"
	"github.com/spec-kit/asset-service/internal/api/http/handlers"
	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/blob"
	"github.com/spec-kit/asset-service/internal/config"
	"github.com/spec-kit/asset-service/internal/events"
	"github.com/spec-kit/asset-service/internal/mailer"
	"github.com/spec-kit/asset-service/internal/observability"
	"github.com/spec-kit/asset-service/internal/persistence"
	"github.com/spec-kit/asset-service/internal/ratelimit"
	"github.com/spec-kit/asset-service/internal/repository"
	"github.com/spec-kit/asset-service/internal/service"
	"github.com/spec-kit/asset-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoStore, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer mongoStore.Close(logger)

	if cfg.Mongo.EnsureIndexes {
		if err := persistence.EnsureIndexes(ctx, mongoStore.Database, logger); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	blobs, uploadsDir, err := newBlobStore(cfg.Blob)
	if err != nil {
		logger.Fatal("failed to init blob store", zap.Error(err))
	}
	logger.Info("blob store selected", zap.String("provider", cfg.Blob.Provider))

	mail, err := mailer.NewFromConfig(cfg.Email, logger)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}

	notifier := worker.NewNotificationWorker(logger, 2, 128, 30*time.Second)
	notifier.Start(ctx)

	db := mongoStore.Database
	userRepo := repository.NewUserRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		UserRepo:   userRepo,
		Mailer:     mail,
		Queue:      notifier,
		Logger:     logger,
	}).RegisterHandlers()

	revocations := auth.NewRedisRevocations(redis.Client)
	otpService := service.NewOTPService(service.OTPDependencies{
		UserRepo: userRepo,
		Mailer:   mail,
		TTL:      cfg.Auth.OTPTTL(),
		Logger:   logger,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		OTP:         otpService,
		Revocations: revocations,
		Logger:      logger,
	})
	if cfg.Admin.Bootstrap {
		created, err := authService.BootstrapAdmin(ctx, cfg.Admin)
		if err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
		logger.Info("admin bootstrap finished", zap.Bool("created", created))
	}

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:     userRepo,
		PropertyRepo: propertyRepo,
		Blobs:        blobs,
		BcryptCost:   cfg.Auth.BcryptCost,
		Logger:       logger,
	})
	assetService := service.NewAssetService(service.AssetDependencies{
		AssetRepo:  assetRepo,
		Blobs:      blobs,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		CategoryRepo:    repository.NewCategoryRepository(db),
		SubcategoryRepo: repository.NewSubcategoryRepository(db),
		ItemRepo:        repository.NewItemRepository(db),
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		MaintenanceRepo: repository.NewMaintenanceRequestRepository(db),
		EquipmentRepo:   repository.NewEquipmentRequestRepository(db),
		Dispatcher:      dispatcher,
		Logger:          logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.App.BodyLimitMB * 1024 * 1024,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	cookie := handlers.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.App.IsProduction()}
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		APIPrefix:  cfg.App.APIPrefix,
		UploadsDir: uploadsDir,
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"mongo": mongoStore,
			"redis": redis,
		}, metrics),
		Auth:           handlers.NewAuthHandler(authService, cookie),
		Users:          handlers.NewUsersHandler(userService, authService),
		Assets:         handlers.NewAssetsHandler(assetService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Properties:     handlers.NewPropertiesHandler(service.NewPropertyService(propertyRepo, assetRepo)),
		Requests:       handlers.NewRequestsHandler(requestService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo, revocations, cfg.Auth.CookieName, logger),
		Limiter:        ratelimit.NewRedisLimiter(redis.Client, "ratelimit", cfg.RateLimit.Requests, cfg.RateLimit.Window()),
		Logger:         logger,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	notifier.Stop()
}

// newBlobStore returns the configured store and, for the local store, the
// directory to serve under /uploads.
func newBlobStore(cfg config.BlobConfig) (blob.Store, string, error) {
	if cfg.Provider == "cloudinary" {
		store, err := blob.NewCloudinaryStore(cfg)
		return store, "", err
	}
	store, err := blob.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", err
	}
	return store, store.Root(), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
