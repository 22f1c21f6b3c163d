package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "cultofdrive/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"cultofdrive/internal/auth"
	"cultofdrive/internal/authadmin"
	"cultofdrive/internal/cache"
	"cultofdrive/internal/config"
	"cultofdrive/internal/db"
	"cultofdrive/internal/handler"
	"cultofdrive/internal/instagram"
	"cultofdrive/internal/logger"
	"cultofdrive/internal/media"
	"cultofdrive/internal/ratelimit"
	"cultofdrive/internal/repository"
	"cultofdrive/internal/router"
	"cultofdrive/internal/service"
	"cultofdrive/internal/storage"
)

const (
	rateLimitSweepInterval = time.Minute
	shutdownTimeout        = 10 * time.Second
)

// @title Cult of Drive API
// @version 1.0
// @description BMW community API: car gallery, interactions, marketplace, profiles and moderation.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the auth service's JWT.
// @securityDefinitions.apikey AdminKey
// @in header
// @name x-admin-key
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			log.Fatal("auto-migrate", zap.Error(err))
		}
		log.Info("database migrations completed")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unreachable, continuing without cache", zap.Error(err))
	}

	store, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("storage init", zap.Error(err))
	}
	resolver := media.NewResolver(store)

	// Initialize repositories
	carRepo := repository.NewCarRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)
	subscriberRepo := repository.NewSubscriberRepository(gormDB)
	socialRepo := repository.NewSocialPostRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)

	var directory service.UserDirectory
	if cfg.AuthAdminURL != "" {
		directory = authadmin.NewClient(cfg.AuthAdminURL, cfg.AuthServiceKey)
	}

	// Initialize services
	carService := service.NewCarService(carRepo, profileRepo, resolver, service.NewCarValidator(), cacheClient)
	interactionService := service.NewInteractionService(carRepo, favoriteRepo, likeRepo, commentRepo, notificationRepo, profileRepo, resolver, log)
	analyticsService := service.NewAnalyticsService(statsRepo, carRepo, cacheClient, log)
	profileService := service.NewProfileService(profileRepo, carRepo, directory, resolver, cacheClient, log)
	notificationService := service.NewNotificationService(notificationRepo)
	listingService := service.NewListingService(listingRepo, profileRepo, resolver)
	reportService := service.NewReportService(reportRepo)
	uploadService := service.NewUploadService(store, cfg.MaxUploadBytes)
	subscribeService := service.NewSubscribeService(subscriberRepo)
	socialService := service.NewSocialService(socialRepo, instagram.NewClient(cfg.InstagramToken, ""), cacheClient, cfg.SocialFallbackPath, log)

	// Subscribe limiter: shared counters in Redis, local counters otherwise
	memoryLimiter := ratelimit.NewMemoryStore(cfg.SubscribeRateLimit, cfg.SubscribeRateWindow)
	go memoryLimiter.Run(ctx, rateLimitSweepInterval)
	var subscribeLimiter middleware.RateLimiterStore = memoryLimiter
	if cacheClient.Enabled() {
		subscribeLimiter = ratelimit.NewRedisStore(cacheClient, "ratelimit:subscribe:", cfg.SubscribeRateLimit, cfg.SubscribeRateWindow, memoryLimiter, log)
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, auth.NewJWTService(cfg.AuthJWTSecret), subscribeLimiter, router.Handlers{
		Car:          handler.NewCarHandler(carService),
		Interaction:  handler.NewInteractionHandler(interactionService),
		Analytics:    handler.NewAnalyticsHandler(analyticsService),
		Profile:      handler.NewProfileHandler(profileService),
		Notification: handler.NewNotificationHandler(notificationService),
		Listing:      handler.NewListingHandler(listingService),
		Report:       handler.NewReportHandler(reportService),
		Upload:       handler.NewUploadHandler(uploadService),
		Subscribe:    handler.NewSubscribeHandler(subscribeService),
		Social:       handler.NewSocialHandler(socialService),
	})

	log.Info("swagger documentation available", zap.String("url", swaggerURL(cfg)))

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/") + "/swagger/index.html"
}
