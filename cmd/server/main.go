package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viniciustorricelli/pensell/internal/adapter/httpapi"
	natsAdapter "github.com/viniciustorricelli/pensell/internal/adapter/messaging/nats"
	"github.com/viniciustorricelli/pensell/internal/adapter/repository/cache"
	mongoRepo "github.com/viniciustorricelli/pensell/internal/adapter/repository/mongodb"
	"github.com/viniciustorricelli/pensell/internal/adapter/storage/s3"
	"github.com/viniciustorricelli/pensell/internal/config"
	"github.com/viniciustorricelli/pensell/internal/mailer"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"github.com/viniciustorricelli/pensell/internal/platform/metrics"
	"github.com/viniciustorricelli/pensell/internal/platform/tracer"
	"github.com/viniciustorricelli/pensell/internal/usecase"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// boostedRefreshInterval is how often the carousel cache is re-primed so
// expired boosts drop out between TTL windows.
const boostedRefreshInterval = 1 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...")

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// OpenTelemetry tracer
	if cfg.OTLPEndpoint != "" {
		tp := tracer.InitTracer(cfg.ServiceName, cfg.OTLPEndpoint, appLogger)
		defer func() {
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := tp.Shutdown(ctxShutdown); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
		appLogger.Info("OpenTelemetry Tracer initialized.")
	} else {
		appLogger.Info("OpenTelemetry Tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	// MongoDB
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	ctxPingMongo, cancelPingMongo := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPingMongo()
	if err := mongoClient.Ping(ctxPingMongo, nil); err != nil {
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	appLogger.Info("Successfully connected and pinged MongoDB.")
	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis (boosted carousel cache)
	adCache, err := cache.NewAdCache(cfg.RedisAddress, time.Duration(cfg.BoostedCacheSeconds)*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer adCache.Close()
	appLogger.Info("Redis ad cache initialized.")

	// NATS
	natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
	if err != nil {
		appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
	}
	defer natsPublisher.Close()

	// MinIO
	photoStorage, err := s3.NewPhotoStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize MinIO storage", zap.Error(err))
	}

	// Mailer
	adminMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, cfg.AdminEmail, appLogger)

	// Repositories
	adRepo, err := mongoRepo.NewAdRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AdRepository", zap.Error(err))
	}
	userRepo, err := mongoRepo.NewUserRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize UserRepository", zap.Error(err))
	}
	favoriteRepo, err := mongoRepo.NewFavoriteRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize FavoriteRepository", zap.Error(err))
	}
	conversationRepo, err := mongoRepo.NewConversationRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ConversationRepository", zap.Error(err))
	}
	messageRepo, err := mongoRepo.NewMessageRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize MessageRepository", zap.Error(err))
	}
	communityRepo, err := mongoRepo.NewCommunityRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize CommunityRepository", zap.Error(err))
	}
	reviewRepo, err := mongoRepo.NewReviewRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ReviewRepository", zap.Error(err))
	}

	// Usecases
	adUsecase := usecase.NewAdUsecase(adRepo, userRepo, adCache, natsPublisher, appLogger)
	favoriteUsecase := usecase.NewFavoriteUsecase(favoriteRepo, adRepo, appLogger)
	chatUsecase := usecase.NewChatUsecase(conversationRepo, messageRepo, adRepo, userRepo, natsPublisher, appLogger)
	boostUsecase := usecase.NewBoostUsecase(adRepo, userRepo, adCache, natsPublisher, appLogger)
	communityUsecase := usecase.NewCommunityUsecase(communityRepo, userRepo, adminMailer, appLogger)
	userUsecase := usecase.NewUserUsecase(userRepo, adRepo, reviewRepo, appLogger)
	reviewUsecase := usecase.NewReviewUsecase(reviewRepo, userRepo, appLogger)
	photoUsecase := usecase.NewPhotoUsecase(photoStorage, appLogger)
	reportUsecase := usecase.NewReportUsecase(adminMailer, appLogger)

	// Metrics
	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	// Boosted carousel refresher
	refreshCtx, cancelRefresh := context.WithCancel(context.Background())
	defer cancelRefresh()
	go func() {
		ticker := time.NewTicker(boostedRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-ticker.C:
				communities, err := communityRepo.FindActive(refreshCtx)
				if err != nil {
					appLogger.Warn("Boosted refresher: failed to list communities", zap.Error(err))
					continue
				}
				ids := make([]string, 0, len(communities))
				for _, c := range communities {
					ids = append(ids, c.ID)
				}
				adUsecase.RefreshBoosted(refreshCtx, ids)
			}
		}
	}()

	// HTTP server
	handler := httpapi.NewHandler(adUsecase, favoriteUsecase, chatUsecase, boostUsecase,
		communityUsecase, userUsecase, reviewUsecase, photoUsecase, reportUsecase,
		metricsManager, appLogger)
	router := httpapi.NewRouter(handler, cfg.JWTSecret, metricsManager)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	cancelRefresh()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
