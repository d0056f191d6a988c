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

	"media-catalog/domain/model"
	"media-catalog/domain/repository"
	"media-catalog/infrastructure/cache"
	"media-catalog/infrastructure/clients/thumbnail"
	youtubeclient "media-catalog/infrastructure/clients/youtube"
	"media-catalog/infrastructure/configuration"
	"media-catalog/infrastructure/logger"
	"media-catalog/infrastructure/persistence"
	"media-catalog/infrastructure/pubsub"
	"media-catalog/infrastructure/realtime"
	"media-catalog/infrastructure/storage"
	httpHandler "media-catalog/interfaces/http"
	"media-catalog/server"
	"media-catalog/usecase"

	"github.com/gin-gonic/gin"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Database initialization failed")
		psqlDb = nil
	} else {
		if err := persistence.EnsureVideoSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring video schema")
		}
		logger.GetLogger().Info("Database connected.")
	}

	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without lifecycle events")
		pubSubClient = nil
	}
	videoEvents := pubsub.NewVideoEvents(pubSubClient)

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - metadata caching disabled")
		redisClient = nil
	} else {
		logger.GetLogger().Info("Redis client initialized successfully.")
	}
	metadataCache := cache.NewMetadataCache(redisClient)

	// Durable asset store for thumbnail materialization
	var materializer usecase.IThumbnailMaterializer
	if configuration.C.Storage.Bucket != "" {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:          configuration.C.Storage.Region,
			Bucket:          configuration.C.Storage.Bucket,
			AccessKeyID:     configuration.C.Storage.AccessKeyID,
			SecretAccessKey: configuration.C.Storage.SecretAccessKey,
		})
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("S3 store not available - thumbnails will not be materialized")
		} else {
			materializer = thumbnail.NewMaterializer(s3Store)
		}
	} else {
		logger.GetLogger().Info("Storage bucket not configured - thumbnails will not be materialized")
	}

	// Platform client: a missing API key degrades ingestion to raw records
	// and verification to the deterministic fetch-failed status.
	var platform repository.IVideoPlatform
	youtubeConfig := configuration.GetYouTubeConfig()
	if err := youtubeConfig.Validate(); err != nil {
		var confErr *model.ConfigurationError
		if errors.As(err, &confErr) {
			logger.GetLogger().WithField("key", confErr.Key).Warn("YouTube configuration not found - platform features will be disabled")
		} else {
			logger.GetLogger().WithField("error", err).Warn("YouTube configuration not found - platform features will be disabled")
		}
	} else {
		platform, err = youtubeclient.NewClient(ctx, &youtubeclient.Config{
			APIKey:     youtubeConfig.APIKey,
			MaxRetries: configuration.C.Verifier.MaxRetries,
		})
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to initialize YouTube client - platform features will be disabled")
			platform = nil
		} else {
			logger.GetLogger().Info("YouTube client initialized successfully")
		}
	}

	verificationHub := realtime.NewVerificationHub()

	var videoHandler httpHandler.IVideoHandler
	if psqlDb != nil {
		videoRepository := persistence.NewVideoRepository(psqlDb)

		ingestUsecase := usecase.NewIngestUsecase(videoRepository, platform, materializer, metadataCache, videoEvents)
		verifyUsecase := usecase.NewVerifyUsecase(
			videoRepository,
			platform,
			configuration.C.Verifier.Concurrency,
			time.Duration(configuration.C.Verifier.TimeoutSeconds)*time.Second,
		).WithEvents(videoEvents).
			WithBroadcaster(func(videoID string, result model.VerificationResult) {
				verificationHub.BroadcastVerification(videoID, result)
			})
		catalogUsecase := usecase.NewCatalogUsecase(videoRepository)

		videoHandler = httpHandler.NewVideoHandler(ingestUsecase, verifyUsecase, catalogUsecase)
	} else {
		logger.GetLogger().Error("PostgreSQL not available; catalog endpoints disabled")
	}

	healthHandler := httpHandler.NewHealthHandler()

	router := server.InitiateRouter(videoHandler, healthHandler, server.RouterDeps{
		SecretKey:       app.SecretKey,
		VerificationSSE: func(c *gin.Context) { verificationHub.Serve(c) },
	})

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
