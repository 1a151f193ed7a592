package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sngm3741/hairline-directory/api/internal/config"
	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/seed"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/blob"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/memory"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/metrics"
	mongodoc "github.com/sngm3741/hairline-directory/api/internal/infrastructure/mongo"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/notify"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/redis"
)

// Build はConfigから全依存を解決して Server を返す。Mongo/Redis/メッセンジャーは任意。
func Build(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	deps := Dependencies{
		Logger:       logger,
		HealthChecks: map[string]func(context.Context) error{},
	}
	fail := func(err error) (*Server, error) {
		for _, closeFn := range deps.Closers {
			_ = closeFn(context.Background())
		}
		return nil, err
	}

	recorder := metrics.NewRecorder()
	deps.Metrics = recorder.Handler()

	media, err := blob.Open(ctx, blob.Config{
		Driver: cfg.Blob.Driver,
		S3: blob.S3Config{
			Region:          cfg.Blob.S3Region,
			Bucket:          cfg.Blob.S3Bucket,
			Endpoint:        cfg.Blob.S3Endpoint,
			AccessKeyID:     cfg.Blob.S3AccessKeyID,
			SecretAccessKey: cfg.Blob.S3SecretAccessKey,
			PathStyle:       cfg.Blob.S3PathStyle,
		},
	})
	if err != nil {
		return fail(fmt.Errorf("open blob store: %w", err))
	}
	deps.Media = media

	seedFn := seed.Initial
	var failures notify.FailureSink
	if cfg.Mongo.Enabled() {
		client, err := connectMongo(ctx, cfg.Mongo)
		if err != nil {
			return fail(err)
		}
		deps.Closers = append(deps.Closers, client.Disconnect)
		deps.HealthChecks["mongo"] = func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}

		db := client.Database(cfg.Mongo.Database)
		loaded, err := loadSeed(ctx, mongodoc.NewSeedRepository(db, collectionsFromConfig(cfg.Mongo)), logger)
		if err != nil {
			return fail(err)
		}
		if loaded != nil {
			seedFn = loaded
		}
		failures = mongodoc.NewFailedNotificationRepository(db, cfg.Mongo.FailedNotificationCollection)
	}

	if cfg.Redis.Addr != "" {
		cache, err := redis.NewCache(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable; using in-process rate limiting")
		} else {
			deps.Cache = cache
			deps.Closers = append(deps.Closers, func(context.Context) error { return cache.Close() })
			deps.HealthChecks["redis"] = cache.Ping
		}
	}

	var notifier application.ModerationNotifier
	if cfg.Messenger.Endpoint != "" {
		notifier = notify.NewMessenger(notify.Config{
			Endpoint:            cfg.Messenger.Endpoint,
			PrimaryDestination:  cfg.Messenger.AdminDestination,
			FallbackDestination: cfg.Messenger.FallbackDestination,
			AdminBaseURL:        cfg.Messenger.AdminBaseURL,
			Timeout:             cfg.Messenger.Timeout,
		}, failures, logger)
	}

	service, err := application.NewService(ctx, memory.NewStore(), application.Options{
		Seed:     seedFn,
		Media:    blob.NewUploader(media, cfg.Blob.MediaBaseURL),
		Notifier: notifier,
		Metrics:  recorder,
		Latency:  application.DefaultLatency().Scale(cfg.LatencyScale),
		Logger:   logger,
	})
	if err != nil {
		return fail(fmt.Errorf("create directory service: %w", err))
	}
	deps.Service = service
	// Drain notifications before the failure sink's client disconnects.
	deps.Closers = append([]func(context.Context) error{service.WaitNotifications}, deps.Closers...)

	return New(cfg, deps), nil
}

func connectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// loadSeed returns nil when the database has not been seeded yet.
func loadSeed(ctx context.Context, repo *mongodoc.SeedRepository, logger zerolog.Logger) (func() application.State, error) {
	state, err := repo.Load(ctx)
	if errors.Is(err, mongodoc.ErrSeedEmpty) {
		logger.Warn().Msg("mongo seed collections are empty; using built-in seed")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load seed from mongo: %w", err)
	}
	logger.Info().Int("clinics", len(state.Clinics)).Int("users", len(state.Users)).Msg("seed loaded from mongo")
	return state.Clone, nil
}

func collectionsFromConfig(cfg config.MongoConfig) mongodoc.Collections {
	return mongodoc.Collections{
		Clinics:           cfg.ClinicCollection,
		Reviews:           cfg.ReviewCollection,
		Users:             cfg.UserCollection,
		Claims:            cfg.ClaimCollection,
		Submissions:       cfg.SubmissionCollection,
		BlogPosts:         cfg.BlogPostCollection,
		ProductReviews:    cfg.ProductReviewCollection,
		Subscribers:       cfg.SubscriberCollection,
		Treatments:        cfg.TreatmentCollection,
		Cities:            cfg.CityCollection,
		ProductCategories: cfg.ProductCategoryCollection,
	}
}
