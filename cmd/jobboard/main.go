// @title           Job Board API
// @version         1.0
// @description     Job postings, candidate profiles and applications.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentboard/jobboard/internal/api"
	"github.com/talentboard/jobboard/internal/api/handler"
	"github.com/talentboard/jobboard/internal/core/service"
	"github.com/talentboard/jobboard/internal/infrastructure/db/mongo"
	"github.com/talentboard/jobboard/internal/infrastructure/db/redis"
	"github.com/talentboard/jobboard/internal/infrastructure/queue"
	"github.com/talentboard/jobboard/internal/pkg/config"
	"github.com/talentboard/jobboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "jobboard",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	authRepo := mongo.NewAuthRepository(db)
	profileRepo := mongo.NewProfileRepository(db)
	jobRepo := mongo.NewJobRepository(db)
	applicationRepo := mongo.NewApplicationRepository(db)
	avatars, err := mongo.NewAvatarStorage(db, cfg.PublicBaseURL)
	if err != nil {
		return err
	}
	sessions := redis.NewSessionStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(authRepo, profileRepo, sessions, service.AuthOptions{
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		AdminEmails:    cfg.Profile.AdminEmails,
		RequiredFields: cfg.RequiredFields(),
	}, logger.Component("auth"))
	profileService := service.NewProfileService(profileRepo, avatars, cfg.RequiredFields(), logger.Component("profile"))
	policy := service.NewAdminPolicy(profileRepo)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(
		cfg.Jobs.EventWorkers,
		service.NewJobEventService(applicationRepo, logger.Component("job-events")),
		logger.Component("dispatcher"),
	)
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	jobService := service.NewJobService(jobRepo, policy, dispatcher, logger.Component("jobs"))
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, policy, logger.Component("applications"))

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:         authService,
		Profiles:     profileService,
		Jobs:         jobService,
		Applications: applicationService,
		Avatars:      avatars,
		Checks: []handler.DependencyCheck{
			{Name: "mongo", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
	}, logger.Component("http"))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
