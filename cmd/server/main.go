// @title           Habit Tracker API
// @version         1.0
// @description     Track daily health habits and get AI-generated health tips.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/healthhabits/habit-tracker/internal/api"
	"github.com/healthhabits/habit-tracker/internal/api/handler"
	"github.com/healthhabits/habit-tracker/internal/core/ports"
	"github.com/healthhabits/habit-tracker/internal/core/service"
	"github.com/healthhabits/habit-tracker/internal/infrastructure/completion"
	mongodb "github.com/healthhabits/habit-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/healthhabits/habit-tracker/internal/infrastructure/db/redis"
	"github.com/healthhabits/habit-tracker/internal/pkg/config"
	"github.com/healthhabits/habit-tracker/internal/pkg/token"
	"github.com/healthhabits/habit-tracker/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "habit-tracker",
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init MongoDB
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo initialization failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureCollections(ctx, db, cfg.Mongo.UsersCollection, cfg.Mongo.HabitsCollection); err != nil {
		log.Fatal().Err(err).Msg("mongo collections setup failed")
	}

	authRepo := mongodb.NewAuthRepository(db, cfg.Mongo.UsersCollection)
	habitRepo := mongodb.NewHabitRepository(db, cfg.Mongo.HabitsCollection)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("users index setup failed")
	}
	if err := habitRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("habits index setup failed")
	}

	readiness := []handler.DependencyCheck{handler.MongoCheck(db)}

	// Init Redis (optional suggestion cache)
	var cache ports.SuggestionCache
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	switch {
	case errors.Is(err, redisdb.ErrDisabled):
		log.Info().Msg("suggestion cache disabled")
	case err != nil:
		log.Warn().Err(err).Msg("redis unavailable, continuing without suggestion cache")
	default:
		defer func(c *goredis.Client) { _ = c.Close() }(rdb)
		cache = redisdb.NewSuggestionCache(rdb, cfg.Redis.SuggestionTTL)
		readiness = append(readiness, handler.RedisCheck(rdb))
	}

	// Init services
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	completionClient := completion.NewClient(completion.Config{
		Endpoint:   cfg.Completion.Endpoint,
		APIKey:     cfg.Completion.APIKey,
		Deployment: cfg.Completion.Deployment,
		APIVersion: cfg.Completion.APIVersion,
		Timeout:    cfg.Completion.Timeout,
	})

	authService := service.NewAuthService(authRepo, tokens, logger.Component("auth"))
	habitService := service.NewHabitService(habitRepo, logger.Component("habits"))
	tipService := service.NewTipService(completionClient, habitRepo, cache, logger.Component("tips"))

	e := api.NewRouter(api.Deps{
		AuthService:       authService,
		HabitService:      habitService,
		TipService:        tipService,
		Tokens:            tokens,
		ReadinessChecks:   readiness,
		TipsRatePerMinute: cfg.TipsRatePerMinute,
		Logger:            logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
		return
	}
	log.Info().Msg("shutdown complete")
}
