package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/devfollow/social-network/docs"
	"github.com/devfollow/social-network/internal/api"
	"github.com/devfollow/social-network/internal/api/session"
	"github.com/devfollow/social-network/internal/core/service"
	"github.com/devfollow/social-network/internal/infrastructure/db/mongo"
	"github.com/devfollow/social-network/internal/infrastructure/db/redis"
	"github.com/devfollow/social-network/internal/infrastructure/http/handlers"
	"github.com/devfollow/social-network/internal/pkg/config"
	"github.com/devfollow/social-network/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Social Network API
// @version      1.0
// @description  Registration, sessions, profiles, posts and follows.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "social-network",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	repos := mongo.NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(repos.Users, tokens, cfg.BcryptCost, logger.Component("auth"))
	profileService := service.NewProfileService(authService, repos.Posts, repos.Follows, logger.Component("profile"))
	postService := service.NewPostService(repos.Posts, logger.Component("post"))
	followService := service.NewFollowService(repos.Users, repos.Follows, logger.Component("follow"))

	sessions := session.NewManager(
		redis.NewSessionStore(rdb, cfg.Session.TTL),
		session.Options{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
			TTL:        cfg.Session.TTL,
		},
		logger.Component("session"),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Profiles: profileService,
		Posts:    postService,
		Follows:  followService,
		Tokens:   tokens,
		Sessions: sessions,
		Registry: registry,
		Checks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		Log: logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
