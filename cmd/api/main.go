// Command api serves the Pokédex HTTP API.
//
//	@title						Pokédex API
//	@version					1.0
//	@description				Pokémon catalog with statistics, user favorites and teams of up to six.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pokedex/pokedex-api/internal/api"
	"github.com/pokedex/pokedex-api/internal/api/handler"
	"github.com/pokedex/pokedex-api/internal/core/service"
	"github.com/pokedex/pokedex-api/internal/infrastructure/db/mongo"
	"github.com/pokedex/pokedex-api/internal/infrastructure/db/redis"
	"github.com/pokedex/pokedex-api/internal/pkg/config"
	"github.com/pokedex/pokedex-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "pokedex-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	checks := []handler.DependencyCheck{
		{Name: "mongo", Ping: func(ctx context.Context) error { return mongo.Ping(ctx, client) }},
	}

	// Redis only backs login throttling, so the API runs without it.
	var throttle service.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func(rdb *goredis.Client) {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}(rdb)
		throttle = redis.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockout)
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redis.Ping(ctx, rdb) },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected, login throttling enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	pokemons := mongo.NewPokemonRepository(db)
	users := mongo.NewUserRepository(db)
	teams := mongo.NewTeamRepository(db)
	sessions := service.NewTokenIssuer(cfg.JWTSecret)

	e := api.NewRouter(api.Services{
		Auth:      service.NewAuthService(users, teams, sessions, throttle, logger.Component("auth")),
		Catalog:   service.NewCatalogService(pokemons, logger.Component("catalog")),
		Favorites: service.NewFavoriteService(users, pokemons, logger.Component("favorites")),
		Stats:     service.NewStatsService(pokemons, logger.Component("stats")),
		Teams:     service.NewTeamService(teams, pokemons, logger.Component("teams")),
		Sessions:  sessions,
	}, api.Options{
		Logger:                log,
		HealthChecks:          checks,
		AssetsDir:             cfg.Assets.Dir,
		AuthRequestsPerMinute: cfg.Auth.RequestsPerMinute,
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		serveErr <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
