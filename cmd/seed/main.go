// Command seed replaces the Pokémon catalog with the contents of a JSON dump.
//
// Usage:
//
//	SEED_FILE=data/pokemons.json MONGO_URI=mongodb://localhost:27017 go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-envconfig"

	"github.com/pokedex/pokedex-api/internal/infrastructure/db/mongo"
	"github.com/pokedex/pokedex-api/internal/pkg/config"
	"github.com/pokedex/pokedex-api/internal/seed"
	"github.com/pokedex/pokedex-api/pkg/logger"
)

// seedConfig is the subset of the service configuration the seeder needs;
// it does not require JWT_SECRET.
type seedConfig struct {
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Mongo    config.MongoConfig
	Assets   config.AssetsConfig
}

var file = flag.String("file", "", "seed file, overrides SEED_FILE")

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg seedConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "pokedex-seed"})

	path := cfg.Assets.SeedFile
	if *file != "" {
		path = *file
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("open seed file")
	}
	defer f.Close()

	entries, report, err := seed.Load(f, seed.Options{AssetsDir: cfg.Assets.Dir, BaseURL: cfg.Assets.BaseURL}, log)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("read seed file")
	}
	log.Info().
		Int("read", report.Read).
		Int("incomplete", report.Incomplete).
		Int("invalid", report.Invalid).
		Int("kept", report.Kept).
		Msg("seed file loaded")

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	inserted, err := mongo.NewPokemonRepository(db).ReplaceAll(ctx, entries)
	if err != nil {
		log.Fatal().Err(err).Msg("replace catalog")
	}
	log.Info().Int("inserted", inserted).Str("database", cfg.Mongo.Database).Msg("catalog seeded")
}
