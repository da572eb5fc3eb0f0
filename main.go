package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessing/assets"
	"github.com/robalobadob/guessing/internal/config"
	"github.com/robalobadob/guessing/internal/httpserver"
	"github.com/robalobadob/guessing/internal/random"
	"github.com/robalobadob/guessing/internal/sqlitedb"
	"github.com/robalobadob/guessing/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := sqlitedb.Migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	src := random.Crypto()
	if cfg.Seed != 0 {
		src = random.Seeded(cfg.Seed)
		log.Warn().Int64("seed", cfg.Seed).Msg("using seeded source; hidden values are reproducible")
	}

	srv := httpserver.New(cfg, store.NewMemoryStore(), db, src)
	log.Info().Str("port", cfg.Port).Int("low", cfg.Low).Int("high", cfg.High).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
