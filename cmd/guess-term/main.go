// Command guess-term plays guessing rounds in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessing/internal/config"
	"github.com/robalobadob/guessing/internal/game"
	"github.com/robalobadob/guessing/internal/random"
	"github.com/robalobadob/guessing/internal/term"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	low := flag.Int("low", cfg.Low, "inclusive lower bound")
	high := flag.Int("high", cfg.High, "exclusive upper bound")
	seed := flag.Int64("seed", cfg.Seed, "reproducible seed (0 uses crypto/rand)")
	flag.Parse()

	src := random.Crypto()
	if *seed != 0 {
		src = random.Seeded(*seed)
	}
	round, err := game.New(*low, *high, src)
	if err != nil {
		log.Fatal().Err(err).Int("low", *low).Int("high", *high).Msg("create round")
	}

	// The screen belongs to termbox; logs go to LOG_FILE or nowhere.
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.LogFile).Msg("open log file")
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
	log.Info().Str("roundId", round.ID).Int("low", *low).Int("high", *high).Msg("round started")

	if err := term.Run(term.NewController(round)); err != nil {
		log.Error().Err(err).Msg("terminal")
		fmt.Fprintln(os.Stderr, "guess-term:", err)
		os.Exit(1)
	}
}
