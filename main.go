package main

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-number/internal/config"
	"github.com/robalobadob/guess-number/internal/httpserver"
	"github.com/robalobadob/guess-number/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, cfg)
	go srv.RunSweeper(context.Background(), cfg.SweepInterval)
	log.Info().
		Str("port", cfg.Port).
		Int("maxInput", cfg.MaxInput).
		Int("maxScore", cfg.MaxScore).
		Bool("lockFinished", cfg.LockFinished).
		Msg("starting guess-number server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
