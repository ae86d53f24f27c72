// Command numguess serves the number-guessing game over HTTP, or runs it in
// the terminal with the play subcommand.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numguess/internal/config"
	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/httpserver"
	"github.com/robalobadob/numguess/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "numguess",
		Short:        "Guess a number between 1 and 100",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return serve() },
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP (default)",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
	})
	root.AddCommand(newPlayCmd())
	return root
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	st, err := openStore(cfg)
	if err != nil {
		log.Error().Err(err).Str("store", cfg.Store).Msg("failed to open store")
		return err
	}
	defer st.Close()

	srv := httpserver.New(httpserver.Options{
		Store:          st,
		Engine:         game.NewEngine(game.WithStrictParsing(cfg.StrictParse)),
		SessionSecret:  cfg.SessionSecret,
		Secure:         cfg.Production(),
		DefaultLang:    cfg.Language(),
		RequestTimeout: cfg.RequestTimeout,
		ClientOrigin:   cfg.ClientOrigin,
	})
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Str("lang", cfg.Language().String()).Msg("starting numguess")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	return nil
}

// setupLogging applies LOG_LEVEL and uses the console writer outside production.
func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.Store == "sqlite" {
		return store.OpenSQLite(cfg.DatabasePath)
	}
	return store.NewMemoryStore(), nil
}
