package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/simrec/simrec/internal/config"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "simrec",
		Short:         "simrec: synthetic listener simulation and hybrid music recommendations",
		Long:          "simrec runs populations of synthetic listening agents against a song catalog, builds taste profiles from their interaction history, and serves hybrid content/collaborative recommendations.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("config", "", "path to config file (YAML)")

	rootCmd.AddCommand(
		newSimulateCmd(),
		newOnboardCmd(),
		newRecommendCmd(),
		newSimilarCmd(),
		newTrackCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// loadConfig reads the config file from --config (or default locations) plus
// environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}
