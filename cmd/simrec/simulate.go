package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/simrec/simrec/internal/adapters/catalog"
	"github.com/simrec/simrec/internal/adapters/sqlite"
	"github.com/simrec/simrec/internal/config"
	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/core/ports"
	"github.com/simrec/simrec/internal/ledger"
	"github.com/simrec/simrec/internal/onboarding"
	"github.com/simrec/simrec/internal/recommend"
	"github.com/simrec/simrec/internal/sim"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a multi-day listening simulation and write reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applySimulateFlags(cmd, cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runSimulate(ctx, cfg)
		},
	}

	cmd.Flags().Int("days", 0, "override simulation length in days")
	cmd.Flags().Int64("seed", 0, "override simulation seed")
	cmd.Flags().Int("workers", 0, "override worker count")
	return cmd
}

func applySimulateFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("days") {
		cfg.Simulate.Days, _ = cmd.Flags().GetInt("days")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Simulate.Workers, _ = cmd.Flags().GetInt("workers")
	}
}

func runSimulate(ctx context.Context, cfg *config.Config) error {
	log := newLogger(cfg.Logging)

	store, err := catalog.Load(cfg.Catalog.Path, log)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var repo ports.PlaylistRepository
	if cfg.Storage.Path != "" {
		db, err := sqlite.NewAdapter(cfg.Storage.Path, log)
		if err != nil {
			return fmt.Errorf("open playlist store: %w", err)
		}
		defer db.Close()
		repo = db
	}

	events := ledger.New()
	profiles := onboarding.NewStore()
	builder := onboarding.NewBuilder(store, events, log)
	engine := recommend.New(store, events, profiles, recommend.Config{
		ContentWeight:       cfg.Recommend.ContentWeight,
		CollabWeight:        cfg.Recommend.CollabWeight,
		CandidateMultiplier: cfg.Recommend.CandidateMultiplier,
		RecencyWindow:       cfg.Recommend.RecencyWindow,
	}, log)

	rng := rand.New(rand.NewSource(cfg.Seed))
	agents, err := sim.Population(cfg.Simulate.PopAgents, cfg.Simulate.ClassicalAgents, cfg.Simulate.GeneralAgents, rng)
	if err != nil {
		return fmt.Errorf("build agents: %w", err)
	}

	mode := domain.PlaylistModeGenre
	if cfg.Simulate.PlaylistMode == "mixed" {
		mode = domain.PlaylistModeMixed
	}

	runner := sim.NewRunner(agents, store, events, profiles, builder, engine, repo, sim.Config{
		Days:            cfg.Simulate.Days,
		Workers:         cfg.Simulate.Workers,
		Seed:            cfg.Seed,
		PlaylistMode:    mode,
		RecommendEvery:  cfg.Simulate.RecommendEvery,
		Recommendations: cfg.Simulate.Recommendations,
	}, log)

	stats, err := runner.Run(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}

	if err := writeReports(cfg.Simulate.ReportDir, agents, profiles, store); err != nil {
		return err
	}
	sim.WriteStatsReport(os.Stdout, stats)
	return nil
}

// writeReports dumps onboarding, profile, and playlist reports to timestamped
// files under dir, one file per report kind.
func writeReports(dir string, agents []*domain.Agent, profiles *onboarding.Store, store *catalog.Store) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")

	onboardingFile, err := os.Create(filepath.Join(dir, "onboarding_"+stamp+".txt"))
	if err != nil {
		return fmt.Errorf("create onboarding report: %w", err)
	}
	defer onboardingFile.Close()

	profilesFile, err := os.Create(filepath.Join(dir, "profiles_"+stamp+".txt"))
	if err != nil {
		return fmt.Errorf("create profiles report: %w", err)
	}
	defer profilesFile.Close()

	playlistsFile, err := os.Create(filepath.Join(dir, "playlists_"+stamp+".txt"))
	if err != nil {
		return fmt.Errorf("create playlists report: %w", err)
	}
	defer playlistsFile.Close()

	for _, agent := range agents {
		profile, ok := profiles.Get(agent.ID)
		if !ok {
			continue
		}
		sim.WriteOnboardingReport(onboardingFile, agent, profile, store)
		sim.WriteProfileReport(profilesFile, agent, profile)
	}
	sim.WritePlaylistsReport(playlistsFile, agents)
	return nil
}
