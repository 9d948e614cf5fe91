package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simrec/simrec/internal/adapters/catalog"
	"github.com/simrec/simrec/internal/ledger"
	"github.com/simrec/simrec/internal/onboarding"
	"github.com/simrec/simrec/internal/sim"
)

// newOnboardCmd runs a single onboarding session and prints the session
// record plus the derived taste profile.
func newOnboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Onboard one agent and print its taste profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			archetype, _ := cmd.Flags().GetString("archetype")

			log := newLogger(cfg.Logging)
			store, err := catalog.Load(cfg.Catalog.Path, log)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			rng := rand.New(rand.NewSource(cfg.Seed))
			agent, err := newArchetypeAgent(archetype, rng)
			if err != nil {
				return err
			}

			builder := onboarding.NewBuilder(store, ledger.New(), log)
			profile := builder.Onboard(agent, rng, time.Now())

			sim.WriteOnboardingReport(os.Stdout, agent, profile, store)
			sim.WriteProfileReport(os.Stdout, agent, profile)
			return nil
		},
	}

	cmd.Flags().String("archetype", "pop", "agent archetype: pop, classical, or general")
	return cmd
}
