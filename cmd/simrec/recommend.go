package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simrec/simrec/internal/adapters/catalog"
	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/ledger"
	"github.com/simrec/simrec/internal/onboarding"
	"github.com/simrec/simrec/internal/recommend"
	"github.com/simrec/simrec/internal/sim"
)

// newRecommendCmd onboards one agent of the chosen archetype and prints its
// recommendations. Handy for eyeballing the engine without a full run.
func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Onboard a single agent and print its recommendations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			archetype, _ := cmd.Flags().GetString("archetype")
			n, _ := cmd.Flags().GetInt("n")

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

			events := ledger.New()
			profiles := onboarding.NewStore()
			builder := onboarding.NewBuilder(store, events, log)
			profiles.Put(builder.Onboard(agent, rng, time.Now()))

			engine := recommend.New(store, events, profiles, recommend.Config{
				ContentWeight:       cfg.Recommend.ContentWeight,
				CollabWeight:        cfg.Recommend.CollabWeight,
				CandidateMultiplier: cfg.Recommend.CandidateMultiplier,
				RecencyWindow:       cfg.Recommend.RecencyWindow,
			}, log)

			recs := engine.Recommend(agent, n, time.Now(), rng)
			sim.WriteRecommendationsReport(os.Stdout, agent, recs)
			return nil
		},
	}

	cmd.Flags().String("archetype", "pop", "agent archetype: pop, classical, or general")
	cmd.Flags().Int("n", 5, "number of recommendations")
	return cmd
}

func newArchetypeAgent(archetype string, rng *rand.Rand) (*domain.Agent, error) {
	switch archetype {
	case "pop":
		return sim.NewPopAgent("pop_agent_0")
	case "classical":
		return sim.NewClassicalAgent("classical_agent_0")
	case "general":
		return sim.NewRandomFocusedAgent("general_agent_0", rng)
	default:
		return nil, fmt.Errorf("unknown archetype %q", archetype)
	}
}
