package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/core/ports"
	"github.com/simrec/simrec/internal/onboarding"
	"github.com/simrec/simrec/internal/recommend"
)

const (
	activeHourStart = 9
	activeHourEnd   = 23
	songMinutes     = 3
)

// Config controls a simulation run.
type Config struct {
	Days            int
	Workers         int
	Seed            int64
	PlaylistMode    domain.PlaylistMode
	RecommendEvery  int // feed engine output back every N days, 0 disables
	Recommendations int // songs per recommendation round
}

// Runner drives a population of agents through day-by-day listening
// sessions, recording everything in the ledger. Each agent owns a dedicated
// RNG derived from the run seed so results are reproducible regardless of
// worker scheduling.
type Runner struct {
	agents   []*domain.Agent
	rngs     []*rand.Rand
	catalog  ports.Catalog
	ledger   ports.InteractionLedger
	profiles *onboarding.Store
	builder  *onboarding.Builder
	engine   *recommend.Engine
	repo     ports.PlaylistRepository
	cfg      Config
	log      zerolog.Logger
}

// NewRunner wires a runner. repo may be nil, in which case playlists are
// kept on the agents only.
func NewRunner(
	agents []*domain.Agent,
	catalog ports.Catalog,
	ledger ports.InteractionLedger,
	profiles *onboarding.Store,
	builder *onboarding.Builder,
	engine *recommend.Engine,
	repo ports.PlaylistRepository,
	cfg Config,
	log zerolog.Logger,
) *Runner {
	rngs := make([]*rand.Rand, len(agents))
	for i := range agents {
		rngs[i] = rand.New(rand.NewSource(cfg.Seed + int64(i)))
	}
	return &Runner{
		agents:   agents,
		rngs:     rngs,
		catalog:  catalog,
		ledger:   ledger,
		profiles: profiles,
		builder:  builder,
		engine:   engine,
		repo:     repo,
		cfg:      cfg,
		log:      log.With().Str("component", "sim").Logger(),
	}
}

// Population builds the standard agent mix used by the CLI.
func Population(nPop, nClassical, nGeneral int, rng *rand.Rand) ([]*domain.Agent, error) {
	agents := make([]*domain.Agent, 0, nPop+nClassical+nGeneral)
	for i := 0; i < nPop; i++ {
		a, err := NewPopAgent(fmt.Sprintf("pop_agent_%d", i))
		if err != nil {
			return nil, fmt.Errorf("pop agent %d: %w", i, err)
		}
		agents = append(agents, a)
	}
	for i := 0; i < nClassical; i++ {
		a, err := NewClassicalAgent(fmt.Sprintf("classical_agent_%d", i))
		if err != nil {
			return nil, fmt.Errorf("classical agent %d: %w", i, err)
		}
		agents = append(agents, a)
	}
	for i := 0; i < nGeneral; i++ {
		a, err := NewRandomFocusedAgent(fmt.Sprintf("general_agent_%d", i), rng)
		if err != nil {
			return nil, fmt.Errorf("general agent %d: %w", i, err)
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// Run onboards every agent, then simulates cfg.Days of listening. The start
// of the window is placed cfg.Days in the past so timestamps land in recent
// history relative to now.
func (r *Runner) Run(ctx context.Context, now time.Time) (Stats, error) {
	start := now.AddDate(0, 0, -r.cfg.Days)

	for i, agent := range r.agents {
		profile := r.builder.Onboard(agent, r.rngs[i], start)
		r.profiles.Put(profile)
	}
	r.log.Info().Int("agents", len(r.agents)).Int("days", r.cfg.Days).Msg("simulation started")

	p := newPool(r.cfg.Workers, len(r.agents))
	defer p.stop()

	for day := 0; day < r.cfg.Days; day++ {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		date := start.AddDate(0, 0, day)

		var wg sync.WaitGroup
		for i := range r.agents {
			i := i
			wg.Add(1)
			p.submit(func() {
				defer wg.Done()
				r.runAgentDay(ctx, r.agents[i], r.rngs[i], date)
			})
		}
		wg.Wait()

		if r.cfg.RecommendEvery > 0 && (day+1)%r.cfg.RecommendEvery == 0 {
			r.runRecommendationRound(date)
		}
	}

	stats := r.collectStats()
	r.log.Info().
		Int("interactions", stats.TotalInteractions).
		Int("playlists", stats.PlaylistsCreated).
		Msg("simulation finished")
	return stats, nil
}

// runAgentDay plays one listening session: a random active hour, a fixed
// number of candidate songs, and a chance to create a playlist afterwards.
func (r *Runner) runAgentDay(ctx context.Context, agent *domain.Agent, rng *rand.Rand, date time.Time) {
	hour := activeHourStart + rng.Intn(activeHourEnd-activeHourStart)
	ts := date.Add(time.Duration(hour) * time.Hour)

	songsPerSession := agent.Behavior.AvgSessionLength / songMinutes
	for i := 0; i < songsPerSession; i++ {
		songs := r.catalog.RandomSongs(1, rng)
		if len(songs) == 0 {
			return
		}
		song := songs[0]
		if !agent.Affinity(song) {
			continue
		}
		rating, _ := agent.Rate(song, rng)
		r.ledger.Append(domain.Interaction{
			AgentID:   agent.ID,
			SongID:    song.ID,
			Rating:    rating,
			Skipped:   rng.Float64() < agent.Behavior.SkipProbability,
			Timestamp: ts,
			Type:      domain.InteractionPlay,
		})
	}

	if pl := agent.CreatePlaylist(r.catalog.Songs(), r.cfg.PlaylistMode, rng, ts); pl != nil {
		r.ledger.Append(domain.Interaction{
			AgentID:   agent.ID,
			SongID:    pl.ID,
			Timestamp: ts,
			Type:      domain.InteractionPlaylist,
		})
		if r.repo != nil {
			if err := r.repo.Save(ctx, agent.ID, *pl); err != nil {
				r.log.Warn().Err(err).Str("agent", agent.ID).Str("playlist", pl.ID).Msg("playlist save failed")
			}
		}
	}
}

// runRecommendationRound feeds engine output back into the ledger, so the
// collaborative side has progressively richer signal to work with. Rounds run
// sequentially: the engine reads every agent's history.
func (r *Runner) runRecommendationRound(date time.Time) {
	ts := date.Add(time.Duration(activeHourEnd) * time.Hour)
	for i, agent := range r.agents {
		rng := r.rngs[i]
		recs := r.engine.Recommend(agent, r.cfg.Recommendations, ts, rng)
		for _, rec := range recs {
			if !agent.Affinity(rec.Song) {
				continue
			}
			rating, _ := agent.Rate(rec.Song, rng)
			r.ledger.Append(domain.Interaction{
				AgentID:   agent.ID,
				SongID:    rec.Song.ID,
				Rating:    rating,
				Skipped:   rng.Float64() < agent.Behavior.SkipProbability,
				Timestamp: ts,
				Type:      domain.InteractionPlay,
			})
		}
	}
}
