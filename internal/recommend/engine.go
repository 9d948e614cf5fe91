// Package recommend implements the hybrid recommendation engine: a
// content-based scorer over the catalog feature matrix, a neighbor-based
// collaborative filter over sparse rating overlaps, and rank fusion of the
// two candidate lists with recency exclusion.
package recommend

import (
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/core/ports"
	"github.com/simrec/simrec/internal/onboarding"
)

// Config holds the engine's fusion and filtering parameters.
type Config struct {
	// ContentWeight and CollabWeight are the fixed rank-fusion weights.
	ContentWeight float64
	CollabWeight  float64

	// CandidateMultiplier oversizes the content candidate pool before the
	// recency filter trims it.
	CandidateMultiplier int

	// RecencyWindow excludes songs the agent touched within this trailing
	// window of simulated time.
	RecencyWindow time.Duration
}

// DefaultConfig returns the standard 70/30 content-leaning fusion setup.
func DefaultConfig() Config {
	return Config{
		ContentWeight:       0.7,
		CollabWeight:        0.3,
		CandidateMultiplier: 2,
		RecencyWindow:       24 * time.Hour,
	}
}

// Engine fuses content-based and collaborative candidates into one ranking.
// It performs only in-memory reads and is safe for concurrent requests as
// long as the catalog stays read-only during the computation window.
type Engine struct {
	catalog  ports.Catalog
	ledger   ports.InteractionLedger
	profiles *onboarding.Store
	cfg      Config
	log      zerolog.Logger
}

// New constructs an Engine.
func New(catalog ports.Catalog, ledger ports.InteractionLedger, profiles *onboarding.Store, cfg Config, log zerolog.Logger) *Engine {
	if cfg.CandidateMultiplier < 1 {
		cfg.CandidateMultiplier = 2
	}
	if cfg.RecencyWindow <= 0 {
		cfg.RecencyWindow = 24 * time.Hour
	}
	return &Engine{
		catalog:  catalog,
		ledger:   ledger,
		profiles: profiles,
		cfg:      cfg,
		log:      log.With().Str("component", "recommend").Logger(),
	}
}

// Recommend produces the agent's top n recommendations at the given
// simulated time. Cold-start agents degrade gracefully: without a profile
// the content list falls back to random sampling, and without enough
// cross-agent ratings the collaborative list is simply empty.
func (e *Engine) Recommend(agent *domain.Agent, n int, now time.Time, rng *rand.Rand) []domain.Recommendation {
	if n <= 0 {
		return nil
	}

	content := e.contentCandidates(agent.ID, n, now, rng)
	collab := e.collaborativeCandidates(agent.ID, n)

	fused := fuse(content, collab, e.cfg.ContentWeight, e.cfg.CollabWeight)
	if len(fused) > n {
		fused = fused[:n]
	}

	e.log.Debug().
		Str("agent", agent.ID).
		Int("content", len(content)).
		Int("collab", len(collab)).
		Int("fused", len(fused)).
		Msg("recommendations computed")
	return fused
}

// ratingsFor merges the agent's onboarding ratings with its ledger ratings.
// Ledger events win on conflict since they are more recent.
func (e *Engine) ratingsFor(agentID string) map[string]int {
	merged := make(map[string]int)
	for songID, r := range e.profiles.Ratings(agentID) {
		merged[songID] = r
	}
	for songID, r := range e.ledger.Ratings(agentID) {
		merged[songID] = r
	}
	return merged
}

// ratedAgents returns every agent id with at least one rating on record.
func (e *Engine) ratedAgents() []string {
	seen := make(map[string]struct{})
	for _, id := range e.profiles.AgentIDs() {
		if len(e.profiles.Ratings(id)) > 0 {
			seen[id] = struct{}{}
		}
	}
	for _, id := range e.ledger.RatedAgents() {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	// Stable neighbor order keeps score accumulation reproducible.
	sort.Strings(ids)
	return ids
}
