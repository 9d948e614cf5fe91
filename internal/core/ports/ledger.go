package ports

import (
	"time"

	"github.com/simrec/simrec/internal/core/domain"
)

// InteractionLedger is the append-only record of agent-song events. Writes
// for one agent come from a single writer at a time; readers see snapshots
// and may observe slightly stale data for other agents.
type InteractionLedger interface {
	// Append records one interaction. Events are never deleted.
	Append(event domain.Interaction)

	// ForAgent returns a snapshot of the agent's interactions in append
	// order. Unknown agents yield an empty slice.
	ForAgent(agentID string) []domain.Interaction

	// Ratings returns the agent's rated songs as song id → rating, the
	// latest rating winning for repeated songs.
	Ratings(agentID string) map[string]int

	// RatedAgents returns the ids of agents with at least one rated event.
	RatedAgents() []string

	// InteractedSince reports whether the agent touched the song strictly
	// after the cutoff time.
	InteractedSince(agentID, songID string, cutoff time.Time) bool
}
