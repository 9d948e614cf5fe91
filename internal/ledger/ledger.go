// Package ledger implements the in-memory append-only interaction store.
package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/core/ports"
)

// partition holds one agent's slice of the ledger. Each partition has its
// own lock so concurrent agents never contend with each other.
type partition struct {
	mu     sync.RWMutex
	events []domain.Interaction
}

// Ledger is an append-only store of interactions keyed by agent id.
// Safe for concurrent use with at most one writer per agent.
type Ledger struct {
	mu    sync.RWMutex
	parts map[string]*partition
}

var _ ports.InteractionLedger = (*Ledger)(nil)

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{parts: make(map[string]*partition)}
}

func (l *Ledger) partition(agentID string) *partition {
	l.mu.RLock()
	p, ok := l.parts[agentID]
	l.mu.RUnlock()
	if ok {
		return p
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok = l.parts[agentID]; !ok {
		p = &partition{}
		l.parts[agentID] = p
	}
	return p
}

// Append records one interaction under the event's agent id.
func (l *Ledger) Append(event domain.Interaction) {
	p := l.partition(event.AgentID)
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
}

// ForAgent returns a copy of the agent's interactions in append order.
func (l *Ledger) ForAgent(agentID string) []domain.Interaction {
	l.mu.RLock()
	p, ok := l.parts[agentID]
	l.mu.RUnlock()
	if !ok {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.Interaction, len(p.events))
	copy(out, p.events)
	return out
}

// Ratings returns the agent's rated songs, latest rating winning.
func (l *Ledger) Ratings(agentID string) map[string]int {
	ratings := make(map[string]int)
	for _, ev := range l.ForAgent(agentID) {
		if ev.Rated() {
			ratings[ev.SongID] = ev.Rating
		}
	}
	return ratings
}

// RatedAgents returns a sorted list of agents with at least one rated event.
func (l *Ledger) RatedAgents() []string {
	l.mu.RLock()
	ids := make([]string, 0, len(l.parts))
	for id := range l.parts {
		ids = append(ids, id)
	}
	l.mu.RUnlock()

	rated := ids[:0]
	for _, id := range ids {
		if len(l.Ratings(id)) > 0 {
			rated = append(rated, id)
		}
	}
	sort.Strings(rated)
	return rated
}

// InteractedSince reports whether the agent has any event for the song
// strictly after the cutoff.
func (l *Ledger) InteractedSince(agentID, songID string, cutoff time.Time) bool {
	for _, ev := range l.ForAgent(agentID) {
		if ev.SongID == songID && ev.Timestamp.After(cutoff) {
			return true
		}
	}
	return false
}
