// Package onboarding turns an agent's initial rating session into a
// normalized taste profile.
package onboarding

import (
	"sort"
	"sync"
	"time"

	"github.com/simrec/simrec/internal/core/domain"
)

// LikeThreshold is the minimum rating at which a song counts as liked when
// aggregating feature preferences.
const LikeThreshold = 4

// neutralFeatureValue stands in for features with no liked songs.
const neutralFeatureValue = 0.5

// Profile is an agent's normalized taste summary. Created once per
// onboarding session and never mutated; a new session produces a new profile.
type Profile struct {
	AgentID string

	// GenreScores maps genre → mean rating of the onboarding songs of that
	// genre that received a rating. Genres with no ratings are absent.
	GenreScores map[string]float64

	// FeatureMeans maps feature name → mean value across liked songs
	// (rating >= LikeThreshold), defaulting to 0.5 where no song qualified.
	FeatureMeans map[string]float64

	// Ratings is the onboarding session record, oldest first.
	Ratings []domain.Interaction

	CreatedAt time.Time
}

// Store is the repository of onboarding profiles, constructed once per run
// and passed to each component that needs taste data.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewStore returns an empty profile store.
func NewStore() *Store {
	return &Store{profiles: make(map[string]*Profile)}
}

// Put registers a profile, replacing any previous profile for the agent.
func (s *Store) Put(p *Profile) {
	s.mu.Lock()
	s.profiles[p.AgentID] = p
	s.mu.Unlock()
}

// Get returns the agent's profile if one exists.
func (s *Store) Get(agentID string) (*Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[agentID]
	return p, ok
}

// Ratings returns the agent's onboarding ratings as song id → rating.
func (s *Store) Ratings(agentID string) map[string]int {
	p, ok := s.Get(agentID)
	if !ok {
		return nil
	}
	ratings := make(map[string]int, len(p.Ratings))
	for _, ev := range p.Ratings {
		if ev.Rated() {
			ratings[ev.SongID] = ev.Rating
		}
	}
	return ratings
}

// AgentIDs returns the sorted ids of all onboarded agents.
func (s *Store) AgentIDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
