package domain

import "time"

// InteractionType classifies agent-song events in the ledger.
type InteractionType string

const (
	InteractionPlay       InteractionType = "song-play"
	InteractionOnboarding InteractionType = "onboarding"
	InteractionPlaylist   InteractionType = "playlist-creation"
)

// Interaction is one append-only agent-song event. A Rating of 0 means the
// agent gave no rating; present ratings are always in [1,5].
type Interaction struct {
	AgentID   string
	SongID    string
	Rating    int
	Skipped   bool
	Timestamp time.Time
	Type      InteractionType
}

// Rated reports whether the interaction carries a rating.
func (i Interaction) Rated() bool {
	return i.Rating >= 1 && i.Rating <= 5
}
