package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlaylistMode selects how a playlist's genre focus is chosen.
type PlaylistMode int

const (
	// PlaylistModeGenre focuses the playlist on one of the agent's
	// preferred genres, chosen by preference weight.
	PlaylistModeGenre PlaylistMode = iota
	// PlaylistModeMixed allows a synthetic "mixed" focus alongside the
	// agent's genres, with a fixed auxiliary weight.
	PlaylistModeMixed
)

// mixedFocusWeight is the auxiliary weight given to the "mixed" outcome in
// PlaylistModeMixed.
const mixedFocusWeight = 0.3

const (
	playlistMinSize = 10
	playlistMaxSize = 30
)

// Playlist is an ordered selection of song ids created by one agent.
// Immutable once created apart from the UpdatedAt timestamp.
type Playlist struct {
	ID          string
	Name        string
	Description string
	GenreFocus  string // empty for no focus, "mixed" for multi-genre
	SongIDs     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPlaylistID returns a fresh playlist identifier.
func NewPlaylistID() string {
	return "pl_" + uuid.NewString()[:8]
}

// CreatePlaylist assembles a playlist from the candidate songs, gated by the
// agent's playlist-creation frequency. It returns nil when the frequency draw
// fails, when the agent has no genre preferences to focus on, or when no
// candidate passes the affinity check. The playlist is registered under the
// agent before being returned.
func (a *Agent) CreatePlaylist(candidates []Song, mode PlaylistMode, rng *rand.Rand, now time.Time) *Playlist {
	if rng.Float64() > a.Behavior.PlaylistCreationFrequency {
		return nil
	}
	if len(a.GenrePreferences) == 0 {
		return nil
	}

	focus := a.choosePlaylistFocus(mode, rng)
	if focus == "" {
		return nil
	}

	var suitable []Song
	for _, s := range candidates {
		if a.Affinity(s) {
			suitable = append(suitable, s)
		}
	}
	if len(suitable) == 0 {
		return nil
	}

	size := playlistMinSize + rng.Intn(playlistMaxSize-playlistMinSize+1)
	if size > len(suitable) {
		size = len(suitable)
	}

	// Sample without replacement.
	songIDs := make([]string, 0, size)
	for _, i := range rng.Perm(len(suitable))[:size] {
		songIDs = append(songIDs, suitable[i].ID)
	}

	name, description := a.playlistMetadata(focus, mode, rng)
	pl := &Playlist{
		ID:          NewPlaylistID(),
		Name:        name,
		Description: description,
		GenreFocus:  focus,
		SongIDs:     songIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a.Playlists = append(a.Playlists, pl)
	return pl
}

func (a *Agent) choosePlaylistFocus(mode PlaylistMode, rng *rand.Rand) string {
	genres := make([]string, 0, len(a.GenrePreferences)+1)
	weights := make([]float64, 0, len(a.GenrePreferences)+1)
	for _, gp := range a.GenrePreferences {
		genres = append(genres, gp.Genre)
		weights = append(weights, gp.Weight)
	}
	if mode == PlaylistModeMixed {
		genres = append(genres, "mixed")
		weights = append(weights, mixedFocusWeight)
	}

	idx := weightedChoice(weights, rng)
	if idx < 0 {
		return ""
	}
	return genres[idx]
}

var playlistMoods = []string{"Chill", "Energetic", "Focus", "Relaxing", "Upbeat"}

func (a *Agent) playlistMetadata(focus string, mode PlaylistMode, rng *rand.Rand) (string, string) {
	if mode == PlaylistModeGenre || focus != "mixed" {
		volume := 1
		for _, pl := range a.Playlists {
			if pl.GenreFocus == focus {
				volume++
			}
		}
		name := fmt.Sprintf("My %s Mix Vol.%d", titleCase(focus), volume)
		return name, fmt.Sprintf("A curated collection of %s tracks", focus)
	}

	mood := playlistMoods[rng.Intn(len(playlistMoods))]
	return fmt.Sprintf("%s Everything Mix", mood), "A personalized mix based on my favorite genres"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
