package sim

import (
	"math/rand"

	"github.com/simrec/simrec/internal/core/domain"
)

// Archetype factories. Each returns a fully validated agent with preferences
// and behavior tuned to a distinct listening persona, so mixed populations
// produce interaction histories with recognizable structure.

// NewGenreFocusedAgent builds an agent anchored on one primary genre with a
// few weaker secondary genres and mainstream feature tastes.
func NewGenreFocusedAgent(id, primaryGenre string, secondaryGenres []string) (*domain.Agent, error) {
	genrePrefs := []domain.GenrePreference{{Genre: primaryGenre, Weight: 0.8}}
	for _, g := range secondaryGenres {
		genrePrefs = append(genrePrefs, domain.GenrePreference{Genre: g, Weight: 0.4})
	}

	return domain.NewAgent(id, primaryGenre+"_enthusiast", genrePrefs,
		[]domain.FeaturePreference{
			{Feature: "danceability", Low: 0.6, High: 1.0, Weight: 0.7},
			{Feature: "energy", Low: 0.5, High: 0.9, Weight: 0.6},
			{Feature: "valence", Low: 0.4, High: 0.8, Weight: 0.5},
		},
		domain.Behavior{
			AvgSessionLength:          45,
			SkipProbability:           0.3,
			RatingProbability:         0.2,
			PlaylistCreationFrequency: 0.1,
		})
}

// NewPopAgent is the stock mainstream persona.
func NewPopAgent(id string) (*domain.Agent, error) {
	return NewGenreFocusedAgent(id, "pop", []string{"dance", "electronic"})
}

// NewClassicalAgent prefers acoustic, low-energy material and rates often but
// rarely creates playlists.
func NewClassicalAgent(id string) (*domain.Agent, error) {
	return domain.NewAgent(id, "classical_connoisseur",
		[]domain.GenrePreference{
			{Genre: "classical", Weight: 0.9},
			{Genre: "orchestra", Weight: 0.7},
		},
		[]domain.FeaturePreference{
			{Feature: "acousticness", Low: 0.8, High: 1.0, Weight: 0.9},
			{Feature: "energy", Low: 0.0, High: 0.3, Weight: 0.8},
		},
		domain.Behavior{
			AvgSessionLength:          60,
			SkipProbability:           0.1,
			RatingProbability:         0.4,
			PlaylistCreationFrequency: 0.05,
		})
}

// NewGeneralAgent is a broad explorer with several equally weighted genres
// and mid-range feature tastes.
func NewGeneralAgent(id string) (*domain.Agent, error) {
	genres := []string{"indie", "experimental", "world", "jazz", "electronic"}
	genrePrefs := make([]domain.GenrePreference, 0, len(genres))
	for _, g := range genres {
		genrePrefs = append(genrePrefs, domain.GenrePreference{Genre: g, Weight: 0.4})
	}

	return domain.NewAgent(id, "general_explorer", genrePrefs,
		[]domain.FeaturePreference{
			{Feature: "acousticness", Low: 0.2, High: 0.8, Weight: 0.5},
			{Feature: "energy", Low: 0.3, High: 0.7, Weight: 0.5},
			{Feature: "valence", Low: 0.3, High: 0.7, Weight: 0.5},
		},
		domain.Behavior{
			AvgSessionLength:          90,
			SkipProbability:           0.4,
			RatingProbability:         0.3,
			PlaylistCreationFrequency: 0.2,
		})
}

var rotationGenres = []string{"rock", "indie", "jazz", "electronic", "hip-hop"}

// NewRandomFocusedAgent picks a primary genre and two secondaries from the
// rotation pool, matching how mixed populations are seeded.
func NewRandomFocusedAgent(id string, rng *rand.Rand) (*domain.Agent, error) {
	primary := rotationGenres[rng.Intn(len(rotationGenres))]
	rest := make([]string, 0, len(rotationGenres)-1)
	for _, g := range rotationGenres {
		if g != primary {
			rest = append(rest, g)
		}
	}
	idx := rng.Perm(len(rest))
	secondaries := []string{rest[idx[0]], rest[idx[1]]}
	return NewGenreFocusedAgent(id, primary, secondaries)
}
