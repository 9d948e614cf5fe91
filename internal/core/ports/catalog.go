// Package ports defines the collaborator interfaces the core consumes.
package ports

import (
	"math/rand"

	"github.com/simrec/simrec/internal/core/domain"
)

// Catalog is the read-only song store the engine scores against. All methods
// are pure in-memory reads and safe for concurrent use; lookups that match
// nothing return domain.ErrNotFound or an empty slice, never an error the
// caller must abort on.
type Catalog interface {
	// GetSong returns the song with the given id or domain.ErrNotFound.
	GetSong(id string) (domain.Song, error)

	// RandomSongs samples n songs uniformly using the caller's rng so
	// simulations stay reproducible.
	RandomSongs(n int, rng *rand.Rand) []domain.Song

	// TopSongsByGenre returns up to n songs of the genre, most popular first.
	TopSongsByGenre(genre string, n int) []domain.Song

	// PopularInRange returns up to n songs released in [yearLo, yearHi],
	// most popular first.
	PopularInRange(yearLo, yearHi, n int) []domain.Song

	// Songs returns every catalog song. Callers must not mutate the slice.
	Songs() []domain.Song

	// FeatureMatrix returns the normalized feature matrix aligned with
	// song ids.
	FeatureMatrix() *domain.FeatureMatrix

	// YearRange returns the minimum and maximum release year.
	YearRange() (int, int)
}
