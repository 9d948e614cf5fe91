// Package catalog provides the CSV-dataset-backed implementation of the
// catalog port, with a pre-materialized normalized feature matrix.
package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/core/ports"
)

// Store is an in-memory song catalog. All methods are read-only after Load
// and safe for concurrent use.
type Store struct {
	songs   []domain.Song
	byID    map[string]int
	byGenre map[string][]int // row indices, most popular first
	matrix  *domain.FeatureMatrix
	minYear int
	maxYear int
	log     zerolog.Logger
}

var _ ports.Catalog = (*Store)(nil)

// newStore indexes the cleaned songs and materializes the feature matrix.
func newStore(songs []domain.Song, log zerolog.Logger) *Store {
	s := &Store{
		songs:   songs,
		byID:    make(map[string]int, len(songs)),
		byGenre: make(map[string][]int),
		log:     log.With().Str("component", "catalog").Logger(),
	}

	ids := make([]string, len(songs))
	genres := make([]string, len(songs))
	rows := make([][]float64, len(songs))
	for i, song := range songs {
		s.byID[song.ID] = i
		s.byGenre[song.Genre] = append(s.byGenre[song.Genre], i)
		ids[i] = song.ID
		genres[i] = song.Genre
		rows[i] = song.Features.Vector()

		if i == 0 || song.ReleaseYear < s.minYear {
			s.minYear = song.ReleaseYear
		}
		if song.ReleaseYear > s.maxYear {
			s.maxYear = song.ReleaseYear
		}
	}
	s.matrix = domain.NewFeatureMatrix(ids, genres, rows)

	for genre := range s.byGenre {
		indices := s.byGenre[genre]
		sort.SliceStable(indices, func(a, b int) bool {
			return s.songs[indices[a]].Popularity > s.songs[indices[b]].Popularity
		})
	}
	return s
}

// GetSong returns the song with the given id or domain.ErrNotFound.
func (s *Store) GetSong(id string) (domain.Song, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Song{}, fmt.Errorf("catalog: song %q: %w", id, domain.ErrNotFound)
	}
	return s.songs[i], nil
}

// RandomSongs samples n songs uniformly without replacement.
func (s *Store) RandomSongs(n int, rng *rand.Rand) []domain.Song {
	if n <= 0 || len(s.songs) == 0 {
		return nil
	}
	if n > len(s.songs) {
		n = len(s.songs)
	}
	out := make([]domain.Song, 0, n)
	for _, i := range rng.Perm(len(s.songs))[:n] {
		out = append(out, s.songs[i])
	}
	return out
}

// TopSongsByGenre returns up to n songs of the genre, most popular first.
func (s *Store) TopSongsByGenre(genre string, n int) []domain.Song {
	indices := s.byGenre[genre]
	if n > len(indices) {
		n = len(indices)
	}
	out := make([]domain.Song, 0, n)
	for _, i := range indices[:n] {
		out = append(out, s.songs[i])
	}
	return out
}

// PopularInRange returns up to n songs released in [yearLo, yearHi], most
// popular first.
func (s *Store) PopularInRange(yearLo, yearHi, n int) []domain.Song {
	var matched []domain.Song
	for _, song := range s.songs {
		if song.ReleaseYear >= yearLo && song.ReleaseYear <= yearHi {
			matched = append(matched, song)
		}
	}
	sort.SliceStable(matched, func(a, b int) bool { return matched[a].Popularity > matched[b].Popularity })
	if n > len(matched) {
		n = len(matched)
	}
	return matched[:n]
}

// Songs returns every catalog song.
func (s *Store) Songs() []domain.Song { return s.songs }

// FeatureMatrix returns the normalized feature matrix.
func (s *Store) FeatureMatrix() *domain.FeatureMatrix { return s.matrix }

// YearRange returns the minimum and maximum release year in the catalog.
func (s *Store) YearRange() (int, int) { return s.minYear, s.maxYear }

// Genres returns the distinct genres in the catalog, sorted.
func (s *Store) Genres() []string {
	genres := make([]string, 0, len(s.byGenre))
	for genre := range s.byGenre {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres
}

// GenreDistribution returns the number of songs per genre.
func (s *Store) GenreDistribution() map[string]int {
	dist := make(map[string]int, len(s.byGenre))
	for genre, indices := range s.byGenre {
		dist[genre] = len(indices)
	}
	return dist
}

// SimilarByFeatures returns the n songs closest to the given song by cosine
// similarity over the feature matrix, excluding the song itself.
func (s *Store) SimilarByFeatures(id string, n int) ([]domain.Song, error) {
	base, ok := s.matrix.RowByID(id)
	if !ok {
		return nil, fmt.Errorf("catalog: song %q: %w", id, domain.ErrNotFound)
	}

	type scored struct {
		idx int
		sim float64
	}
	results := make([]scored, 0, s.matrix.Len())
	for i := 0; i < s.matrix.Len(); i++ {
		if s.matrix.ID(i) == id {
			continue
		}
		results = append(results, scored{idx: i, sim: cosine(base, s.matrix.Row(i))})
	}
	sort.SliceStable(results, func(a, b int) bool { return results[a].sim > results[b].sim })

	if n > len(results) {
		n = len(results)
	}
	out := make([]domain.Song, 0, n)
	for _, r := range results[:n] {
		out = append(out, s.songs[r.idx])
	}
	return out, nil
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
