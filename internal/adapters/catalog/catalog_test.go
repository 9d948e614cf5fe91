package catalog

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simrec/simrec/internal/core/domain"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	songs := []domain.Song{
		{ID: "pop_hi", Name: "Pop Hi", Genre: "pop", Popularity: 90, ReleaseYear: 2020,
			Features: domain.AudioFeatures{Danceability: 0.9, Energy: 0.8, Tempo: 0.5}},
		{ID: "pop_lo", Name: "Pop Lo", Genre: "pop", Popularity: 40, ReleaseYear: 2010,
			Features: domain.AudioFeatures{Danceability: 0.85, Energy: 0.75, Tempo: 0.5}},
		{ID: "rock_1", Name: "Rock One", Genre: "rock", Popularity: 70, ReleaseYear: 2015,
			Features: domain.AudioFeatures{Acousticness: 0.9, Valence: 0.2, Tempo: 0.1}},
	}
	return newStore(songs, zerolog.Nop())
}

func TestGetSong(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	song, err := s.GetSong("rock_1")
	require.NoError(t, err)
	assert.Equal(t, "Rock One", song.Name)

	_, err = s.GetSong("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTopSongsByGenre(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	top := s.TopSongsByGenre("pop", 5)
	require.Len(t, top, 2)
	assert.Equal(t, "pop_hi", top[0].ID, "most popular first")
	assert.Equal(t, "pop_lo", top[1].ID)

	assert.Empty(t, s.TopSongsByGenre("unknown", 5))
	assert.Len(t, s.TopSongsByGenre("pop", 1), 1)
}

func TestPopularInRange(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	got := s.PopularInRange(2014, 2021, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "pop_hi", got[0].ID)
	assert.Equal(t, "rock_1", got[1].ID)

	assert.Empty(t, s.PopularInRange(1990, 1999, 10))
}

func TestRandomSongs(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	rng := rand.New(rand.NewSource(1))

	got := s.RandomSongs(2, rng)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID, "sampling is without replacement")

	assert.Len(t, s.RandomSongs(10, rng), 3, "request larger than catalog returns everything")
	assert.Nil(t, s.RandomSongs(0, rng))
}

func TestSimilarByFeatures(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	similar, err := s.SimilarByFeatures("pop_hi", 2)
	require.NoError(t, err)
	require.Len(t, similar, 2)
	assert.Equal(t, "pop_lo", similar[0].ID, "nearest neighbor by feature cosine")
	assert.Equal(t, "rock_1", similar[1].ID)

	for _, got := range similar {
		assert.NotEqual(t, "pop_hi", got.ID, "the seed song is excluded")
	}

	_, err = s.SimilarByFeatures("missing", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenres(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	assert.Equal(t, []string{"pop", "rock"}, s.Genres())
	assert.Equal(t, map[string]int{"pop": 2, "rock": 1}, s.GenreDistribution())
}
