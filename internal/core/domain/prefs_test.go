package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSong(id, genre string, f AudioFeatures) Song {
	return Song{ID: id, Name: id, Artist: "artist", Genre: genre, Features: f}
}

func TestAffinity(t *testing.T) {
	t.Parallel()

	classical := &Agent{
		ID:        "classical_0",
		Archetype: "classical_connoisseur",
		GenrePreferences: []GenrePreference{
			{Genre: "classical", Weight: 0.9},
		},
		FeaturePreferences: []FeaturePreference{
			{Feature: "acousticness", Low: 0.8, High: 1.0, Weight: 0.9},
			{Feature: "energy", Low: 0.0, High: 0.3, Weight: 0.8},
		},
		Behavior: validBehavior(),
	}

	tests := []struct {
		name string
		song Song
		want bool
	}{
		{
			name: "matching genre and features",
			song: testSong("s1", "classical", AudioFeatures{Acousticness: 0.95, Energy: 0.1}),
			want: true, // (0.9+0.9+0.8)/3 ≈ 0.87
		},
		{
			name: "matching genre but features out of range",
			song: testSong("s2", "classical", AudioFeatures{Acousticness: 0.2, Energy: 0.9}),
			want: false, // 0.9/3 = 0.30
		},
		{
			name: "wrong genre with matching features",
			song: testSong("s3", "metal", AudioFeatures{Acousticness: 0.9, Energy: 0.2}),
			want: true, // (0.9+0.8)/2 = 0.85
		},
		{
			name: "wrong genre one feature matching",
			song: testSong("s4", "metal", AudioFeatures{Acousticness: 0.9, Energy: 0.9}),
			want: false, // 0.9/2 = 0.45
		},
		{
			name: "range boundaries are inclusive",
			song: testSong("s5", "classical", AudioFeatures{Acousticness: 0.8, Energy: 0.3}),
			want: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, classical.Affinity(tc.song))
		})
	}
}

func TestAffinityNoPreferences(t *testing.T) {
	t.Parallel()

	bare := &Agent{ID: "bare", Archetype: "none", Behavior: validBehavior()}
	song := testSong("s1", "pop", AudioFeatures{Danceability: 0.9})
	assert.False(t, bare.Affinity(song), "agent with no applicable preferences never matches")
}

func TestRate(t *testing.T) {
	t.Parallel()

	alwaysRates := Behavior{
		AvgSessionLength:          45,
		SkipProbability:           0,
		RatingProbability:         1,
		PlaylistCreationFrequency: 0,
	}

	tests := []struct {
		name  string
		agent *Agent
		song  Song
		want  int
	}{
		{
			name: "loved genre and feature",
			agent: &Agent{
				ID: "a", Archetype: "t", Behavior: alwaysRates,
				GenrePreferences:   []GenrePreference{{Genre: "pop", Weight: 0.8}},
				FeaturePreferences: []FeaturePreference{{Feature: "energy", Low: 0.5, High: 0.9, Weight: 0.7}},
			},
			song: testSong("s1", "pop", AudioFeatures{Energy: 0.7}),
			// 3 + (1.6+1.4)/2 = 4.5 -> 5
			want: 5,
		},
		{
			name: "loved genre disliked feature",
			agent: &Agent{
				ID: "a", Archetype: "t", Behavior: alwaysRates,
				GenrePreferences:   []GenrePreference{{Genre: "pop", Weight: 0.8}},
				FeaturePreferences: []FeaturePreference{{Feature: "energy", Low: 0.5, High: 0.9, Weight: 0.7}},
			},
			song: testSong("s2", "pop", AudioFeatures{Energy: 0.1}),
			// 3 + (1.6-1.4)/2 = 3.1 -> 3
			want: 3,
		},
		{
			name: "strong mismatch clamps to minimum",
			agent: &Agent{
				ID: "a", Archetype: "t", Behavior: alwaysRates,
				FeaturePreferences: []FeaturePreference{{Feature: "energy", Low: 0.8, High: 1.0, Weight: 1.0}},
			},
			song: testSong("s3", "metal", AudioFeatures{Energy: 0.1}),
			// 3 - 2 = 1
			want: 1,
		},
		{
			name:  "no applicable preferences falls back to neutral",
			agent: &Agent{ID: "a", Archetype: "t", Behavior: alwaysRates},
			song:  testSong("s4", "pop", AudioFeatures{}),
			want:  3,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewSource(1))
			rating, ok := tc.agent.Rate(tc.song, rng)
			require.True(t, ok)
			assert.Equal(t, tc.want, rating)
		})
	}
}

func TestRateBounds(t *testing.T) {
	t.Parallel()

	agent := &Agent{
		ID: "a", Archetype: "t",
		Behavior: Behavior{AvgSessionLength: 45, RatingProbability: 1},
		GenrePreferences: []GenrePreference{
			{Genre: "pop", Weight: 1.0},
			{Genre: "rock", Weight: 1.0},
		},
		FeaturePreferences: []FeaturePreference{
			{Feature: "energy", Low: 0.0, High: 1.0, Weight: 1.0},
		},
	}

	rng := rand.New(rand.NewSource(7))
	for _, song := range []Song{
		testSong("hi", "pop", AudioFeatures{Energy: 0.5}),
		testSong("lo", "unknown", AudioFeatures{Energy: 2.0}),
	} {
		rating, ok := agent.Rate(song, rng)
		require.True(t, ok)
		assert.GreaterOrEqual(t, rating, 1)
		assert.LessOrEqual(t, rating, 5)
	}
}

func TestRateDecline(t *testing.T) {
	t.Parallel()

	agent := &Agent{
		ID: "a", Archetype: "t",
		Behavior: Behavior{AvgSessionLength: 45, RatingProbability: 0},
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		rating, ok := agent.Rate(testSong("s", "pop", AudioFeatures{}), rng)
		assert.False(t, ok)
		assert.Zero(t, rating)
	}
}
