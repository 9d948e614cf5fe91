package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/ledger"
	"github.com/simrec/simrec/internal/onboarding"
)

func TestRatingSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b map[string]int
		want float64
	}{
		{
			name: "identical ratings",
			a:    map[string]int{"s1": 5, "s2": 3},
			b:    map[string]int{"s1": 5, "s2": 3},
			want: 1,
		},
		{
			name: "disjoint songs",
			a:    map[string]int{"s1": 5},
			b:    map[string]int{"s2": 5},
			want: 0,
		},
		{
			name: "empty maps",
			a:    map[string]int{},
			b:    map[string]int{},
			want: 0,
		},
		{
			name: "partial overlap",
			a:    map[string]int{"s1": 4, "s2": 2, "only_a": 5},
			b:    map[string]int{"s1": 4, "s2": 5, "only_b": 1},
			// cosine over common songs s1, s2
			want: (16.0 + 10.0) / (math.Sqrt(16+4) * math.Sqrt(16+25)),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, ratingSimilarity(tc.a, tc.b), 1e-9)
			assert.InDelta(t, tc.want, ratingSimilarity(tc.b, tc.a), 1e-9, "similarity must be symmetric")
		})
	}
}

func collabEngine(t *testing.T, events *ledger.Ledger, profiles *onboarding.Store, songs ...domain.Song) *Engine {
	t.Helper()
	cat := newMatrixCatalog(songs)
	return New(cat, events, profiles, DefaultConfig(), zerolog.Nop())
}

func rate(events *ledger.Ledger, agentID, songID string, rating int) {
	events.Append(domain.Interaction{
		AgentID:   agentID,
		SongID:    songID,
		Rating:    rating,
		Timestamp: time.Now(),
		Type:      domain.InteractionPlay,
	})
}

func TestCollaborativeCandidatesColdStart(t *testing.T) {
	t.Parallel()

	events := ledger.New()
	rate(events, "alone", "s1", 5)

	e := collabEngine(t, events, onboarding.NewStore(), featSong("s1", "pop", 0.5))
	assert.Nil(t, e.collaborativeCandidates("alone", 5),
		"fewer than two rated agents yields no collaborative signal")
}

func TestCollaborativeCandidates(t *testing.T) {
	t.Parallel()

	events := ledger.New()
	// target and neighbor agree on s1/s2; neighbor also rated s3 and s4.
	rate(events, "target", "s1", 5)
	rate(events, "target", "s2", 4)
	rate(events, "neighbor", "s1", 5)
	rate(events, "neighbor", "s2", 4)
	rate(events, "neighbor", "s3", 5)
	rate(events, "neighbor", "s4", 2)
	// stranger shares nothing with target and must not contribute.
	rate(events, "stranger", "s9", 5)

	e := collabEngine(t, events, onboarding.NewStore(),
		featSong("s1", "pop", 0.1),
		featSong("s2", "pop", 0.2),
		featSong("s3", "pop", 0.3),
		featSong("s4", "pop", 0.4),
		featSong("s9", "rock", 0.9),
	)

	got := e.collaborativeCandidates("target", 5)
	require.Len(t, got, 2)
	assert.Equal(t, "s3", got[0].ID, "higher-rated unseen song ranks first")
	assert.Equal(t, "s4", got[1].ID)
}

func TestCollaborativeCandidatesSkipsSeenSongs(t *testing.T) {
	t.Parallel()

	events := ledger.New()
	rate(events, "target", "s1", 5)
	rate(events, "neighbor", "s1", 5)
	rate(events, "neighbor", "s2", 4)

	e := collabEngine(t, events, onboarding.NewStore(),
		featSong("s1", "pop", 0.1),
		featSong("s2", "pop", 0.2),
	)

	got := e.collaborativeCandidates("target", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID, "songs the target already rated are excluded")
}

func TestCollaborativeCandidatesUsesOnboardingRatings(t *testing.T) {
	t.Parallel()

	// All ratings live in onboarding profiles, none in the ledger.
	profiles := onboarding.NewStore()
	profiles.Put(profileWithRatings("target", map[string]int{"s1": 5}))
	profiles.Put(profileWithRatings("neighbor", map[string]int{"s1": 5, "s2": 4}))

	e := collabEngine(t, ledger.New(), profiles,
		featSong("s1", "pop", 0.1),
		featSong("s2", "pop", 0.2),
	)

	got := e.collaborativeCandidates("target", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)
}
