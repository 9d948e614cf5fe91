package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simrec/simrec/internal/core/domain"
)

const trackJSON = `{
	"id": "track123",
	"name": "Test Song",
	"artists": [{"name": "Artist A"}, {"name": "Artist B"}],
	"album": {"release_date": "2019-06-14"},
	"popularity": 81,
	"duration_ms": 201000
}`

const featuresJSON = `{
	"danceability": 0.8,
	"energy": 0.6,
	"acousticness": 0.1,
	"valence": 0.7,
	"tempo": 125
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newClientWithHTTP(server.Client(), server.URL, zerolog.Nop())
}

func TestGetSong(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tracks/track123":
			fmt.Fprint(w, trackJSON)
		case "/audio-features/track123":
			fmt.Fprint(w, featuresJSON)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	song, err := c.GetSong(context.Background(), "track123")
	require.NoError(t, err)

	assert.Equal(t, "track123", song.ID)
	assert.Equal(t, "Test Song", song.Name)
	assert.Equal(t, "Artist A, Artist B", song.Artist)
	assert.Equal(t, 2019, song.ReleaseYear)
	assert.Equal(t, 81, song.Popularity)
	assert.Equal(t, 201000, song.DurationMs)
	assert.Equal(t, 125.0, song.TempoBPM)
	assert.InDelta(t, 0.8, song.Features.Danceability, 1e-9)
	assert.InDelta(t, (125.0-50)/150, song.Features.Tempo, 1e-9, "tempo normalized against the 50-200 BPM range")
}

func TestGetSongNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetSong(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSongRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch r.URL.Path {
		case "/tracks/track123":
			fmt.Fprint(w, trackJSON)
		default:
			fmt.Fprint(w, featuresJSON)
		}
	}))

	song, err := c.GetSong(context.Background(), "track123")
	require.NoError(t, err)
	assert.Equal(t, "Test Song", song.Name)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3), "failed call is retried")
}

func TestGetSongExhaustsRetries(t *testing.T) {
	t.Parallel()

	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.GetSong(context.Background(), "track123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetSongClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))

	_, err := c.GetSong(context.Background(), "track123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNormalizeTempoClamps(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, normalizeTempo(30))
	assert.Equal(t, 1.0, normalizeTempo(250))
	assert.InDelta(t, 0.5, normalizeTempo(125), 1e-9)
}
