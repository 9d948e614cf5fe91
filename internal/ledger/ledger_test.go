package ledger

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simrec/simrec/internal/core/domain"
)

func play(agentID, songID string, rating int, ts time.Time) domain.Interaction {
	return domain.Interaction{
		AgentID:   agentID,
		SongID:    songID,
		Rating:    rating,
		Timestamp: ts,
		Type:      domain.InteractionPlay,
	}
}

func TestAppendAndForAgent(t *testing.T) {
	t.Parallel()

	l := New()
	now := time.Now()

	l.Append(play("a1", "s1", 4, now))
	l.Append(play("a1", "s2", 0, now.Add(time.Minute)))
	l.Append(play("a2", "s1", 2, now))

	events := l.ForAgent("a1")
	require.Len(t, events, 2)
	assert.Equal(t, "s1", events[0].SongID)
	assert.Equal(t, "s2", events[1].SongID)

	assert.Empty(t, l.ForAgent("unknown"))

	// The returned slice is a snapshot, not a view.
	events[0].SongID = "mutated"
	assert.Equal(t, "s1", l.ForAgent("a1")[0].SongID)
}

func TestRatingsLatestWins(t *testing.T) {
	t.Parallel()

	l := New()
	now := time.Now()
	l.Append(play("a1", "s1", 2, now))
	l.Append(play("a1", "s1", 5, now.Add(time.Hour)))
	l.Append(play("a1", "s2", 0, now)) // unrated, must not appear

	ratings := l.Ratings("a1")
	assert.Equal(t, map[string]int{"s1": 5}, ratings)
}

func TestRatedAgents(t *testing.T) {
	t.Parallel()

	l := New()
	now := time.Now()
	l.Append(play("zeta", "s1", 4, now))
	l.Append(play("alpha", "s1", 3, now))
	l.Append(play("mid", "s1", 0, now)) // interacted but never rated

	assert.Equal(t, []string{"alpha", "zeta"}, l.RatedAgents())
}

func TestInteractedSince(t *testing.T) {
	t.Parallel()

	l := New()
	cutoff := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l.Append(play("a1", "old", 0, cutoff.Add(-time.Hour)))
	l.Append(play("a1", "edge", 0, cutoff))
	l.Append(play("a1", "fresh", 0, cutoff.Add(time.Minute)))

	assert.False(t, l.InteractedSince("a1", "old", cutoff))
	assert.False(t, l.InteractedSince("a1", "edge", cutoff), "events exactly at the cutoff are outside the window")
	assert.True(t, l.InteractedSince("a1", "fresh", cutoff))
	assert.False(t, l.InteractedSince("a1", "unknown", cutoff))
	assert.False(t, l.InteractedSince("nobody", "fresh", cutoff))
}

func TestConcurrentAppends(t *testing.T) {
	t.Parallel()

	l := New()
	now := time.Now()

	const agents, perAgent = 8, 200
	var wg sync.WaitGroup
	for a := 0; a < agents; a++ {
		a := a
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("agent_%d", a)
			for i := 0; i < perAgent; i++ {
				l.Append(play(id, fmt.Sprintf("s%d", i), 1+i%5, now))
			}
		}()
	}
	wg.Wait()

	for a := 0; a < agents; a++ {
		assert.Len(t, l.ForAgent(fmt.Sprintf("agent_%d", a)), perAgent)
	}
	assert.Len(t, l.RatedAgents(), agents)
}
