package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simrec/simrec/internal/core/domain"
)

func TestFuse(t *testing.T) {
	t.Parallel()

	a := featSong("a", "pop", 0.1)
	b := featSong("b", "pop", 0.2)
	c := featSong("c", "pop", 0.3)

	t.Run("dual presence sums partial scores", func(t *testing.T) {
		t.Parallel()

		got := fuse([]domain.Song{a, b}, []domain.Song{b, c}, 0.7, 0.3)
		require.Len(t, got, 3)

		// a: 0.7*1.0          = 0.70
		// b: 0.7*0.5 + 0.3*1.0 = 0.65
		// c: 0.3*0.5           = 0.15
		assert.Equal(t, "a", got[0].Song.ID)
		assert.InDelta(t, 0.70, got[0].Score, 1e-9)
		assert.Equal(t, "b", got[1].Song.ID)
		assert.InDelta(t, 0.65, got[1].Score, 1e-9)
		assert.Equal(t, "c", got[2].Song.ID)
		assert.InDelta(t, 0.15, got[2].Score, 1e-9)
	})

	t.Run("ties keep content-first order", func(t *testing.T) {
		t.Parallel()

		got := fuse([]domain.Song{a}, []domain.Song{b}, 0.5, 0.5)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Song.ID)
		assert.Equal(t, "b", got[1].Song.ID)
		assert.Equal(t, got[0].Score, got[1].Score)
	})

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, fuse(nil, nil, 0.7, 0.3))

		got := fuse(nil, []domain.Song{c}, 0.7, 0.3)
		require.Len(t, got, 1)
		assert.Equal(t, "c", got[0].Song.ID)
		assert.InDelta(t, 0.3, got[0].Score, 1e-9)
	})

	t.Run("only listed songs appear", func(t *testing.T) {
		t.Parallel()

		got := fuse([]domain.Song{a, b}, []domain.Song{a}, 0.7, 0.3)
		ids := make(map[string]bool)
		for _, rec := range got {
			ids[rec.Song.ID] = true
		}
		assert.Equal(t, map[string]bool{"a": true, "b": true}, ids)
	})
}
