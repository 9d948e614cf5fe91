package recommend

import (
	"sort"

	"github.com/simrec/simrec/internal/core/domain"
)

// fuse combines the content and collaborative candidate lists into one
// ranking. Each list contributes a position-based partial score
// weight * (1 - position/len), and songs on both lists sum their partials.
// Ties keep content-list order via the stable sort.
func fuse(content, collab []domain.Song, contentWeight, collabWeight float64) []domain.Recommendation {
	type entry struct {
		song  domain.Song
		score float64
	}

	index := make(map[string]int)
	var entries []entry

	add := func(songs []domain.Song, weight float64) {
		for pos, song := range songs {
			score := weight * (1 - float64(pos)/float64(len(songs)))
			if i, seen := index[song.ID]; seen {
				entries[i].score += score
				continue
			}
			index[song.ID] = len(entries)
			entries = append(entries, entry{song: song, score: score})
		}
	}
	add(content, contentWeight)
	add(collab, collabWeight)

	sort.SliceStable(entries, func(a, b int) bool { return entries[a].score > entries[b].score })

	out := make([]domain.Recommendation, 0, len(entries))
	for _, en := range entries {
		out = append(out, domain.Recommendation{Song: en.song, Score: en.score})
	}
	return out
}
