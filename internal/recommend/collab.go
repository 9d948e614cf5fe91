package recommend

import (
	"math"
	"sort"

	"github.com/simrec/simrec/internal/core/domain"
)

// minRatedAgents is the number of agents with rating histories required
// before collaborative signal is considered available.
const minRatedAgents = 2

// collaborativeCandidates ranks songs the agent has not rated by the
// similarity-weighted ratings of its neighbors. Every neighbor contributes;
// agents with no rating overlap get similarity 0 and drop out naturally.
// Returns nil during cold start, which is not an error.
func (e *Engine) collaborativeCandidates(agentID string, n int) []domain.Song {
	rated := e.ratedAgents()
	if len(rated) < minRatedAgents {
		return nil
	}

	targetRatings := e.ratingsFor(agentID)
	if len(targetRatings) == 0 {
		return nil
	}

	scores := make(map[string]float64)
	for _, otherID := range rated {
		if otherID == agentID {
			continue
		}
		otherRatings := e.ratingsFor(otherID)
		similarity := ratingSimilarity(targetRatings, otherRatings)
		if similarity == 0 {
			continue
		}
		for songID, rating := range otherRatings {
			if _, seen := targetRatings[songID]; seen {
				continue
			}
			scores[songID] += float64(rating) * similarity
		}
	}
	if len(scores) == 0 {
		return nil
	}

	ranked := make([]string, 0, len(scores))
	for songID := range scores {
		ranked = append(ranked, songID)
	}
	// Secondary sort by id keeps the ranking deterministic across runs.
	sort.Slice(ranked, func(a, b int) bool {
		if scores[ranked[a]] != scores[ranked[b]] {
			return scores[ranked[a]] > scores[ranked[b]]
		}
		return ranked[a] < ranked[b]
	})

	candidates := make([]domain.Song, 0, n)
	for _, songID := range ranked {
		if len(candidates) == n {
			break
		}
		song, err := e.catalog.GetSong(songID)
		if err != nil {
			continue
		}
		candidates = append(candidates, song)
	}
	return candidates
}

// ratingSimilarity is the cosine similarity of two rating maps restricted to
// their common songs. Disjoint maps score 0. The measure is symmetric.
func ratingSimilarity(a, b map[string]int) float64 {
	var dot, normA, normB float64
	for songID, ra := range a {
		rb, ok := b[songID]
		if !ok {
			continue
		}
		dot += float64(ra) * float64(rb)
		normA += float64(ra) * float64(ra)
		normB += float64(rb) * float64(rb)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
