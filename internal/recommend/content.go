package recommend

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/simrec/simrec/internal/core/domain"
)

// genreBonusDivisor scales a profile's mean genre rating (1-5) into a bonus
// comparable with the [0,1] feature similarity.
const genreBonusDivisor = 5

// contentCandidates ranks every catalog song by feature closeness to the
// agent's taste profile plus a genre bonus, then drops recently recommended
// songs. Agents without a profile fall back to uniform random sampling.
func (e *Engine) contentCandidates(agentID string, n int, now time.Time, rng *rand.Rand) []domain.Song {
	profile, ok := e.profiles.Get(agentID)
	if !ok {
		return e.catalog.RandomSongs(n, rng)
	}

	matrix := e.catalog.FeatureMatrix()
	if matrix == nil || matrix.Len() == 0 {
		return nil
	}

	target := make([]float64, len(domain.FeatureNames))
	for i, name := range domain.FeatureNames {
		target[i] = profile.FeatureMeans[name]
	}

	scores := make([]float64, matrix.Len())
	for i := 0; i < matrix.Len(); i++ {
		scores[i] = featureSimilarity(matrix.Row(i), target)
		if mean, liked := profile.GenreScores[matrix.Genre(i)]; liked {
			scores[i] += mean / genreBonusDivisor
		}
	}

	order := make([]int, matrix.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	pool := n * e.cfg.CandidateMultiplier
	if pool > len(order) {
		pool = len(order)
	}

	cutoff := now.Add(-e.cfg.RecencyWindow)
	candidates := make([]domain.Song, 0, n)
	for _, idx := range order[:pool] {
		if len(candidates) == n {
			break
		}
		id := matrix.ID(idx)
		if e.ledger.InteractedSince(agentID, id, cutoff) {
			continue
		}
		song, err := e.catalog.GetSong(id)
		if err != nil {
			continue
		}
		candidates = append(candidates, song)
	}
	return candidates
}

// featureSimilarity is the mean per-feature closeness of two [0,1] vectors.
func featureSimilarity(row, target []float64) float64 {
	if len(row) == 0 || len(row) != len(target) {
		return 0
	}
	var sum float64
	for i := range row {
		sum += 1 - math.Abs(row[i]-target[i])
	}
	return sum / float64(len(row))
}
