package domain

import (
	"math"
	"math/rand"
)

// affinityThreshold is the fraction of attainable preference weight a song
// must collect before the agent considers it a match.
const affinityThreshold = 0.6

const (
	ratingBase = 3.0
	ratingMin  = 1
	ratingMax  = 5
)

// Affinity reports whether the agent would choose to listen to the song.
//
// A matching genre preference contributes its weight; every feature
// preference contributes its weight only when the song's value falls inside
// the preferred range, but always counts toward the attainable total. An
// agent with no applicable preferences never matches.
func (a *Agent) Affinity(s Song) bool {
	var score, total float64

	if w, ok := a.genreWeight(s.Genre); ok {
		score += w
		total++
	}
	for _, fp := range a.FeaturePreferences {
		v, ok := s.Features.Value(fp.Feature)
		if !ok {
			continue
		}
		if v >= fp.Low && v <= fp.High {
			score += fp.Weight
		}
		total++
	}

	if total == 0 {
		return false
	}
	return score/total > affinityThreshold
}

// Rate generates a 1-5 rating for the song, or ok=false when the agent
// declines to rate (probability 1 - RatingProbability).
//
// Matching preferences push the score up from a base of 3 and mismatched
// feature ranges push it down symmetrically, so a rating is always
// interpretable as preference points for or against. Rounding is half away
// from zero (math.Round); the policy is fixed here for reproducibility.
func (a *Agent) Rate(s Song, rng *rand.Rand) (int, bool) {
	if rng.Float64() > a.Behavior.RatingProbability {
		return 0, false
	}

	var adjustments float64
	count := 0

	if w, ok := a.genreWeight(s.Genre); ok {
		adjustments += 2 * w
		count++
	}
	for _, fp := range a.FeaturePreferences {
		v, ok := s.Features.Value(fp.Feature)
		if !ok {
			continue
		}
		if v >= fp.Low && v <= fp.High {
			adjustments += 2 * fp.Weight
		} else {
			adjustments -= 2 * fp.Weight
		}
		count++
	}

	if count == 0 {
		return int(ratingBase), true
	}

	rating := int(math.Round(ratingBase + adjustments/float64(count)))
	if rating < ratingMin {
		rating = ratingMin
	}
	if rating > ratingMax {
		rating = ratingMax
	}
	return rating, true
}
