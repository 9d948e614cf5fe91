package domain

// Recommendation pairs a song with its fused score. Higher is better.
// Recommendations are ephemeral: produced per request and never persisted.
type Recommendation struct {
	Song  Song
	Score float64
}
