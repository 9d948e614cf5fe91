package sim

import "github.com/simrec/simrec/internal/core/domain"

// Stats aggregates a finished run's interaction history.
type Stats struct {
	TotalInteractions int
	ByArchetype       map[string]int
	PlaylistsCreated  int
	AverageRating     float64
	SkipRate          float64
}

func (r *Runner) collectStats() Stats {
	stats := Stats{ByArchetype: make(map[string]int)}

	ratingSum, rated, skips := 0, 0, 0
	for _, agent := range r.agents {
		events := r.ledger.ForAgent(agent.ID)
		stats.TotalInteractions += len(events)
		stats.ByArchetype[agent.Archetype] += len(events)
		for _, ev := range events {
			if ev.Type == domain.InteractionPlaylist {
				stats.PlaylistsCreated++
				continue
			}
			if ev.Rated() {
				ratingSum += ev.Rating
				rated++
			}
			if ev.Skipped {
				skips++
			}
		}
	}
	if rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(rated)
	}
	if stats.TotalInteractions > 0 {
		stats.SkipRate = float64(skips) / float64(stats.TotalInteractions)
	}
	return stats
}
