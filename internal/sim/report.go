package sim

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/core/ports"
	"github.com/simrec/simrec/internal/onboarding"
)

const (
	reportRule    = "================================================================================"
	reportSubRule = "----------------------------------------"
)

func writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", reportRule, title, reportRule)
}

// WriteOnboardingReport summarizes an agent's onboarding session: skip
// frequency, average rating, and the per-song record.
func WriteOnboardingReport(w io.Writer, agent *domain.Agent, profile *onboarding.Profile, catalog ports.Catalog) {
	writeHeader(w, "Onboarding Results for "+agent.ID)
	if len(profile.Ratings) == 0 {
		return
	}

	skips, ratingSum, rated := 0, 0, 0
	for _, ev := range profile.Ratings {
		if ev.Skipped {
			skips++
		}
		if ev.Rated() {
			ratingSum += ev.Rating
			rated++
		}
	}
	fmt.Fprintf(w, "Skip Frequency: %.2f\n", float64(skips)/float64(len(profile.Ratings)))
	avg := 0.0
	if rated > 0 {
		avg = float64(ratingSum) / float64(rated)
	}
	fmt.Fprintf(w, "Average Rating: %.2f\n", avg)

	fmt.Fprintf(w, "\nInitial Song Ratings:\n%s\n", reportSubRule)
	for _, ev := range profile.Ratings {
		song, err := catalog.GetSong(ev.SongID)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "Song: %s by %s\n", song.Name, song.Artist)
		fmt.Fprintf(w, "Genre: %s\n", song.Genre)
		if ev.Rated() {
			fmt.Fprintf(w, "Rating: %d\n", ev.Rating)
		} else {
			fmt.Fprintln(w, "Rating: N/A")
		}
		fmt.Fprintf(w, "Skipped: %t\n\n", ev.Skipped)
	}
}

// WriteProfileReport lists the derived genre scores (descending) and feature
// means of a taste profile.
func WriteProfileReport(w io.Writer, agent *domain.Agent, profile *onboarding.Profile) {
	writeHeader(w, "User Profile for "+agent.ID)

	genres := make([]string, 0, len(profile.GenreScores))
	for g := range profile.GenreScores {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		gi, gj := genres[i], genres[j]
		if profile.GenreScores[gi] != profile.GenreScores[gj] {
			return profile.GenreScores[gi] > profile.GenreScores[gj]
		}
		return gi < gj
	})
	fmt.Fprintf(w, "\nGenre Preferences:\n%s\n", reportSubRule)
	for _, g := range genres {
		fmt.Fprintf(w, "%s: %.2f\n", g, profile.GenreScores[g])
	}

	fmt.Fprintf(w, "\nAudio Feature Preferences:\n%s\n", reportSubRule)
	for _, name := range domain.FeatureNames {
		fmt.Fprintf(w, "%s: %.2f\n", name, profile.FeatureMeans[name])
	}
}

// WriteRecommendationsReport lists an agent's feature preferences followed by
// the scored recommendations with their audio features.
func WriteRecommendationsReport(w io.Writer, agent *domain.Agent, recs []domain.Recommendation) {
	writeHeader(w, "Recommendations for "+agent.ID)

	fmt.Fprintf(w, "\nFeature Preferences Summary:\n%s\n", reportSubRule)
	for _, fp := range agent.FeaturePreferences {
		fmt.Fprintf(w, "%s: %.2f - %.2f (Weight: %.2f)\n", fp.Feature, fp.Low, fp.High, fp.Weight)
	}

	fmt.Fprintf(w, "\nRecommended Songs:\n%s\n", reportSubRule)
	for i, rec := range recs {
		fmt.Fprintf(w, "\n%d. %s by %s\n", i+1, rec.Song.Name, rec.Song.Artist)
		fmt.Fprintf(w, "Genre: %s\n", rec.Song.Genre)
		fmt.Fprintf(w, "Score: %.4f\n", rec.Score)
		fmt.Fprintln(w, "Audio Features:")
		for _, name := range domain.FeatureNames {
			v, _ := rec.Song.Features.Value(name)
			fmt.Fprintf(w, "- %s: %.2f\n", name, v)
		}
	}
	fmt.Fprintln(w)
}

// WriteStatsReport renders run statistics as a plain-text block.
func WriteStatsReport(w io.Writer, stats Stats) {
	writeHeader(w, "Simulation Statistics")
	fmt.Fprintf(w, "Total Interactions: %d\n", stats.TotalInteractions)
	fmt.Fprintf(w, "Playlists Created: %d\n", stats.PlaylistsCreated)
	fmt.Fprintf(w, "Average Rating: %.2f\n", stats.AverageRating)
	fmt.Fprintf(w, "Skip Rate: %.2f\n", stats.SkipRate)

	archetypes := make([]string, 0, len(stats.ByArchetype))
	for a := range stats.ByArchetype {
		archetypes = append(archetypes, a)
	}
	sort.Strings(archetypes)
	fmt.Fprintf(w, "\nInteractions by Archetype:\n%s\n", reportSubRule)
	for _, a := range archetypes {
		fmt.Fprintf(w, "%s: %d\n", a, stats.ByArchetype[a])
	}
}

// caser-free title for playlist focus display in reports.
func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// WritePlaylistsReport lists every playlist each agent created during a run.
func WritePlaylistsReport(w io.Writer, agents []*domain.Agent) {
	writeHeader(w, "Agent Playlists")
	for _, agent := range agents {
		if len(agent.Playlists) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%s):\n%s\n", agent.ID, agent.Archetype, reportSubRule)
		for _, pl := range agent.Playlists {
			fmt.Fprintf(w, "Name: %s\n", pl.Name)
			fmt.Fprintf(w, "Description: %s\n", pl.Description)
			fmt.Fprintf(w, "Genre Focus: %s\n", titleWord(pl.GenreFocus))
			fmt.Fprintf(w, "Number of Songs: %d\n\n", len(pl.SongIDs))
		}
	}
}
