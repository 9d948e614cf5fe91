package onboarding

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/simrec/simrec/internal/core/domain"
	"github.com/simrec/simrec/internal/core/ports"
)

const (
	sessionCap       = 5
	songsPerGenre    = 2
	sessionGenres    = 2
	recentYearsBack  = 2
	sessionStepBack  = 30 * time.Minute
	recentSongsCount = 1
)

// Builder runs onboarding sessions against the catalog.
type Builder struct {
	catalog ports.Catalog
	ledger  ports.InteractionLedger
	log     zerolog.Logger
}

// NewBuilder constructs a Builder. The ledger receives the session's
// interactions so later recency filtering and collaborative scoring see them.
func NewBuilder(catalog ports.Catalog, ledger ports.InteractionLedger, log zerolog.Logger) *Builder {
	return &Builder{
		catalog: catalog,
		ledger:  ledger,
		log:     log.With().Str("component", "onboarding").Logger(),
	}
}

// Onboard presents a short curated session to the agent, collects its
// ratings, and aggregates them into an immutable profile.
func (b *Builder) Onboard(agent *domain.Agent, rng *rand.Rand, now time.Time) *Profile {
	songs := b.selectSessionSongs(agent)
	ratings := b.collectRatings(agent, songs, rng, now)
	profile := b.buildProfile(agent, ratings, now)

	b.log.Debug().
		Str("agent", agent.ID).
		Int("session_songs", len(songs)).
		Int("genres_scored", len(profile.GenreScores)).
		Msg("agent onboarded")
	return profile
}

// selectSessionSongs combines top songs from the agent's first two genre
// preferences with one recent popular song, capped at sessionCap total.
func (b *Builder) selectSessionSongs(agent *domain.Agent) []domain.Song {
	var selected []domain.Song

	genres := agent.GenrePreferences
	if len(genres) > sessionGenres {
		genres = genres[:sessionGenres]
	}
	for _, gp := range genres {
		selected = append(selected, b.catalog.TopSongsByGenre(gp.Genre, songsPerGenre)...)
	}

	_, maxYear := b.catalog.YearRange()
	selected = append(selected, b.catalog.PopularInRange(maxYear-recentYearsBack, maxYear, recentSongsCount)...)

	if len(selected) > sessionCap {
		selected = selected[:sessionCap]
	}
	return selected
}

// collectRatings plays the session in order, oldest timestamp first.
func (b *Builder) collectRatings(agent *domain.Agent, songs []domain.Song, rng *rand.Rand, now time.Time) []domain.Interaction {
	ratings := make([]domain.Interaction, 0, len(songs))
	for idx, song := range songs {
		rating, _ := agent.Rate(song, rng)
		event := domain.Interaction{
			AgentID:   agent.ID,
			SongID:    song.ID,
			Rating:    rating,
			Skipped:   rng.Float64() < agent.Behavior.SkipProbability,
			Timestamp: now.Add(-time.Duration(sessionCap-idx) * sessionStepBack),
			Type:      domain.InteractionOnboarding,
		}
		ratings = append(ratings, event)
		b.ledger.Append(event)
	}
	return ratings
}

func (b *Builder) buildProfile(agent *domain.Agent, ratings []domain.Interaction, now time.Time) *Profile {
	genreRatings := make(map[string][]int)
	likedFeatures := make(map[string][]float64)

	for _, ev := range ratings {
		song, err := b.catalog.GetSong(ev.SongID)
		if err != nil {
			continue
		}
		if ev.Rated() {
			genreRatings[song.Genre] = append(genreRatings[song.Genre], ev.Rating)
		}
		if ev.Rating >= LikeThreshold {
			for _, name := range domain.FeatureNames {
				v, _ := song.Features.Value(name)
				likedFeatures[name] = append(likedFeatures[name], v)
			}
		}
	}

	genreScores := make(map[string]float64, len(genreRatings))
	for genre, rs := range genreRatings {
		var sum int
		for _, r := range rs {
			sum += r
		}
		genreScores[genre] = float64(sum) / float64(len(rs))
	}

	featureMeans := make(map[string]float64, len(domain.FeatureNames))
	for _, name := range domain.FeatureNames {
		values := likedFeatures[name]
		if len(values) == 0 {
			featureMeans[name] = neutralFeatureValue
			continue
		}
		var sum float64
		for _, v := range values {
			sum += v
		}
		featureMeans[name] = sum / float64(len(values))
	}

	return &Profile{
		AgentID:      agent.ID,
		GenreScores:  genreScores,
		FeatureMeans: featureMeans,
		Ratings:      ratings,
		CreatedAt:    now,
	}
}
