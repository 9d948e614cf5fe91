package spotify

import (
	"strconv"
	"strings"

	"github.com/simrec/simrec/internal/core/domain"
)

// Live tracks arrive one at a time, so catalog-wide min-max tempo scaling is
// not available. Tempo is normalized against the practical BPM range instead.
const (
	tempoMinBPM = 50.0
	tempoMaxBPM = 200.0
)

func mapSongToDomain(track spotifyTrack, features spotifyAudioFeatures) domain.Song {
	song := domain.Song{
		ID:         track.ID,
		Name:       track.Name,
		Artist:     joinArtistNames(track.Artists),
		Popularity: track.Popularity,
		DurationMs: track.DurationMs,
		TempoBPM:   features.Tempo,
		Features: domain.AudioFeatures{
			Danceability: features.Danceability,
			Energy:       features.Energy,
			Acousticness: features.Acousticness,
			Valence:      features.Valence,
			Tempo:        normalizeTempo(features.Tempo),
		},
	}

	if len(track.Album.ReleaseDate) >= 4 {
		if year, err := strconv.Atoi(track.Album.ReleaseDate[:4]); err == nil {
			song.ReleaseYear = year
		}
	}
	return song
}

func normalizeTempo(bpm float64) float64 {
	v := (bpm - tempoMinBPM) / (tempoMaxBPM - tempoMinBPM)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func joinArtistNames(artists []spotifyArtist) string {
	parts := make([]string, 0, len(artists))
	for _, artist := range artists {
		parts = append(parts, artist.Name)
	}
	return strings.Join(parts, ", ")
}
