package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/simrec/simrec/internal/core/domain"
)

// Column names of the Spotify songs dataset.
const (
	colID          = "track_id"
	colName        = "track_name"
	colArtist      = "track_artist"
	colGenre       = "playlist_genre"
	colPopularity  = "track_popularity"
	colReleaseDate = "track_album_release_date"
	colDurationMs  = "duration_ms"
)

var featureColumns = []string{"danceability", "energy", "acousticness", "valence", "tempo"}

// Load reads the dataset at path, drops rows missing an id, name, or any
// audio feature, normalizes tempo to [0,1] across the catalog, and returns
// an indexed Store. Rows that fail to parse are skipped, not fatal.
func Load(path string, log zerolog.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open dataset: %w", err)
	}
	defer f.Close()

	songs, dropped, err := parseSongs(f)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("catalog: dataset %s contains no usable rows", path)
	}

	normalizeTempo(songs)

	store := newStore(songs, log)
	store.log.Info().
		Str("path", path).
		Int("songs", len(songs)).
		Int("dropped_rows", dropped).
		Int("genres", len(store.byGenre)).
		Msg("catalog loaded")
	return store, nil
}

func parseSongs(r io.Reader) ([]domain.Song, int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range append([]string{colID, colName, colGenre}, featureColumns...) {
		if _, ok := cols[required]; !ok {
			return nil, 0, fmt.Errorf("catalog: dataset missing column %q", required)
		}
	}

	var songs []domain.Song
	dropped := 0
	seen := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("catalog: read row: %w", err)
		}

		song, ok := parseRow(record, cols)
		if !ok {
			dropped++
			continue
		}
		if _, dup := seen[song.ID]; dup {
			dropped++
			continue
		}
		seen[song.ID] = struct{}{}
		songs = append(songs, song)
	}
	return songs, dropped, nil
}

func parseRow(record []string, cols map[string]int) (domain.Song, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	song := domain.Song{
		ID:     field(colID),
		Name:   field(colName),
		Artist: field(colArtist),
		Genre:  field(colGenre),
	}
	if song.ID == "" || song.Name == "" {
		return domain.Song{}, false
	}

	values := make([]float64, 0, len(featureColumns))
	for _, name := range featureColumns {
		v, err := strconv.ParseFloat(field(name), 64)
		if err != nil {
			return domain.Song{}, false
		}
		values = append(values, v)
	}
	song.Features = domain.AudioFeatures{
		Danceability: values[0],
		Energy:       values[1],
		Acousticness: values[2],
		Valence:      values[3],
	}
	song.TempoBPM = values[4]

	// Metadata fields are best-effort; a bad year or popularity does not
	// drop the row.
	song.ReleaseYear = parseReleaseYear(field(colReleaseDate))
	if p, err := strconv.Atoi(field(colPopularity)); err == nil {
		song.Popularity = p
	}
	if d, err := strconv.Atoi(field(colDurationMs)); err == nil {
		song.DurationMs = d
	}
	return song, true
}

// parseReleaseYear extracts the year from dates like "2019-06-14" or "2019".
func parseReleaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// normalizeTempo min-max scales raw BPM into [0,1] so tempo is comparable
// with the other features in similarity sums. A flat catalog (all songs at
// one tempo) maps to 0.5.
func normalizeTempo(songs []domain.Song) {
	minBPM, maxBPM := songs[0].TempoBPM, songs[0].TempoBPM
	for _, s := range songs[1:] {
		if s.TempoBPM < minBPM {
			minBPM = s.TempoBPM
		}
		if s.TempoBPM > maxBPM {
			maxBPM = s.TempoBPM
		}
	}

	span := maxBPM - minBPM
	for i := range songs {
		if span == 0 {
			songs[i].Features.Tempo = 0.5
			continue
		}
		songs[i].Features.Tempo = (songs[i].TempoBPM - minBPM) / span
	}
}
