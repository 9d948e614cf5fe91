package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GenrePreference weights a single genre in [0,1]. Weights need not sum to 1.
type GenrePreference struct {
	Genre  string  `validate:"required"`
	Weight float64 `validate:"gte=0,lte=1"`
}

// FeaturePreference describes a preferred value range for one audio feature.
type FeaturePreference struct {
	Feature string  `validate:"required"`
	Low     float64 `validate:"gte=0"`
	High    float64 `validate:"gtefield=Low"`
	Weight  float64 `validate:"gte=0,lte=1"`
}

// Behavior holds the probabilistic listening parameters of an agent.
type Behavior struct {
	AvgSessionLength          int     `validate:"gte=10,lte=180"`
	SkipProbability           float64 `validate:"gte=0,lte=1"`
	RatingProbability         float64 `validate:"gte=0,lte=1"`
	PlaylistCreationFrequency float64 `validate:"gte=0,lte=1"`
}

// Agent is a synthetic listener. Preference and behavior fields are fixed at
// construction; only Playlists grows over the agent's lifetime.
type Agent struct {
	ID                 string              `validate:"required"`
	Archetype          string              `validate:"required"`
	GenrePreferences   []GenrePreference   `validate:"dive"`
	FeaturePreferences []FeaturePreference `validate:"dive"`
	Behavior           Behavior
	Playlists          []*Playlist
}

// NewAgent validates all weight and probability ranges and rejects duplicate
// preference keys before returning an agent.
func NewAgent(id, archetype string, genres []GenrePreference, features []FeaturePreference, behavior Behavior) (*Agent, error) {
	a := &Agent{
		ID:                 id,
		Archetype:          archetype,
		GenrePreferences:   genres,
		FeaturePreferences: features,
		Behavior:           behavior,
	}
	if err := validate.Struct(a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAgent, err)
	}
	if err := validate.Struct(behavior); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAgent, err)
	}

	seenGenres := make(map[string]struct{}, len(genres))
	for _, gp := range genres {
		if _, dup := seenGenres[gp.Genre]; dup {
			return nil, fmt.Errorf("%w: duplicate genre preference %q", ErrInvalidAgent, gp.Genre)
		}
		seenGenres[gp.Genre] = struct{}{}
	}
	seenFeatures := make(map[string]struct{}, len(features))
	for _, fp := range features {
		if _, dup := seenFeatures[fp.Feature]; dup {
			return nil, fmt.Errorf("%w: duplicate feature preference %q", ErrInvalidAgent, fp.Feature)
		}
		seenFeatures[fp.Feature] = struct{}{}
	}

	return a, nil
}

// genreWeight returns the weight for the given genre if the agent has a
// preference for it.
func (a *Agent) genreWeight(genre string) (float64, bool) {
	for _, gp := range a.GenrePreferences {
		if gp.Genre == genre {
			return gp.Weight, true
		}
	}
	return 0, false
}
