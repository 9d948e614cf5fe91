package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBehavior() Behavior {
	return Behavior{
		AvgSessionLength:          45,
		SkipProbability:           0.3,
		RatingProbability:         0.5,
		PlaylistCreationFrequency: 0.1,
	}
}

func TestNewAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		genres   []GenrePreference
		features []FeaturePreference
		behavior Behavior
		wantErr  bool
	}{
		{
			name:     "valid agent",
			genres:   []GenrePreference{{Genre: "pop", Weight: 0.8}},
			features: []FeaturePreference{{Feature: "energy", Low: 0.5, High: 0.9, Weight: 0.6}},
			behavior: validBehavior(),
		},
		{
			name:     "genre weight above one",
			genres:   []GenrePreference{{Genre: "pop", Weight: 1.2}},
			behavior: validBehavior(),
			wantErr:  true,
		},
		{
			name:     "feature range inverted",
			features: []FeaturePreference{{Feature: "energy", Low: 0.9, High: 0.5, Weight: 0.6}},
			behavior: validBehavior(),
			wantErr:  true,
		},
		{
			name: "duplicate genre",
			genres: []GenrePreference{
				{Genre: "pop", Weight: 0.8},
				{Genre: "pop", Weight: 0.4},
			},
			behavior: validBehavior(),
			wantErr:  true,
		},
		{
			name: "duplicate feature",
			features: []FeaturePreference{
				{Feature: "energy", Low: 0.1, High: 0.5, Weight: 0.6},
				{Feature: "energy", Low: 0.5, High: 0.9, Weight: 0.4},
			},
			behavior: validBehavior(),
			wantErr:  true,
		},
		{
			name: "session length too short",
			behavior: Behavior{
				AvgSessionLength:          5,
				SkipProbability:           0.3,
				RatingProbability:         0.5,
				PlaylistCreationFrequency: 0.1,
			},
			wantErr: true,
		},
		{
			name: "skip probability above one",
			behavior: Behavior{
				AvgSessionLength:          45,
				SkipProbability:           1.5,
				RatingProbability:         0.5,
				PlaylistCreationFrequency: 0.1,
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			agent, err := NewAgent("agent_0", "tester", tc.genres, tc.features, tc.behavior)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAgent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "agent_0", agent.ID)
			assert.Equal(t, "tester", agent.Archetype)
		})
	}
}
