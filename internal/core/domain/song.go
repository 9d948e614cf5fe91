package domain

// FeatureNames is the fixed order of the audio feature vector used across
// the catalog feature matrix, taste profiles, and similarity scoring.
var FeatureNames = []string{"danceability", "energy", "acousticness", "valence", "tempo"}

// AudioFeatures holds a song's audio feature values. All values, including
// Tempo, are normalized to [0,1]; the catalog normalizes tempo from raw BPM
// at load time so similarity math runs on a consistent scale.
type AudioFeatures struct {
	Danceability float64
	Energy       float64
	Acousticness float64
	Valence      float64
	Tempo        float64
}

// Vector returns the features in FeatureNames order.
func (f AudioFeatures) Vector() []float64 {
	return []float64{f.Danceability, f.Energy, f.Acousticness, f.Valence, f.Tempo}
}

// Value looks up a feature by name. The second return is false for names
// outside the fixed feature set.
func (f AudioFeatures) Value(name string) (float64, bool) {
	switch name {
	case "danceability":
		return f.Danceability, true
	case "energy":
		return f.Energy, true
	case "acousticness":
		return f.Acousticness, true
	case "valence":
		return f.Valence, true
	case "tempo":
		return f.Tempo, true
	default:
		return 0, false
	}
}

// Song is an immutable catalog record.
type Song struct {
	ID          string
	Name        string
	Artist      string
	Genre       string
	ReleaseYear int
	Popularity  int
	DurationMs  int
	TempoBPM    float64 // raw tempo for display; Features.Tempo is the normalized value
	Features    AudioFeatures
}
