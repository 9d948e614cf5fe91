package domain

// FeatureMatrix is a pre-materialized view of every catalog song's normalized
// feature vector, aligned with song ids and genres, with an id→row index.
// Building it once at load time lets scorers iterate rows instead of doing
// per-song catalog lookups.
type FeatureMatrix struct {
	ids    []string
	genres []string
	rows   [][]float64
	index  map[string]int
}

// NewFeatureMatrix builds a matrix from parallel slices. Each row must be in
// FeatureNames order with values in [0,1].
func NewFeatureMatrix(ids, genres []string, rows [][]float64) *FeatureMatrix {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return &FeatureMatrix{ids: ids, genres: genres, rows: rows, index: index}
}

// Len returns the number of songs in the matrix.
func (m *FeatureMatrix) Len() int { return len(m.ids) }

// ID returns the song id at row i.
func (m *FeatureMatrix) ID(i int) string { return m.ids[i] }

// Genre returns the genre of the song at row i.
func (m *FeatureMatrix) Genre(i int) string { return m.genres[i] }

// Row returns the feature vector at row i. Callers must not mutate it.
func (m *FeatureMatrix) Row(i int) []float64 { return m.rows[i] }

// RowByID returns the feature vector for the given song id.
func (m *FeatureMatrix) RowByID(id string) ([]float64, bool) {
	i, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return m.rows[i], true
}
