package spotify

// Wire representations of the Spotify Web API responses the client consumes.

type spotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []spotifyArtist `json:"artists"`
	Album      spotifyAlbum    `json:"album"`
	Popularity int             `json:"popularity"`
	DurationMs int             `json:"duration_ms"`
}

type spotifyArtist struct {
	Name string `json:"name"`
}

type spotifyAlbum struct {
	ReleaseDate string `json:"release_date"`
}

type spotifyAudioFeatures struct {
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Acousticness float64 `json:"acousticness"`
	Valence      float64 `json:"valence"`
	Tempo        float64 `json:"tempo"`
}
