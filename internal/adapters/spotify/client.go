// Package spotify provides a live catalog lookup client using the Spotify
// Web API with the client-credentials OAuth flow.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/simrec/simrec/internal/core/domain"
)

const (
	// DefaultBaseURL is the Spotify Web API root.
	DefaultBaseURL = "https://api.spotify.com/v1"
	// DefaultTokenURL is the client-credentials token endpoint.
	// Tokens are valid for one hour; the oauth2 transport refreshes them.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
)

// Client is an HTTP client for the Spotify Web API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
	log         zerolog.Logger
}

// NewClient constructs a Client whose requests carry a client-credentials
// bearer token. ctx bounds the token exchanges for the client's lifetime.
func NewClient(ctx context.Context, clientID, clientSecret, baseURL string, log zerolog.Logger) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     DefaultTokenURL,
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:  cc.Client(ctx),
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBackoff,
		log:         log.With().Str("component", "spotify").Logger(),
	}
}

// newClientWithHTTP is used by tests to bypass the token flow.
func newClientWithHTTP(httpClient *http.Client, baseURL string, log zerolog.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Millisecond,
		log:         log,
	}
}

// GetSong fetches a track and its audio features by id and maps them to a
// domain Song. A 404 from the API maps to domain.ErrNotFound.
func (c *Client) GetSong(ctx context.Context, id string) (domain.Song, error) {
	var track spotifyTrack
	if err := c.getJSON(ctx, fmt.Sprintf("%s/tracks/%s", c.baseURL, id), &track); err != nil {
		return domain.Song{}, err
	}

	var features spotifyAudioFeatures
	if err := c.getJSON(ctx, fmt.Sprintf("%s/audio-features/%s", c.baseURL, id), &features); err != nil {
		return domain.Song{}, err
	}

	return mapSongToDomain(track, features), nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("spotify adapter: %w", domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}
	return nil
}
