package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simrec/simrec/internal/adapters/spotify"
	"github.com/simrec/simrec/internal/core/domain"
)

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <spotify-track-id>",
		Short: "Fetch a track with audio features from the Spotify API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
				return fmt.Errorf("spotify.client_id and spotify.client_secret must be configured")
			}

			log := newLogger(cfg.Logging)
			client := spotify.NewClient(cmd.Context(), cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.BaseURL, log)

			song, err := client.GetSong(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch track %s: %w", args[0], err)
			}

			fmt.Printf("%s by %s\n", song.Name, song.Artist)
			fmt.Printf("Year: %d  Popularity: %d  Duration: %dms  Tempo: %.0f BPM\n",
				song.ReleaseYear, song.Popularity, song.DurationMs, song.TempoBPM)
			fmt.Println("Audio Features:")
			for _, name := range domain.FeatureNames {
				v, _ := song.Features.Value(name)
				fmt.Printf("  %s: %.2f\n", name, v)
			}
			return nil
		},
	}
}
