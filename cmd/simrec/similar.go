package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simrec/simrec/internal/adapters/catalog"
)

func newSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <song-id>",
		Short: "List catalog songs with the closest audio features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			n, _ := cmd.Flags().GetInt("n")

			log := newLogger(cfg.Logging)
			store, err := catalog.Load(cfg.Catalog.Path, log)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			seed, err := store.GetSong(args[0])
			if err != nil {
				return fmt.Errorf("song %s: %w", args[0], err)
			}
			similar, err := store.SimilarByFeatures(seed.ID, n)
			if err != nil {
				return err
			}

			fmt.Printf("Songs similar to %s by %s (%s):\n\n", seed.Name, seed.Artist, seed.Genre)
			for i, s := range similar {
				fmt.Printf("%2d. %s by %s [%s]\n", i+1, s.Name, s.Artist, s.Genre)
			}
			return nil
		},
	}

	cmd.Flags().Int("n", 10, "number of similar songs")
	return cmd
}
