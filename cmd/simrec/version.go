package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the simrec version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println("simrec", version)
		},
	}
}
