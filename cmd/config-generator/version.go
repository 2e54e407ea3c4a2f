package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version can be overridden at build time via -ldflags "-X main.Version=...".
var Version = "0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "config-generator %s\n", Version)
			return err
		},
	}
}
