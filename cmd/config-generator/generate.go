package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"config-generator/internal/pipeline"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		inputDir  string
		outputDir string
		format    string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the model and compute the configuration delta",
		Long: `Reads the class model and the base and patched configuration snapshots
from the input directory, then writes the containment XML, the metadata
catalogue, the delta and the patched snapshot to the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg

			if inputDir != "" {
				cfg.Input.Dir = inputDir
			}

			if outputDir != "" {
				cfg.Output.Dir = outputDir
			}

			if format != "" {
				cfg.Output.Format = format
			}

			if cmd.Flags().Changed("strict") {
				cfg.Validation.Strict = strict
			}

			res, err := pipeline.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range res.Written {
				fmt.Fprintln(out, path)
			}

			fmt.Fprintf(out, "delta: %s\n", res.Delta.Summary())

			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "", "directory holding the model and snapshots")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory the artifacts are written to")
	cmd.Flags().StringVar(&format, "format", "", "document format (json|yaml|msgpack)")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort on validation warnings")

	return cmd
}
