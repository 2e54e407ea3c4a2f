package main

import (
	"github.com/spf13/cobra"

	"config-generator/internal/delta"
	"config-generator/internal/logging"
)

func newDiffCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff <base> <patched>",
		Short: "Print the delta that turns the base snapshot into the patched one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.format(format)
			if err != nil {
				return err
			}

			base, err := delta.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			patched, err := delta.LoadSnapshot(args[1])
			if err != nil {
				return err
			}

			d := delta.Generate(base, patched)
			logging.FromContext(cmd.Context()).Info("generated delta", "changes", d.Summary())

			return writeDocument(cmd, f, d)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "document format (json|yaml|msgpack)")

	return cmd
}

func newPatchCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "patch <base> <delta>",
		Short: "Print the base snapshot with a delta applied",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.format(format)
			if err != nil {
				return err
			}

			base, err := delta.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			d, err := delta.LoadDelta(args[1])
			if err != nil {
				return err
			}

			logging.FromContext(cmd.Context()).Info("applying delta", "changes", d.Summary())

			return writeDocument(cmd, f, delta.Apply(base, d))
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "document format (json|yaml|msgpack)")

	return cmd
}
