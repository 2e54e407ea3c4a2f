package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"config-generator/internal/classmodel"
	"config-generator/internal/codec"
	"config-generator/internal/structure"
)

func newRenderCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "render <model.xml>",
		Short: "Print the containment XML of a class model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := classmodel.LoadFile(args[0])
			if err != nil {
				return err
			}

			data, err := structure.RenderXML(m, c.cfg.Output.Indent)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", args[0], err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

			return err
		},
	}
}

func newMetaCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "meta <model.xml>",
		Short: "Print the metadata catalogue of a class model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.format(format)
			if err != nil {
				return err
			}

			m, err := classmodel.LoadFile(args[0])
			if err != nil {
				return err
			}

			meta, err := structure.Metadata(m)
			if err != nil {
				return fmt.Errorf("building metadata for %s: %w", args[0], err)
			}

			return writeDocument(cmd, f, meta)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "document format (json|yaml|msgpack)")

	return cmd
}

// format resolves a --format flag value, falling back to the configured output format.
func (c *cli) format(flag string) (codec.Format, error) {
	if flag == "" {
		return c.cfg.OutputFormat(), nil
	}

	f, err := codec.ParseFormat(flag)
	if err != nil {
		return 0, &ExitError{Code: 2, Message: err.Error()}
	}

	return f, nil
}

func writeDocument(cmd *cobra.Command, f codec.Format, v any) error {
	data, err := codec.Marshal(f, v)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
