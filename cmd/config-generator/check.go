package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"config-generator/internal/classmodel"
	"config-generator/internal/diagnostic"
)

func newCheckCmd(c *cli) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <model.xml>",
		Short: "Validate a class model and print its diagnostics",
		Long: `Prints every diagnostic found in the model, errors first. The exit code
is 1 when there are errors, or warnings with --strict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := classmodel.LoadFile(args[0])
			if err != nil {
				return err
			}

			diags := classmodel.Validate(m)

			out := cmd.OutOrStdout()
			p := newDiagPrinter(useColor(c.colorMode, out))
			p.print(out, diags)

			failOnWarnings := strict || c.cfg.Validation.Strict
			if diags.HasErrors() || (failOnWarnings && diags.HasWarnings()) {
				return &ExitError{Code: 1}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings as well as errors")

	return cmd
}

// useColor resolves the --color mode against the output writer.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

type diagPrinter struct {
	errorColor   *color.Color
	warningColor *color.Color
	infoColor    *color.Color
	codeColor    *color.Color
	okColor      *color.Color
}

func newDiagPrinter(enabled bool) *diagPrinter {
	p := &diagPrinter{
		errorColor:   color.New(color.FgRed, color.Bold),
		warningColor: color.New(color.FgYellow, color.Bold),
		infoColor:    color.New(color.FgCyan),
		codeColor:    color.New(color.Faint),
		okColor:      color.New(color.FgGreen, color.Bold),
	}

	for _, c := range []*color.Color{p.errorColor, p.warningColor, p.infoColor, p.codeColor, p.okColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p *diagPrinter) severity(s diagnostic.DiagnosticSeverity) string {
	switch s {
	case diagnostic.DiagnosticError:
		return p.errorColor.Sprint(s.String())
	case diagnostic.DiagnosticWarning:
		return p.warningColor.Sprint(s.String())
	default:
		return p.infoColor.Sprint(s.String())
	}
}

func (p *diagPrinter) print(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		code := d.Code
		d.Code = ""

		fmt.Fprintf(w, "%s %s %s\n", p.severity(d.Severity), p.codeColor.Sprintf("[%s]", code), d.String())
	}

	if len(diags.Errors) == 0 && len(diags.Warnings) == 0 {
		fmt.Fprintf(w, "%s (%d infos)\n", p.okColor.Sprint("ok"), len(diags.Infos))
		return
	}

	fmt.Fprintf(w, "%d errors, %d warnings, %d infos\n", len(diags.Errors), len(diags.Warnings), len(diags.Infos))
}
