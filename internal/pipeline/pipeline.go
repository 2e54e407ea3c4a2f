// Package pipeline runs the full generation: it renders the containment XML
// and the metadata catalogue from the class model, and derives and applies
// the delta between the base and patched configuration snapshots.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"config-generator/internal/classmodel"
	"config-generator/internal/codec"
	"config-generator/internal/config"
	"config-generator/internal/delta"
	"config-generator/internal/diagnostic"
	"config-generator/internal/logging"
	"config-generator/internal/output"
	"config-generator/internal/structure"
)

// ErrValidationFailed is returned when strict validation rejects the model.
var ErrValidationFailed = errors.New("model validation failed")

// Result is the outcome of a run.
type Result struct {
	// Files are the generated artifacts in a fixed order: containment XML,
	// metadata, delta, patched snapshot.
	Files []output.File
	// Written holds the paths of the files on disk; empty after Build.
	Written []string
	// Diagnostics are the validation findings for the model.
	Diagnostics *diagnostic.Diagnostics
	// Delta is the change set between the base and patched snapshots.
	Delta *delta.Delta
}

// Run builds every artifact and writes it to the configured output directory.
func Run(ctx context.Context, cfg config.Config) (*Result, error) {
	res, err := Build(ctx, cfg)
	if err != nil {
		return nil, err
	}

	written, err := output.WriteFiles(res.Files, cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	res.Written = written

	logger := logging.FromContext(ctx)
	for _, path := range written {
		logger.Info("wrote file", "path", path)
	}

	return res, nil
}

// Build produces every artifact in memory. The model branch and the delta
// branch run concurrently; the first failure cancels the other.
func Build(ctx context.Context, cfg config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var (
		modelFiles []output.File
		deltaFiles []output.File
		diags      *diagnostic.Diagnostics
		d          *delta.Delta
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		modelFiles, diags, err = buildModel(gctx, cfg)

		return err
	})

	g.Go(func() error {
		var err error
		deltaFiles, d, err = buildDelta(gctx, cfg)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]output.File, 0, len(modelFiles)+len(deltaFiles))
	files = append(files, modelFiles...)
	files = append(files, deltaFiles...)

	return &Result{
		Files:       files,
		Diagnostics: diags,
		Delta:       d,
	}, nil
}

func buildModel(ctx context.Context, cfg config.Config) ([]output.File, *diagnostic.Diagnostics, error) {
	logger := logging.FromContext(ctx).With("branch", "model")

	path := cfg.ModelPath()
	logger.Debug("loading class model", "path", path)

	m, err := classmodel.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("loaded class model", "path", path, "classes", m.Len())

	diags := classmodel.Validate(m)
	LogDiagnostics(logger, diags)

	if cfg.Validation.Strict && (diags.HasErrors() || diags.HasWarnings()) {
		return nil, diags, fmt.Errorf("%w: %d errors, %d warnings: %s",
			ErrValidationFailed, len(diags.Errors), len(diags.Warnings), strings.Join(diags.Codes(), ", "))
	}

	if err := ctx.Err(); err != nil {
		return nil, diags, err
	}

	tree, err := structure.Render(m)
	if err != nil {
		return nil, diags, fmt.Errorf("rendering %s: %w", path, err)
	}

	xmlData, err := tree.XML(cfg.Output.Indent)
	if err != nil {
		return nil, diags, err
	}

	meta, err := structure.Metadata(m)
	if err != nil {
		return nil, diags, fmt.Errorf("building metadata for %s: %w", path, err)
	}

	metaData, err := codec.Marshal(cfg.OutputFormat(), meta)
	if err != nil {
		return nil, diags, fmt.Errorf("encoding metadata: %w", err)
	}

	logger.Debug("model artifacts ready", "nodes", tree.Count(), "xml_bytes", len(xmlData), "meta_classes", len(meta))

	return []output.File{
		{Filename: cfg.Output.ConfigXML, Content: xmlData},
		{Filename: cfg.MetaFile(), Content: metaData},
	}, diags, nil
}

func buildDelta(ctx context.Context, cfg config.Config) ([]output.File, *delta.Delta, error) {
	logger := logging.FromContext(ctx).With("branch", "delta")

	base, err := delta.LoadSnapshot(cfg.BasePath())
	if err != nil {
		return nil, nil, err
	}

	patched, err := delta.LoadSnapshot(cfg.PatchedPath())
	if err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	d := delta.Generate(base, patched)
	logger.Info("generated delta", "base_keys", base.Len(), "patched_keys", patched.Len(), "changes", d.Summary())

	result := delta.Apply(base, d)
	if !result.Equal(patched) {
		// Apply(base, Generate(base, patched)) must reproduce patched.
		return nil, nil, errors.New("applied delta does not reproduce the patched snapshot")
	}

	format := cfg.OutputFormat()

	deltaData, err := codec.Marshal(format, d)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding delta: %w", err)
	}

	resultData, err := codec.Marshal(format, result)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding patched snapshot: %w", err)
	}

	return []output.File{
		{Filename: cfg.DeltaFile(), Content: deltaData},
		{Filename: cfg.PatchedConfigFile(), Content: resultData},
	}, d, nil
}

// LogDiagnostics writes each diagnostic at the log level matching its severity.
func LogDiagnostics(logger *slog.Logger, diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, diag := range diags.All() {
		level := slog.LevelInfo

		switch diag.Severity {
		case diagnostic.DiagnosticError:
			level = slog.LevelError
		case diagnostic.DiagnosticWarning:
			level = slog.LevelWarn
		}

		attrs := []any{"code", diag.Code}
		if diag.Class != "" {
			attrs = append(attrs, "class", diag.Class)
		}

		if diag.Element != "" {
			attrs = append(attrs, "element", diag.Element)
		}

		if len(diag.Suggestions) > 0 {
			attrs = append(attrs, "suggestions", diag.Suggestions)
		}

		logger.Log(context.Background(), level, diag.Message, attrs...)
	}
}
