// Package config loads the run configuration of the generator from TOML.
//
// Every key is optional; missing keys keep the values of Default:
//
//	[input]
//	dir = "./input"
//	model = "impulse_test_input.xml"
//	config = "config.json"
//	patched_config = "patched_config.json"
//
//	[output]
//	dir = "./out"
//	config_xml = "config.xml"
//	meta = "meta.json"
//	delta = "delta.json"
//	patched_config = "res_patched_config.json"
//	indent = "    "
//	format = "json"
//
//	[log]
//	level = "info"
//	format = "text"
//
//	[validation]
//	strict = false
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"config-generator/internal/codec"
)

// Config is the full run configuration.
type Config struct {
	Input      InputConfig      `toml:"input"`
	Output     OutputConfig     `toml:"output"`
	Log        LogConfig        `toml:"log"`
	Validation ValidationConfig `toml:"validation"`
}

// InputConfig names the files read by a run.
type InputConfig struct {
	Dir           string `toml:"dir"`
	Model         string `toml:"model"`
	Config        string `toml:"config"`
	PatchedConfig string `toml:"patched_config"`
}

// OutputConfig names the files written by a run and how they are encoded.
type OutputConfig struct {
	Dir           string `toml:"dir"`
	ConfigXML     string `toml:"config_xml"`
	Meta          string `toml:"meta"`
	Delta         string `toml:"delta"`
	PatchedConfig string `toml:"patched_config"`
	Indent        string `toml:"indent"`
	// Format applies to the meta, delta and patched config documents.
	Format string `toml:"format"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ValidationConfig controls how model diagnostics affect a run.
type ValidationConfig struct {
	// Strict aborts the run on warnings as well as errors.
	Strict bool `toml:"strict"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Input: InputConfig{
			Dir:           "./input",
			Model:         "impulse_test_input.xml",
			Config:        "config.json",
			PatchedConfig: "patched_config.json",
		},
		Output: OutputConfig{
			Dir:           "./out",
			ConfigXML:     "config.xml",
			Meta:          "meta.json",
			Delta:         "delta.json",
			PatchedConfig: "res_patched_config.json",
			Indent:        "    ",
			Format:        codec.FormatJSON.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes TOML text on top of Default and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()

	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that required names are set and enumerations are known.
func (c Config) Validate() error {
	var errs []error

	required := map[string]string{
		"input.dir":             c.Input.Dir,
		"input.model":           c.Input.Model,
		"input.config":          c.Input.Config,
		"input.patched_config":  c.Input.PatchedConfig,
		"output.dir":            c.Output.Dir,
		"output.config_xml":     c.Output.ConfigXML,
		"output.meta":           c.Output.Meta,
		"output.delta":          c.Output.Delta,
		"output.patched_config": c.Output.PatchedConfig,
	}

	for _, key := range sortedKeys(required) {
		if strings.TrimSpace(required[key]) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", key))
		}
	}

	if _, err := codec.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}

	if strings.Trim(c.Output.Indent, " \t") != "" {
		errs = append(errs, fmt.Errorf("output.indent must contain only spaces or tabs, got %q", c.Output.Indent))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// OutputFormat returns the parsed output format.
func (c Config) OutputFormat() codec.Format {
	f, err := codec.ParseFormat(c.Output.Format)
	if err != nil {
		return codec.FormatJSON
	}

	return f
}

// ModelPath is the path of the class model file.
func (c Config) ModelPath() string {
	return filepath.Join(c.Input.Dir, c.Input.Model)
}

// BasePath is the path of the base configuration snapshot.
func (c Config) BasePath() string {
	return filepath.Join(c.Input.Dir, c.Input.Config)
}

// PatchedPath is the path of the patched configuration snapshot.
func (c Config) PatchedPath() string {
	return filepath.Join(c.Input.Dir, c.Input.PatchedConfig)
}

// MetaFile is the metadata document name, with the extension of the output format.
func (c Config) MetaFile() string {
	return codec.ReplaceExtension(c.Output.Meta, c.OutputFormat())
}

// DeltaFile is the delta document name, with the extension of the output format.
func (c Config) DeltaFile() string {
	return codec.ReplaceExtension(c.Output.Delta, c.OutputFormat())
}

// PatchedConfigFile is the patched snapshot name, with the extension of the output format.
func (c Config) PatchedConfigFile() string {
	return codec.ReplaceExtension(c.Output.PatchedConfig, c.OutputFormat())
}
