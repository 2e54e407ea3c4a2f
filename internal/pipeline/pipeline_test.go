package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-generator/internal/codec"
	"config-generator/internal/config"
	"config-generator/internal/delta"
	"config-generator/internal/diagnostic"
	"config-generator/internal/logging"
	"config-generator/internal/structure"
)

const model = `<?xml version="1.0" encoding="UTF-8"?>
<XMI>
    <Class name="BTS" isRoot="true" documentation="Base transceiver station">
        <Attribute name="id" type="uint32"/>
    </Class>
    <Class name="MGMT" isRoot="false" documentation="Management unit">
        <Attribute name="hostname" type="string"/>
    </Class>
    <Aggregation source="MGMT" target="BTS" sourceMultiplicity="1..2"/>
</XMI>`

const modelWithWarning = `<XMI>
    <Class name="BTS" isRoot="true" documentation=""/>
    <Aggregation source="BTS" target="BTZ" sourceMultiplicity="1"/>
</XMI>`

const cyclicModel = `<XMI>
    <Class name="A" isRoot="true" documentation=""/>
    <Class name="B" isRoot="false" documentation=""/>
    <Aggregation source="B" target="A" sourceMultiplicity="1"/>
    <Aggregation source="A" target="B" sourceMultiplicity="1"/>
</XMI>`

func setup(t *testing.T, modelSrc string) config.Config {
	t.Helper()

	dir := t.TempDir()
	in := filepath.Join(dir, "input")
	require.NoError(t, os.MkdirAll(in, 0o755))

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte(content), 0o600))
	}

	write("impulse_test_input.xml", modelSrc)
	write("config.json", `{"a": 1, "b": 2}`)
	write("patched_config.json", `{"b": 3, "c": 4}`)

	cfg := config.Default()
	cfg.Input.Dir = in
	cfg.Output.Dir = filepath.Join(dir, "out")

	return cfg
}

func testContext(buf *bytes.Buffer) context.Context {
	return logging.WithLogger(context.Background(), logging.New("debug", "text", buf))
}

func TestRun(t *testing.T) {
	cfg := setup(t, model)

	var logs bytes.Buffer

	res, err := Run(testContext(&logs), cfg)
	require.NoError(t, err)

	require.Len(t, res.Files, 4)
	assert.Equal(t, "config.xml", res.Files[0].Filename)
	assert.Equal(t, "meta.json", res.Files[1].Filename)
	assert.Equal(t, "delta.json", res.Files[2].Filename)
	assert.Equal(t, "res_patched_config.json", res.Files[3].Filename)
	assert.Len(t, res.Written, 4)
	assert.True(t, res.Diagnostics.IsValid())
	assert.Equal(t, "+1 -1 ~1", res.Delta.Summary())

	xmlData, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "config.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<BTS>\n    <id>uint32</id>\n    <MGMT>\n        <hostname>string</hostname>\n    </MGMT>\n</BTS>", string(xmlData))

	var meta []structure.ClassMeta
	metaData, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "meta.json"))
	require.NoError(t, err)
	require.NoError(t, codec.Unmarshal(codec.FormatJSON, metaData, &meta))
	require.Len(t, meta, 2)
	assert.Equal(t, "BTS", meta[0].Class)
	assert.Nil(t, meta[0].Cardinality)
	require.NotNil(t, meta[1].Cardinality)
	assert.Equal(t, "2", meta[1].Max)
	assert.Equal(t, "1", meta[1].Min)

	d, err := delta.LoadDelta(filepath.Join(cfg.Output.Dir, "delta.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, d.Deletions)

	patched, err := delta.LoadSnapshot(filepath.Join(cfg.Output.Dir, "res_patched_config.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, patched.Keys())

	assert.Contains(t, logs.String(), "generated delta")
	assert.Contains(t, logs.String(), "wrote file")
	assert.Contains(t, logs.String(), "nodes=4")
}

func TestBuildFormats(t *testing.T) {
	tests := []struct {
		format string
		names  []string
	}{
		{"json", []string{"config.xml", "meta.json", "delta.json", "res_patched_config.json"}},
		{"yaml", []string{"config.xml", "meta.yaml", "delta.yaml", "res_patched_config.yaml"}},
		{"msgpack", []string{"config.xml", "meta.msgpack", "delta.msgpack", "res_patched_config.msgpack"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := setup(t, model)
			cfg.Output.Format = tt.format

			res, err := Build(context.Background(), cfg)
			require.NoError(t, err)
			assert.Empty(t, res.Written)

			names := make([]string, len(res.Files))
			for i, f := range res.Files {
				names[i] = f.Filename
			}

			assert.Equal(t, tt.names, names)

			format, err := codec.ParseFormat(tt.format)
			require.NoError(t, err)

			d, err := delta.DecodeDelta(format, res.Files[2].Content)
			require.NoError(t, err)
			assert.Equal(t, "+1 -1 ~1", d.Summary())

			_, err = os.Stat(cfg.Output.Dir)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestBuildStrict(t *testing.T) {
	cfg := setup(t, modelWithWarning)

	res, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, res.Diagnostics.HasWarnings())

	cfg.Validation.Strict = true

	_, err = Build(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "0 errors, 1 warnings: unknown_aggregation_target")
}

func TestBuildErrors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		cfg := setup(t, cyclicModel)

		_, err := Build(context.Background(), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, structure.ErrContainmentCycle)
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := setup(t, model)
		cfg.Input.Model = "absent.xml"

		_, err := Build(context.Background(), cfg)
		require.Error(t, err)
	})

	t.Run("malformed snapshot", func(t *testing.T) {
		cfg := setup(t, model)
		require.NoError(t, os.WriteFile(cfg.PatchedPath(), []byte("[1, 2]"), 0o600))

		_, err := Build(context.Background(), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, delta.ErrMalformedSnapshot)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := setup(t, model)
		cfg.Output.Format = "toml"

		_, err := Build(context.Background(), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, codec.ErrUnknownFormat)
	})

	t.Run("canceled", func(t *testing.T) {
		cfg := setup(t, model)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Build(ctx, cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestLogDiagnostics(t *testing.T) {
	var buf bytes.Buffer

	diags := &diagnostic.Diagnostics{}
	diags.AddError("no_root", "no root class", "", "")
	diags.Add(diagnostic.Diagnostic{
		Severity:    diagnostic.DiagnosticWarning,
		Code:        "unknown_aggregation_target",
		Message:     "target missing",
		Class:       "BTS",
		Element:     "BTZ",
		Suggestions: []string{"BTS"},
	})

	LogDiagnostics(logging.New("debug", "text", &buf), diags)
	LogDiagnostics(logging.New("debug", "text", &buf), nil)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "code=no_root")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "element=BTZ")
	assert.Contains(t, out, "suggestions=[BTS]")
}
