package delta

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"config-generator/internal/codec"
)

func TestSnapshotBasics(t *testing.T) {
	var s Snapshot

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("a"))

	s.Set("b", 1)
	s.Set("a", "x")
	s.Set("b", 2)

	assert.Equal(t, []string{"b", "a"}, s.Keys())

	v, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(2), v)

	assert.True(t, s.Delete("b"))
	assert.False(t, s.Delete("b"))
	assert.Equal(t, []Entry{{Key: "a", Value: "x"}}, s.Entries())
}

func TestNewSnapshotRepeatedKey(t *testing.T) {
	s := NewSnapshot(Entry{Key: "a", Value: 1}, Entry{Key: "b", Value: 2}, Entry{Key: "a", Value: 3})

	assert.Equal(t, []string{"a", "b"}, s.Keys())

	v, _ := s.Get("a")
	assert.Equal(t, int64(3), v)
}

func TestNilSnapshotReads(t *testing.T) {
	var s *Snapshot

	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Keys())
	assert.Empty(t, s.Entries())
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Clone().Len())
	assert.True(t, s.Equal(NewSnapshot()))
}

func TestSnapshotEqualIgnoresOrder(t *testing.T) {
	a := snap("x", 1, "y", 2)
	b := snap("y", 2, "x", 1)

	assert.True(t, a.Equal(b))

	b.Set("z", 3)
	assert.False(t, a.Equal(b))

	c := snap("x", 1, "q", 2)
	assert.False(t, a.Equal(c))
}

func TestSnapshotJSONKeepsOrder(t *testing.T) {
	src := `{"zeta": 1, "alpha": {"b": 1, "a": 2}, "mid": [1, "x", null]}`

	s, err := DecodeSnapshot(codec.FormatJSON, []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, s.Keys())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":{"a":2,"b":1},"mid":[1,"x",null]}`, string(data))
}

func TestSnapshotJSONNoHTMLEscape(t *testing.T) {
	data, err := codec.Marshal(codec.FormatJSON, snap("html", "<b>&"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"html\": \"<b>&\"\n}\n", string(data))
}

func TestSnapshotJSONIndented(t *testing.T) {
	s := snap("b", 3, "c", 4)

	data, err := codec.Marshal(codec.FormatJSON, s)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"b\": 3,\n    \"c\": 4\n}\n", string(data))
}

func TestSnapshotJSONDuplicateKey(t *testing.T) {
	s, err := DecodeSnapshot(codec.FormatJSON, []byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, s.Keys())

	v, _ := s.Get("a")
	assert.Equal(t, int64(3), v)
}

func TestSnapshotYAMLKeepsOrder(t *testing.T) {
	src := "zeta: 1\nalpha:\n  b: true\nmid: [1, x]\n"

	s, err := DecodeSnapshot(codec.FormatYAML, []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, s.Keys())

	v, _ := s.Get("zeta")
	assert.Equal(t, int64(1), v)

	data, err := yaml.Marshal(s)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "zeta: 1\nalpha:\n"), text)
	assert.Less(t, strings.Index(text, "alpha:"), strings.Index(text, "mid:"))
}

func TestSnapshotFormatsAgree(t *testing.T) {
	fromJSON, err := DecodeSnapshot(codec.FormatJSON, []byte(`{"a": 1, "b": [1, 2], "c": {"d": "e"}}`))
	require.NoError(t, err)

	fromYAML, err := DecodeSnapshot(codec.FormatYAML, []byte("a: 1\nb: [1, 2]\nc: {d: e}\n"))
	require.NoError(t, err)

	assert.True(t, fromJSON.Equal(fromYAML))
	assert.True(t, Generate(fromJSON, fromYAML).IsEmpty())
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := snap("zeta", 1, "alpha", map[string]any{"k": []any{1, "two"}}, "flag", true, "nothing", nil, "pi", 3.5)

	for _, f := range []codec.Format{codec.FormatJSON, codec.FormatYAML, codec.FormatMsgpack} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := codec.Marshal(f, s)
			require.NoError(t, err)

			out, err := DecodeSnapshot(f, data)
			require.NoError(t, err)

			assert.Equal(t, s.Keys(), out.Keys())
			assert.True(t, s.Equal(out), "got %v", out.Entries())
		})
	}
}

func TestDecodeSnapshotErrors(t *testing.T) {
	tests := []struct {
		name   string
		format codec.Format
		data   string
	}{
		{name: "json syntax", format: codec.FormatJSON, data: `{"a": `},
		{name: "json array", format: codec.FormatJSON, data: `[1, 2]`},
		{name: "json scalar", format: codec.FormatJSON, data: `42`},
		{name: "yaml sequence", format: codec.FormatYAML, data: "- a\n- b\n"},
		{name: "yaml syntax", format: codec.FormatYAML, data: "a: [1\n"},
		{name: "msgpack array", format: codec.FormatMsgpack, data: "\x92\x01\x02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot(tt.format, []byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
		})
	}
}
