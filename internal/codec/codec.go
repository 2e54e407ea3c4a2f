// Package codec selects and applies the document formats the generator reads
// and writes: JSON, YAML and MessagePack.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"config-generator/internal/common"
)

// ErrUnknownFormat is returned for format names or file extensions that are not supported.
var ErrUnknownFormat = errors.New("unknown document format")

// Indent is the indentation used by the text formats.
const Indent = "    "

// structTag names the struct tag MessagePack reads field names from, so that
// one set of json tags drives every format.
const structTag = "json"

// Format is a document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatMsgpack
)

// String returns the format name as accepted by ParseFormat.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return common.UnknownStr
	}
}

// Extension returns the preferred file extension, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatMsgpack:
		return ".msgpack"
	default:
		return ".json"
	}
}

// ParseFormat converts a format name into a Format. Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("%w: cannot infer from %q", ErrUnknownFormat, path)
	}
}

// ReplaceExtension swaps the extension of path for the one of f.
func ReplaceExtension(path string, f Format) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + f.Extension()
}

// Marshal encodes v. The text formats are indented with Indent; JSON output
// does not escape HTML characters and ends with a newline.
func Marshal(f Format, v any) ([]byte, error) {
	var buf bytes.Buffer

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", Indent)

		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}

	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(len(Indent))

		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}

	case FormatMsgpack:
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag(structTag)

		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encoding msgpack: %w", err)
		}

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes data into v. JSON numbers decoded into interface values
// are json.Number, so large integers keep their exact value.
func Unmarshal(f Format, data []byte, v any) error {
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("decoding json: %w", err)
		}

		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return errors.New("decoding json: unexpected data after top-level value")
		}

	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decoding yaml: %w", err)
		}

	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag(structTag)

		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("decoding msgpack: %w", err)
		}

	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}

	return nil
}
