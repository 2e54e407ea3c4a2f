package delta

import (
	"errors"
	"fmt"
	"os"

	"config-generator/internal/codec"
)

var (
	// ErrMalformedSnapshot is returned for snapshot documents that cannot be decoded.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	// ErrMalformedDelta is returned for delta documents that cannot be decoded.
	ErrMalformedDelta = errors.New("malformed delta")
)

// DecodeSnapshot decodes a snapshot document in the given format.
func DecodeSnapshot(f codec.Format, data []byte) (*Snapshot, error) {
	s := NewSnapshot()
	if err := codec.Unmarshal(f, data, s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}

	return s, nil
}

// DecodeDelta decodes a delta document in the given format.
func DecodeDelta(f codec.Format, data []byte) (*Delta, error) {
	var d Delta
	if err := codec.Unmarshal(f, data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDelta, err)
	}

	d.normalize()

	return &d, nil
}

// LoadSnapshot reads a snapshot file; the format follows the file extension.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	s, err := DecodeSnapshot(f, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// LoadDelta reads a delta file; the format follows the file extension.
func LoadDelta(path string) (*Delta, error) {
	f, data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	d, err := DecodeDelta(f, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

func readDocument(path string) (codec.Format, []byte, error) {
	f, err := codec.FormatFromPath(path)
	if err != nil {
		return 0, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return f, data, nil
}
