package delta

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Entry is one key-value pair of a snapshot.
type Entry struct {
	Key   string
	Value any
}

// Snapshot is a flat, insertion-ordered configuration mapping.
// The zero value is an empty snapshot ready to use.
type Snapshot struct {
	keys   []string
	values map[string]any
}

// NewSnapshot builds a snapshot from entries in order. A repeated key keeps
// its first position and takes the last value.
func NewSnapshot(entries ...Entry) *Snapshot {
	s := &Snapshot{values: make(map[string]any, len(entries))}
	for _, e := range entries {
		s.Set(e.Key, e.Value)
	}

	return s
}

// Len returns the number of keys.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}

	return len(s.keys)
}

// Keys returns the keys in order.
func (s *Snapshot) Keys() []string {
	if s == nil {
		return nil
	}

	return slices.Clone(s.keys)
}

// Entries returns the key-value pairs in order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, 0, s.Len())
	for _, k := range s.Keys() {
		out = append(out, Entry{Key: k, Value: s.values[k]})
	}

	return out
}

// Has reports whether key is present.
func (s *Snapshot) Has(key string) bool {
	if s == nil {
		return false
	}

	_, ok := s.values[key]

	return ok
}

// Get returns the value stored under key.
func (s *Snapshot) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}

	v, ok := s.values[key]

	return v, ok
}

// Set stores a normalized copy of value. An existing key keeps its position;
// a new key is appended.
func (s *Snapshot) Set(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}

	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}

	s.values[key] = normalizeValue(value)
}

// Delete removes key and reports whether it was present.
func (s *Snapshot) Delete(key string) bool {
	if !s.Has(key) {
		return false
	}

	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })

	return true
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		keys:   s.Keys(),
		values: make(map[string]any, s.Len()),
	}

	for _, k := range out.keys {
		out.values[k] = normalizeValue(s.values[k])
	}

	return out
}

// Equal reports whether both snapshots hold the same keys with structurally
// equal values. Key order is ignored.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s.Len() != other.Len() {
		return false
	}

	for _, k := range s.Keys() {
		ov, ok := other.Get(k)
		if !ok || !ValuesEqual(s.values[k], ov) {
			return false
		}
	}

	return true
}

var errNotObject = errors.New("snapshot must be an object")

// MarshalJSON writes the snapshot as an object in key order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeJSONValue(&buf, k); err != nil {
			return nil, err
		}

		buf.WriteByte(':')

		if err := writeJSONValue(&buf, s.values[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// writeJSONValue encodes v without HTML escaping and without the trailing
// newline json.Encoder adds.
func writeJSONValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer

	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return err
	}

	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))

	return nil
}

// UnmarshalJSON reads a JSON object keeping its key order.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errNotObject
	}

	*s = Snapshot{values: make(map[string]any)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		s.Set(key, v)
	}

	_, err = dec.Token()

	return err
}

// MarshalYAML writes the snapshot as a mapping in key order.
func (s Snapshot) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range s.keys {
		var val yaml.Node
		if err := val.Encode(s.values[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}

	return node, nil
}

// UnmarshalYAML reads a YAML mapping keeping its key order.
func (s *Snapshot) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}

	if node.Kind != yaml.MappingNode {
		return errNotObject
	}

	*s = Snapshot{values: make(map[string]any, len(node.Content)/2)}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var v any
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", keyNode.Value, err)
		}

		s.Set(keyNode.Value, v)
	}

	return nil
}

// EncodeMsgpack writes the snapshot as a MessagePack map in key order.
func (s Snapshot) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(s.keys)); err != nil {
		return err
	}

	for _, k := range s.keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}

		if err := enc.Encode(s.values[k]); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}

	return nil
}

// DecodeMsgpack reads a MessagePack map keeping its key order.
func (s *Snapshot) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}

	if n < 0 {
		return errNotObject
	}

	*s = Snapshot{values: make(map[string]any, n)}

	for range n {
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}

		v, err := dec.DecodeInterface()
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		s.Set(key, v)
	}

	return nil
}
