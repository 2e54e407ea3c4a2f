package structure

import (
	"github.com/vmihailenco/msgpack/v5"

	"config-generator/internal/classmodel"
)

// ClassParameterType is the parameter type given to contained classes.
const ClassParameterType = "class"

// Parameter is one field of a class in the metadata catalogue.
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Cardinality carries the bounds of a contained class.
type Cardinality struct {
	Max string `json:"max" yaml:"max"`
	Min string `json:"min" yaml:"min"`
}

// ClassMeta is one entry of the metadata catalogue.
// Cardinality is nil for the root and for classes that are never contained,
// and max/min are then left out of every encoding.
type ClassMeta struct {
	Class         string `json:"class" yaml:"class"`
	Documentation string `json:"documentation" yaml:"documentation"`
	IsRoot        bool   `json:"isRoot" yaml:"isRoot"`

	*Cardinality `yaml:",inline"`

	Parameters []Parameter `json:"parameters" yaml:"parameters"`
}

// EncodeMsgpack writes the entry as a map with the same keys as its JSON form,
// leaving max and min out when there is no cardinality.
func (c ClassMeta) EncodeMsgpack(enc *msgpack.Encoder) error {
	n := 4
	if c.Cardinality != nil {
		n += 2
	}

	if err := enc.EncodeMapLen(n); err != nil {
		return err
	}

	if err := encodeStringField(enc, "class", c.Class); err != nil {
		return err
	}

	if err := encodeStringField(enc, "documentation", c.Documentation); err != nil {
		return err
	}

	if err := enc.EncodeString("isRoot"); err != nil {
		return err
	}

	if err := enc.EncodeBool(c.IsRoot); err != nil {
		return err
	}

	if c.Cardinality != nil {
		if err := encodeStringField(enc, "max", c.Max); err != nil {
			return err
		}

		if err := encodeStringField(enc, "min", c.Min); err != nil {
			return err
		}
	}

	if err := enc.EncodeString("parameters"); err != nil {
		return err
	}

	return enc.Encode(c.Parameters)
}

func encodeStringField(enc *msgpack.Encoder, key, value string) error {
	if err := enc.EncodeString(key); err != nil {
		return err
	}

	return enc.EncodeString(value)
}

// Metadata lists every class of m in declaration order.
// It fails with ErrNoRootFound when m has no root class.
func Metadata(m *classmodel.Model) ([]ClassMeta, error) {
	if _, err := m.Root(); err != nil {
		return nil, err
	}

	classes := m.Classes()
	out := make([]ClassMeta, 0, len(classes))

	for _, c := range classes {
		entry := ClassMeta{
			Class:         c.Name,
			Documentation: c.Documentation,
			IsRoot:        c.IsRoot,
			Parameters:    make([]Parameter, 0, len(c.Attributes)+len(c.Children)),
		}

		if mult, ok := m.Cardinality(c.Name); ok && !c.IsRoot {
			entry.Cardinality = &Cardinality{Max: mult.Max, Min: mult.Min}
		}

		for _, a := range c.Attributes {
			entry.Parameters = append(entry.Parameters, Parameter{Name: a.Name, Type: a.Type})
		}

		for _, ch := range c.Children {
			entry.Parameters = append(entry.Parameters, Parameter{Name: ch.Name, Type: ClassParameterType})
		}

		out = append(out, entry)
	}

	return out, nil
}
