package classmodel

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"
)

// rootFlagTrue is the only isRoot value that marks a root class.
const rootFlagTrue = "true"

type xmlDocument struct {
	XMLName      xml.Name
	Classes      []xmlClass       `xml:"Class"`
	Aggregations []xmlAggregation `xml:"Aggregation"`
}

type xmlClass struct {
	Name          string         `xml:"name,attr"`
	IsRoot        string         `xml:"isRoot,attr"`
	Documentation string         `xml:"documentation,attr"`
	Attributes    []xmlAttribute `xml:"Attribute"`
}

type xmlAttribute struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type xmlAggregation struct {
	Source             string `xml:"source,attr"`
	Target             string `xml:"target,attr"`
	SourceMultiplicity string `xml:"sourceMultiplicity,attr"`
}

// LoadFile reads and parses a class model from the given path.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class model %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse builds a Model from XML. Only direct children of the document
// element named Class and Aggregation are read; anything else is ignored.
func Parse(data []byte) (*Model, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	m := newModel()

	for _, xc := range doc.Classes {
		c := &Class{
			Name:          xc.Name,
			IsRoot:        xc.IsRoot == rootFlagTrue,
			Documentation: xc.Documentation,
			Attributes:    make([]Attribute, 0, len(xc.Attributes)),
		}

		for _, xa := range xc.Attributes {
			c.Attributes = append(c.Attributes, Attribute{Name: xa.Name, Type: xa.Type})
		}

		m.addClass(c)
	}

	for _, xa := range doc.Aggregations {
		agg := Aggregation{
			Source:             xa.Source,
			Target:             xa.Target,
			SourceMultiplicity: xa.SourceMultiplicity,
		}
		m.aggregations = append(m.aggregations, agg)
		m.cardinality[agg.Source] = ParseMultiplicity(agg.SourceMultiplicity)

		target, ok := m.Class(agg.Target)
		if !ok {
			continue
		}

		target.Children = append(target.Children, ChildRef{
			Name:         agg.Source,
			Multiplicity: agg.SourceMultiplicity,
		})
	}

	return m, nil
}

// decodeDocument decodes the document element and then drains the stream so
// that syntax errors and trailing content after the root are reported too.
func decodeDocument(data []byte) (*xmlDocument, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var doc xmlDocument

	err := dec.Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("no document element")
		}

		return nil, malformed(dec, err)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}

		if err != nil {
			return nil, malformed(dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return nil, malformed(dec, fmt.Errorf("unexpected element %s after document end", t.Name.Local))
		case xml.CharData:
			if !isBlank(t) {
				return nil, malformed(dec, errors.New("unexpected character data after document end"))
			}
		}
	}
}

func malformed(dec *xml.Decoder, err error) error {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		return &MalformedInputError{Line: syntax.Line, Err: errors.New(syntax.Msg)}
	}

	line, _ := dec.InputPos()

	return &MalformedInputError{Line: line, Err: err}
}

func isBlank(data []byte) bool {
	for _, r := range string(data) {
		if r != '\uFEFF' && !unicode.IsSpace(r) {
			return false
		}
	}

	return true
}
