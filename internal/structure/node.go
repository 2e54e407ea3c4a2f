package structure

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// DefaultIndent is the per-level indentation of the serialized tree.
const DefaultIndent = "    "

// Node is one element of the containment tree. A leaf carries an attribute
// type in Text; a class node carries its attributes and nested classes in
// Children.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	total := 1
	for _, ch := range n.Children {
		total += ch.Count()
	}

	return total
}

// MarshalXML writes the node as an element named after it.
func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name}}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if n.Text != "" {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}

	for _, ch := range n.Children {
		if err := ch.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}

// XML serializes the subtree with the given per-level indent.
// An empty indent produces a single line.
func (n *Node) XML(indent string) ([]byte, error) {
	var buf bytes.Buffer

	enc := xml.NewEncoder(&buf)
	enc.Indent("", indent)

	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", n.Name, err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", n.Name, err)
	}

	return buf.Bytes(), nil
}
