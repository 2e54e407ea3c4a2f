package structure

import (
	"slices"

	"config-generator/internal/classmodel"
)

// Render builds the containment tree of m starting at its root class.
// With several root classes the first one in declaration order is used.
func Render(m *classmodel.Model) (*Node, error) {
	root, err := m.Root()
	if err != nil {
		return nil, err
	}

	r := renderer{model: m}

	return r.render(root)
}

// RenderXML renders m and serializes the tree with the given indent.
func RenderXML(m *classmodel.Model, indent string) ([]byte, error) {
	tree, err := Render(m)
	if err != nil {
		return nil, err
	}

	return tree.XML(indent)
}

type renderer struct {
	model *classmodel.Model
	// path holds the classes currently being rendered, root first.
	path []string
}

func (r *renderer) render(c *classmodel.Class) (*Node, error) {
	if slices.Contains(r.path, c.Name) {
		cycle := append(slices.Clone(r.path), c.Name)
		return nil, &CycleError{Path: cycle}
	}

	r.path = append(r.path, c.Name)
	defer func() { r.path = r.path[:len(r.path)-1] }()

	node := &Node{
		Name:     c.Name,
		Children: make([]*Node, 0, len(c.Attributes)+len(c.Children)),
	}

	for _, a := range c.Attributes {
		node.Children = append(node.Children, &Node{Name: a.Name, Text: a.Type})
	}

	for _, ref := range c.Children {
		child, ok := r.model.Class(ref.Name)
		if !ok {
			return nil, &UnknownClassError{Parent: c.Name, Child: ref.Name}
		}

		sub, err := r.render(child)
		if err != nil {
			return nil, err
		}

		node.Children = append(node.Children, sub)
	}

	return node, nil
}
