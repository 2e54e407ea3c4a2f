package classmodel

import "config-generator/internal/common"

// Attribute is a named, typed field of a class.
type Attribute struct {
	Name string
	Type string
}

// ChildRef is a contained class together with its multiplicity inside the parent.
type ChildRef struct {
	Name         string
	Multiplicity string
}

// Class describes one class of the model.
type Class struct {
	Name          string
	IsRoot        bool
	Documentation string
	// Attributes keep declaration order.
	Attributes []Attribute
	// Children keep aggregation declaration order.
	Children []ChildRef
}

// Aggregation is a raw "target contains source" record as read from the input.
type Aggregation struct {
	Source             string
	Target             string
	SourceMultiplicity string
}

// Model is the parsed class graph.
type Model struct {
	classes      []*Class
	index        map[string]int
	aggregations []Aggregation
	cardinality  map[string]Multiplicity
}

func newModel() *Model {
	return &Model{
		index:       make(map[string]int),
		cardinality: make(map[string]Multiplicity),
	}
}

// addClass registers c. A repeated name replaces the earlier class in place.
func (m *Model) addClass(c *Class) {
	if i, ok := m.index[c.Name]; ok {
		m.classes[i] = c
		return
	}

	m.index[c.Name] = len(m.classes)
	m.classes = append(m.classes, c)
}

// Class looks a class up by name.
func (m *Model) Class(name string) (*Class, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}

	return m.classes[i], true
}

// Classes returns all classes in declaration order.
// The returned slice is a copy; the classes themselves must not be modified.
func (m *Model) Classes() []*Class {
	out := make([]*Class, len(m.classes))
	copy(out, m.classes)

	return out
}

// Names returns class names in declaration order.
func (m *Model) Names() []string {
	names := make([]string, len(m.classes))
	for i, c := range m.classes {
		names[i] = c.Name
	}

	return names
}

// Len returns the number of classes.
func (m *Model) Len() int {
	return len(m.classes)
}

// Roots returns every class flagged as root, in declaration order.
func (m *Model) Roots() []*Class {
	var roots []*Class

	for _, c := range m.classes {
		if c.IsRoot {
			roots = append(roots, c)
		}
	}

	return roots
}

// Root returns the first root class in declaration order.
// It fails with ErrNoRootFound when no class is flagged as root.
func (m *Model) Root() (*Class, error) {
	root, ok := common.First(m.Roots())
	if !ok {
		return nil, ErrNoRootFound
	}

	return root, nil
}

// Cardinality returns the multiplicity a class has as an aggregation source.
// When a class is the source of several aggregations the last one wins.
func (m *Model) Cardinality(name string) (Multiplicity, bool) {
	mult, ok := m.cardinality[name]
	return mult, ok
}
