// Package structure turns a class model into its two generated artifacts:
// the containment tree (serialized as indented XML) and the metadata
// catalogue.
//
// The containment tree starts at the root class. Every attribute becomes a
// leaf whose text is the attribute type, and every child reference becomes a
// nested subtree rendered from the referenced class. Attributes come before
// children. A class referenced from several places is rendered once per
// reference; subtrees are never shared.
//
// The metadata catalogue lists every class in declaration order, including
// classes the tree never reaches.
package structure
