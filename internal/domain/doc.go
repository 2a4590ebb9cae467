// Package domain defines the core types of the hanzimap character graph explorer.
//
// The package holds the entities read from a graph data document and the element
// view handed to the browser graph library.
//
// # Core Types
//
// Node is a character with its meaning and an informational learned flag.
//
// Edge is a directed "derives/contains" relationship between two nodes.
//
// Document is the ordered collection of nodes and edges as loaded. Once normalized
// it is the Full Element Set for a session and is never mutated.
//
// Element is a node or an edge addressed by element id, in the {group, data} shape
// the browser renderer consumes.
//
// # Design Principles
//
// - Immutable value objects once loaded
// - No database or external dependencies
// - Document order is significant and preserved everywhere
package domain
