package domain

import "fmt"

// Document is the graph data document: nodes and directed edges in source order
type Document struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
	}
}

// AddNode adds a node to the document
func (d *Document) AddNode(node Node) {
	d.Nodes = append(d.Nodes, node)
}

// AddEdge adds an edge to the document
func (d *Document) AddEdge(edge Edge) {
	d.Edges = append(d.Edges, edge)
}

// Normalize makes the document safe to load into a graph engine and returns
// a warning for every entry it had to drop.
//
// Nodes with an empty or repeated ID are dropped (first occurrence wins).
// Edges referencing unknown nodes are dropped. Edges without an ID get a
// generated one; an edge ID already taken by another element gets an ordinal
// suffix, so parallel edges survive.
func (d *Document) Normalize() []string {
	var warnings []string

	nodeIDs := make(map[string]bool, len(d.Nodes))
	nodes := make([]Node, 0, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			warnings = append(warnings, fmt.Sprintf("node #%d has no id, dropped", i))
			continue
		}
		if nodeIDs[n.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate node %q, keeping first", n.ID))
			continue
		}
		nodeIDs[n.ID] = true
		nodes = append(nodes, n)
	}

	used := make(map[string]bool, len(nodes)+len(d.Edges))
	for id := range nodeIDs {
		used[id] = true
	}
	suffix := make(map[string]int)
	edges := make([]Edge, 0, len(d.Edges))
	for i, e := range d.Edges {
		if !nodeIDs[e.Source] || !nodeIDs[e.Target] {
			warnings = append(warnings, fmt.Sprintf("edge #%d %q->%q references unknown node, dropped", i, e.Source, e.Target))
			continue
		}
		if e.ID == "" {
			e.ID = e.GenerateID()
		}
		if used[e.ID] {
			base := e.ID
			for used[e.ID] {
				suffix[base]++
				e.ID = fmt.Sprintf("%s-%d", base, suffix[base])
			}
		}
		used[e.ID] = true
		edges = append(edges, e)
	}

	d.Nodes = nodes
	d.Edges = edges
	return warnings
}

// Elements returns all nodes followed by all edges, each in document order
func (d *Document) Elements() []Element {
	elements := make([]Element, 0, len(d.Nodes)+len(d.Edges))
	for _, n := range d.Nodes {
		elements = append(elements, NodeElement(n))
	}
	for _, e := range d.Edges {
		elements = append(elements, EdgeElement(e))
	}
	return elements
}

// Node returns the node with the given ID
func (d *Document) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// OutDegree returns the number of outgoing edges per node ID
func (d *Document) OutDegree() map[string]int {
	degree := make(map[string]int, len(d.Nodes))
	for _, e := range d.Edges {
		degree[e.Source]++
	}
	return degree
}
