package domain

// ElementGroup distinguishes nodes from edges in an element collection
type ElementGroup string

const (
	GroupNodes ElementGroup = "nodes"
	GroupEdges ElementGroup = "edges"
)

// Element is a node or an edge in the shape the browser graph library consumes
type Element struct {
	Group ElementGroup `json:"group"`
	Data  ElementData  `json:"data"`
}

// ElementData carries the fields of either a node or an edge.
// Node elements fill Meaning/Learned, edge elements fill Source/Target.
type ElementData struct {
	ID      string `json:"id"`
	Meaning string `json:"meaning,omitempty"`
	Learned bool   `json:"learned,omitempty"`
	Source  string `json:"source,omitempty"`
	Target  string `json:"target,omitempty"`
}

// NodeElement wraps a node as an element
func NodeElement(n Node) Element {
	return Element{
		Group: GroupNodes,
		Data: ElementData{
			ID:      n.ID,
			Meaning: n.Meaning,
			Learned: n.Learned,
		},
	}
}

// EdgeElement wraps an edge as an element
func EdgeElement(e Edge) Element {
	return Element{
		Group: GroupEdges,
		Data: ElementData{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
		},
	}
}

// IsNode reports whether the element is a node
func (e Element) IsNode() bool {
	return e.Group == GroupNodes
}
