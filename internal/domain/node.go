package domain

// DefaultRootID is the node conventionally preselected as the root when present.
const DefaultRootID = "中"

// Node represents a character in the graph
type Node struct {
	ID      string `json:"id" yaml:"id"`
	Meaning string `json:"meaning" yaml:"meaning"`
	Learned bool   `json:"learned" yaml:"learned"`
}

// NewNode creates a new node
func NewNode(id, meaning string) *Node {
	return &Node{
		ID:      id,
		Meaning: meaning,
	}
}

// Label returns the human-readable label used by the root selector
func (n Node) Label() string {
	if n.Meaning == "" {
		return n.ID
	}
	return n.ID + " " + n.Meaning
}
