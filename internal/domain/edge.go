package domain

import (
	"crypto/sha256"
	"fmt"
)

// Edge represents a directed derives/contains relationship
type Edge struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// NewEdge creates a new edge with a generated ID
func NewEdge(source, target string) *Edge {
	edge := &Edge{
		Source: source,
		Target: target,
	}
	edge.ID = edge.GenerateID()
	return edge
}

// GenerateID creates a deterministic ID for the edge based on its endpoints.
// Direction matters: A->B and B->A get different IDs.
func (e *Edge) GenerateID() string {
	key := fmt.Sprintf("%s->%s", e.Source, e.Target)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("e%x", hash[:8])
}

// IsLoop reports whether the edge starts and ends on the same node
func (e *Edge) IsLoop() bool {
	return e.Source == e.Target
}
