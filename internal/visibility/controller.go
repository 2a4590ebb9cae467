// Package visibility decides which part of a character graph is on screen.
//
// A Controller owns a root selection and an expansion accumulator. Every change
// restores the full element set into the engine, keeps the root, its transitive
// successors and the neighborhood of every expanded node, removes the
// rest and asks the engine for a fresh layout. The visible set is always rebuilt
// from the full set, never patched.
package visibility

import (
	"errors"

	"hanzimap/internal/engine"
	"hanzimap/internal/metrics"
)

// ErrEmptyRoot is returned when SetRoot is called without a node ID
var ErrEmptyRoot = errors.New("root node id required")

// Engine is the part of the graph engine the controller drives
type Engine interface {
	Restore()
	Elements() engine.Collection
	GetElementByID(id string) engine.Collection
	Successors(c engine.Collection) engine.Collection
	Neighborhood(c engine.Collection) engine.Collection
	Remove(c engine.Collection)
	Layout(opts engine.LayoutOptions)
}

// Controller maintains the visible subset of a graph.
// It is not safe for concurrent use; callers feed it one event at a time.
type Controller struct {
	eng        Engine
	layout     engine.LayoutOptions
	root       string
	expansions []string
	visible    engine.Collection
	removed    engine.Collection
}

// New creates a controller over an engine holding the full element set
func New(eng Engine, layout engine.LayoutOptions) *Controller {
	return &Controller{
		eng:    eng,
		layout: layout,
	}
}

// SetRoot anchors the view at nodeID, drops all expansions and recomputes.
// An ID missing from the graph is accepted and leaves nothing visible.
func (c *Controller) SetRoot(nodeID string) error {
	if nodeID == "" {
		return ErrEmptyRoot
	}
	c.root = nodeID
	c.expansions = nil
	c.recompute("root")
	return nil
}

// Expand adds the neighborhood of nodeID to the view and recomputes
func (c *Controller) Expand(nodeID string) {
	c.expansions = append(c.expansions, nodeID)
	c.recompute("expand")
}

// Recompute rebuilds the visible set from the full element set
func (c *Controller) Recompute() {
	c.recompute("manual")
}

func (c *Controller) recompute(cause string) {
	c.eng.Restore()
	full := c.eng.Elements()

	root := c.eng.GetElementByID(c.root)
	keep := c.eng.Successors(root).Union(root)
	for _, id := range c.expansions {
		keep = keep.Union(c.neighborhood(id))
	}

	c.eng.Remove(full.Difference(keep))

	// Read back what survived: removing a node takes its edges with it.
	c.visible = c.eng.Elements()
	c.removed = full.Difference(c.visible)

	metrics.Recomputations.WithLabelValues(cause).Inc()
	metrics.VisibleElements.Observe(float64(c.visible.Len()))

	c.eng.Layout(c.layout)
}

// neighborhood is the tapped node, its direct predecessors and successors and
// the connecting edges. A node without neighbors contributes nothing.
func (c *Controller) neighborhood(id string) engine.Collection {
	node := c.eng.GetElementByID(id)
	around := c.eng.Neighborhood(node)
	if around.Empty() {
		return around
	}
	return around.Union(node)
}

// Root returns the current root selection
func (c *Controller) Root() string {
	return c.root
}

// Expansions returns the expanded node IDs in tap order
func (c *Controller) Expansions() []string {
	out := make([]string, len(c.expansions))
	copy(out, c.expansions)
	return out
}

// Visible returns the elements left after the last recomputation
func (c *Controller) Visible() engine.Collection {
	return c.visible
}

// Removed returns the elements hidden by the last recomputation
func (c *Controller) Removed() engine.Collection {
	return c.removed
}
