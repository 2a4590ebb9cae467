package engine

import (
	"log"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/traverse"

	"hanzimap/internal/domain"
)

// Graph is a mutable working graph restorable from an immutable snapshot.
//
// Node i of the snapshot is gonum node i; edge j is the line with UID j.
// A Graph is not safe for concurrent use.
type Graph struct {
	snapshot *domain.Document

	nodeIDs  []string         // gonum node ID -> element ID
	nodeNums map[string]int64 // element ID -> gonum node ID
	edgeNums map[string]int64 // element ID -> line UID

	working  *multi.DirectedGraph
	renderer Renderer
	onTap    []func(id string)
}

// New creates a graph engine over a normalized document.
// The working graph starts out holding every element.
func New(doc *domain.Document, renderer Renderer) *Graph {
	if doc == nil {
		doc = domain.NewDocument()
	}
	g := &Graph{
		snapshot: doc,
		nodeIDs:  make([]string, len(doc.Nodes)),
		nodeNums: make(map[string]int64, len(doc.Nodes)),
		edgeNums: make(map[string]int64, len(doc.Edges)),
		renderer: renderer,
	}
	for i, n := range doc.Nodes {
		g.nodeIDs[i] = n.ID
		g.nodeNums[n.ID] = int64(i)
	}
	for i, e := range doc.Edges {
		g.edgeNums[e.ID] = int64(i)
	}
	g.Restore()
	return g
}

// Snapshot returns the document the graph restores from
func (g *Graph) Snapshot() *domain.Document {
	return g.snapshot
}

// Restore discards the working graph and rebuilds it from the snapshot
func (g *Graph) Restore() {
	g.working = multi.NewDirectedGraph()
	g.Add(g.All())
}

// All returns every element of the snapshot
func (g *Graph) All() Collection {
	ids := make([]string, 0, len(g.snapshot.Nodes)+len(g.snapshot.Edges))
	for _, n := range g.snapshot.Nodes {
		ids = append(ids, n.ID)
	}
	for _, e := range g.snapshot.Edges {
		ids = append(ids, e.ID)
	}
	return NewCollection(ids...)
}

// Add copies the snapshot elements in c into the working graph.
// Edges are only added when both endpoints are present.
func (g *Graph) Add(c Collection) {
	for _, id := range c.IDs() {
		num, ok := g.nodeNums[id]
		if !ok || g.working.Node(num) != nil {
			continue
		}
		g.working.AddNode(multi.Node(num))
	}
	for _, id := range c.IDs() {
		uid, ok := g.edgeNums[id]
		if !ok {
			continue
		}
		e := g.snapshot.Edges[uid]
		from, to := g.nodeNums[e.Source], g.nodeNums[e.Target]
		if g.working.Node(from) == nil || g.working.Node(to) == nil || g.hasLine(from, to, uid) {
			continue
		}
		g.working.SetLine(multi.Line{F: multi.Node(from), T: multi.Node(to), UID: uid})
	}
}

// Remove deletes the elements in c from the working graph.
// Removing a node also removes its incident edges.
func (g *Graph) Remove(c Collection) {
	for _, id := range c.IDs() {
		if uid, ok := g.edgeNums[id]; ok {
			e := g.snapshot.Edges[uid]
			g.working.RemoveLine(g.nodeNums[e.Source], g.nodeNums[e.Target], uid)
		}
	}
	for _, id := range c.IDs() {
		if num, ok := g.nodeNums[id]; ok {
			g.working.RemoveNode(num)
		}
	}
}

// Elements returns the elements currently in the working graph
func (g *Graph) Elements() Collection {
	ids := make([]string, 0, len(g.snapshot.Nodes)+len(g.snapshot.Edges))
	nodes := g.working.Nodes()
	for nodes.Next() {
		ids = append(ids, g.nodeIDs[nodes.Node().ID()])
	}
	for uid, e := range g.snapshot.Edges {
		if g.hasLine(g.nodeNums[e.Source], g.nodeNums[e.Target], int64(uid)) {
			ids = append(ids, e.ID)
		}
	}
	return NewCollection(ids...)
}

// ElementsOf materializes c in document order: nodes first, then edges
func (g *Graph) ElementsOf(c Collection) []domain.Element {
	elements := make([]domain.Element, 0, c.Len())
	for _, n := range g.snapshot.Nodes {
		if c.Contains(n.ID) {
			elements = append(elements, domain.NodeElement(n))
		}
	}
	for _, e := range g.snapshot.Edges {
		if c.Contains(e.ID) {
			elements = append(elements, domain.EdgeElement(e))
		}
	}
	return elements
}

// GetElementByID returns a collection holding the element with the given ID
// if it is in the working graph, and an empty collection otherwise
func (g *Graph) GetElementByID(id string) Collection {
	if num, ok := g.nodeNums[id]; ok && g.working.Node(num) != nil {
		return NewCollection(id)
	}
	if uid, ok := g.edgeNums[id]; ok {
		e := g.snapshot.Edges[uid]
		if g.hasLine(g.nodeNums[e.Source], g.nodeNums[e.Target], uid) {
			return NewCollection(id)
		}
	}
	return NewCollection()
}

// Successors returns every node reachable from the nodes in c by following
// edges forward, plus the edges followed. A start node is only included when
// a cycle leads back to it. Edge IDs in c are ignored.
func (g *Graph) Successors(c Collection) Collection {
	var visited []int64
	bf := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			visited = append(visited, n.ID())
		},
	}
	for _, id := range c.IDs() {
		num, ok := g.nodeNums[id]
		if !ok {
			continue
		}
		start := g.working.Node(num)
		if start == nil {
			continue
		}
		bf.Walk(g.working, start, nil)
	}

	var ids []string
	for _, u := range visited {
		targets := g.working.From(u)
		for targets.Next() {
			v := targets.Node().ID()
			ids = append(ids, g.nodeIDs[v])
			ids = append(ids, g.lineIDs(u, v)...)
		}
	}
	return NewCollection(ids...)
}

// Neighborhood returns the nodes adjacent to the nodes in c, in either
// direction, plus the connecting edges. The nodes of c are excluded unless
// they are adjacent to one another.
func (g *Graph) Neighborhood(c Collection) Collection {
	var ids []string
	for _, id := range c.IDs() {
		num, ok := g.nodeNums[id]
		if !ok || g.working.Node(num) == nil {
			continue
		}
		out := g.working.From(num)
		for out.Next() {
			v := out.Node().ID()
			ids = append(ids, g.nodeIDs[v])
			ids = append(ids, g.lineIDs(num, v)...)
		}
		in := g.working.To(num)
		for in.Next() {
			u := in.Node().ID()
			ids = append(ids, g.nodeIDs[u])
			ids = append(ids, g.lineIDs(u, num)...)
		}
	}
	return NewCollection(ids...)
}

// Layout hands the working elements and the layout options to the renderer.
// It does not wait for the layout to settle.
func (g *Graph) Layout(opts LayoutOptions) {
	if g.renderer == nil {
		return
	}
	if err := g.renderer.Render(g.ElementsOf(g.Elements()), opts); err != nil {
		log.Printf("Failed to render layout: %v", err)
	}
}

// OnTap subscribes fn to taps on nodes of the working graph
func (g *Graph) OnTap(fn func(id string)) {
	g.onTap = append(g.onTap, fn)
}

// Tap dispatches a tap on the node with the given ID.
// Taps on edges or on nodes outside the working graph are ignored.
func (g *Graph) Tap(id string) bool {
	num, ok := g.nodeNums[id]
	if !ok || g.working.Node(num) == nil {
		return false
	}
	for _, fn := range g.onTap {
		fn(id)
	}
	return true
}

func (g *Graph) hasLine(from, to, uid int64) bool {
	if g.working.Node(from) == nil || g.working.Node(to) == nil {
		return false
	}
	lines := g.working.Lines(from, to)
	for lines.Next() {
		if lines.Line().ID() == uid {
			return true
		}
	}
	return false
}

func (g *Graph) lineIDs(from, to int64) []string {
	var ids []string
	lines := g.working.Lines(from, to)
	for lines.Next() {
		ids = append(ids, g.snapshot.Edges[lines.Line().ID()].ID)
	}
	return ids
}
