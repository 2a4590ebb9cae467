package visibility

import (
	"hanzimap/internal/engine"
)

type fakeEdge struct {
	id, src, dst string
}

// fakeEngine is a plain adjacency-list engine with no rendering behind it
type fakeEngine struct {
	nodes []string
	edges []fakeEdge

	liveNodes map[string]bool
	liveEdges map[string]bool

	layouts  []engine.LayoutOptions
	restores int
}

func newFakeEngine(nodes []string, edges [][2]string) *fakeEngine {
	f := &fakeEngine{nodes: nodes}
	for _, e := range edges {
		f.edges = append(f.edges, fakeEdge{id: e[0] + e[1], src: e[0], dst: e[1]})
	}
	f.Restore()
	f.restores = 0
	return f
}

func (f *fakeEngine) Restore() {
	f.restores++
	f.liveNodes = make(map[string]bool)
	f.liveEdges = make(map[string]bool)
	for _, n := range f.nodes {
		f.liveNodes[n] = true
	}
	for _, e := range f.edges {
		f.liveEdges[e.id] = true
	}
}

func (f *fakeEngine) Elements() engine.Collection {
	var ids []string
	for n := range f.liveNodes {
		ids = append(ids, n)
	}
	for e := range f.liveEdges {
		ids = append(ids, e)
	}
	return engine.NewCollection(ids...)
}

func (f *fakeEngine) GetElementByID(id string) engine.Collection {
	if f.liveNodes[id] || f.liveEdges[id] {
		return engine.NewCollection(id)
	}
	return engine.NewCollection()
}

func (f *fakeEngine) out(n string) []fakeEdge {
	var out []fakeEdge
	for _, e := range f.edges {
		if e.src == n && f.liveEdges[e.id] {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEngine) in(n string) []fakeEdge {
	var in []fakeEdge
	for _, e := range f.edges {
		if e.dst == n && f.liveEdges[e.id] {
			in = append(in, e)
		}
	}
	return in
}

func (f *fakeEngine) Successors(c engine.Collection) engine.Collection {
	seen := map[string]bool{}
	var queue, ids []string
	for _, id := range c.IDs() {
		if f.liveNodes[id] {
			queue = append(queue, id)
			seen[id] = true
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range f.out(n) {
			ids = append(ids, e.id, e.dst)
			if !seen[e.dst] {
				seen[e.dst] = true
				queue = append(queue, e.dst)
			}
		}
	}
	return engine.NewCollection(ids...)
}

func (f *fakeEngine) Neighborhood(c engine.Collection) engine.Collection {
	var ids []string
	for _, id := range c.IDs() {
		if !f.liveNodes[id] {
			continue
		}
		for _, e := range f.out(id) {
			ids = append(ids, e.id, e.dst)
		}
		for _, e := range f.in(id) {
			ids = append(ids, e.id, e.src)
		}
	}
	return engine.NewCollection(ids...)
}

func (f *fakeEngine) Remove(c engine.Collection) {
	for _, id := range c.IDs() {
		delete(f.liveEdges, id)
		if f.liveNodes[id] {
			delete(f.liveNodes, id)
			for _, e := range f.edges {
				if e.src == id || e.dst == id {
					delete(f.liveEdges, e.id)
				}
			}
		}
	}
}

func (f *fakeEngine) Layout(opts engine.LayoutOptions) {
	f.layouts = append(f.layouts, opts)
}
