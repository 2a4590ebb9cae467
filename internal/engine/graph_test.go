package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"hanzimap/internal/domain"
)

// newTestDoc builds a normalized document with edges named "<src><dst>"
func newTestDoc(t *testing.T, nodes []string, edges [][2]string) *domain.Document {
	t.Helper()
	doc := domain.NewDocument()
	for _, id := range nodes {
		doc.AddNode(domain.Node{ID: id, Meaning: "m-" + id})
	}
	for _, e := range edges {
		doc.AddEdge(domain.Edge{ID: e[0] + e[1], Source: e[0], Target: e[1]})
	}
	if warnings := doc.Normalize(); len(warnings) != 0 {
		t.Fatalf("unexpected normalize warnings: %v", warnings)
	}
	return doc
}

func assertIDs(t *testing.T, want []string, got Collection) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, got.IDs()); diff != "" {
		t.Errorf("collection mismatch (-want +got):\n%s", diff)
	}
}

func TestGraphSuccessors(t *testing.T) {
	doc := newTestDoc(t,
		[]string{"A", "B", "C", "D", "E"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"E", "A"}},
	)
	g := New(doc, nil)

	t.Run("follows edges forward transitively", func(t *testing.T) {
		assertIDs(t, []string{"AB", "B", "BC", "C"}, g.Successors(g.GetElementByID("A")))
	})

	t.Run("leaf has no successors", func(t *testing.T) {
		assertIDs(t, nil, g.Successors(g.GetElementByID("C")))
	})

	t.Run("unknown id yields empty set", func(t *testing.T) {
		assertIDs(t, nil, g.Successors(g.GetElementByID("Z")))
	})

	t.Run("edge ids are ignored", func(t *testing.T) {
		assertIDs(t, nil, g.Successors(NewCollection("AB")))
	})
}

func TestGraphSuccessorsTerminatesOnCycles(t *testing.T) {
	t.Run("two node cycle includes the start", func(t *testing.T) {
		g := New(newTestDoc(t, []string{"A", "B"}, [][2]string{{"A", "B"}, {"B", "A"}}), nil)
		assertIDs(t, []string{"A", "AB", "B", "BA"}, g.Successors(g.GetElementByID("A")))
	})

	t.Run("self loop", func(t *testing.T) {
		g := New(newTestDoc(t, []string{"A", "B"}, [][2]string{{"A", "A"}, {"A", "B"}}), nil)
		assertIDs(t, []string{"A", "AA", "AB", "B"}, g.Successors(g.GetElementByID("A")))
	})
}

func TestGraphNeighborhood(t *testing.T) {
	doc := newTestDoc(t,
		[]string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"D", "B"}},
	)
	g := New(doc, nil)

	t.Run("open neighborhood excludes the node", func(t *testing.T) {
		assertIDs(t, []string{"A", "AB", "BC", "C", "D", "DB"}, g.Neighborhood(g.GetElementByID("B")))
	})

	t.Run("isolated node has an empty neighborhood", func(t *testing.T) {
		iso := New(newTestDoc(t, []string{"A", "Z"}, nil), nil)
		assertIDs(t, nil, iso.Neighborhood(iso.GetElementByID("Z")))
	})

	t.Run("unknown node", func(t *testing.T) {
		assertIDs(t, nil, g.Neighborhood(NewCollection("nope")))
	})

	t.Run("self loop neighbors itself", func(t *testing.T) {
		loop := New(newTestDoc(t, []string{"A"}, [][2]string{{"A", "A"}}), nil)
		assertIDs(t, []string{"A", "AA"}, loop.Neighborhood(loop.GetElementByID("A")))
	})
}

func TestGraphRemoveAndRestore(t *testing.T) {
	doc := newTestDoc(t,
		[]string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"B", "C"}},
	)
	g := New(doc, nil)
	full := g.Elements()

	t.Run("removing a node removes incident edges", func(t *testing.T) {
		g.Remove(NewCollection("B"))
		assertIDs(t, []string{"A", "C"}, g.Elements())
	})

	t.Run("queries run against the working graph", func(t *testing.T) {
		assertIDs(t, nil, g.Successors(g.GetElementByID("A")))
		assertIDs(t, nil, g.GetElementByID("AB"))
	})

	t.Run("restore brings back the snapshot", func(t *testing.T) {
		g.Restore()
		if !g.Elements().Equal(full) {
			t.Errorf("expected %v after restore, got %v", full.IDs(), g.Elements().IDs())
		}
	})

	t.Run("removing an edge keeps its endpoints", func(t *testing.T) {
		g.Restore()
		g.Remove(NewCollection("AB"))
		assertIDs(t, []string{"A", "B", "BC", "C"}, g.Elements())
	})

	t.Run("add skips edges with missing endpoints", func(t *testing.T) {
		g.Restore()
		g.Remove(g.All())
		g.Add(NewCollection("A", "AB"))
		assertIDs(t, []string{"A"}, g.Elements())
		g.Add(NewCollection("B", "AB"))
		assertIDs(t, []string{"A", "AB", "B"}, g.Elements())
	})
}

func TestGraphElementsOfKeepsDocumentOrder(t *testing.T) {
	doc := newTestDoc(t, []string{"C", "A", "B"}, [][2]string{{"C", "A"}})
	g := New(doc, nil)

	elements := g.ElementsOf(g.Elements())

	var ids []string
	for _, e := range elements {
		ids = append(ids, e.Data.ID)
	}
	if diff := cmp.Diff([]string{"C", "A", "B", "CA"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestGraphLayout(t *testing.T) {
	doc := newTestDoc(t, []string{"A", "B"}, [][2]string{{"A", "B"}})

	var rendered []domain.Element
	var got LayoutOptions
	g := New(doc, RendererFunc(func(elements []domain.Element, layout LayoutOptions) error {
		rendered = elements
		got = layout
		return nil
	}))

	g.Remove(NewCollection("B"))
	g.Layout(DefaultLayout())

	if len(rendered) != 1 || rendered[0].Data.ID != "A" {
		t.Errorf("expected only A to be rendered, got %v", rendered)
	}
	if got != DefaultLayout() {
		t.Errorf("expected default layout, got %+v", got)
	}
}

func TestGraphTap(t *testing.T) {
	doc := newTestDoc(t, []string{"A", "B"}, [][2]string{{"A", "B"}})
	g := New(doc, nil)

	var tapped []string
	g.OnTap(func(id string) { tapped = append(tapped, id) })

	if !g.Tap("A") {
		t.Error("expected tap on visible node to dispatch")
	}
	if g.Tap("AB") {
		t.Error("expected tap on edge to be ignored")
	}
	if g.Tap("missing") {
		t.Error("expected tap on unknown node to be ignored")
	}
	g.Remove(NewCollection("B"))
	if g.Tap("B") {
		t.Error("expected tap on removed node to be ignored")
	}

	if diff := cmp.Diff([]string{"A"}, tapped); diff != "" {
		t.Errorf("tapped mismatch (-want +got):\n%s", diff)
	}
}

func TestNewWithNilDocument(t *testing.T) {
	g := New(nil, nil)
	if !g.Elements().Empty() {
		t.Error("expected empty engine for nil document")
	}
	g.Layout(DefaultLayout())
}
