package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"hanzimap/internal/domain"
	"hanzimap/internal/loader"
	"hanzimap/internal/visibility"
)

// A -> B -> C, D isolated
const scenarioJSON = `{
  "nodes": [
    {"id": "A", "meaning": "a"},
    {"id": "B", "meaning": "b"},
    {"id": "C", "meaning": "c"},
    {"id": "D", "meaning": "d"}
  ],
  "edges": [
    {"id": "AB", "source": "A", "target": "B"},
    {"id": "BC", "source": "B", "target": "C"}
  ]
}`

func writeData(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write data: %v", err)
	}
}

func newTestService(t *testing.T, content string) (*GraphService, string, chan Event) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph_data.json")
	writeData(t, path, content)

	bus := NewEventBus()
	events := make(chan Event, 16)
	bus.Subscribe(events)

	svc := NewGraphService(loader.NewFileSource(path), bus, Options{DefaultRoot: "A"})
	return svc, path, events
}

func expectEvent(t *testing.T, events <-chan Event, want EventType) Event {
	t.Helper()
	select {
	case ev := <-events:
		if ev.Type != want {
			t.Fatalf("expected %s event, got %s", want, ev.Type)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatalf("expected %s event, got none", want)
	}
	return Event{}
}

func expectNoEvent(t *testing.T, events <-chan Event) {
	t.Helper()
	select {
	case ev := <-events:
		t.Fatalf("expected no event, got %s", ev.Type)
	default:
	}
}

func elementIDs(elements []domain.Element) []string {
	ids := make([]string, 0, len(elements))
	for _, el := range elements {
		ids = append(ids, el.Data.ID)
	}
	return ids
}

func TestGraphServiceLoad(t *testing.T) {
	svc, _, events := newTestService(t, scenarioJSON)
	ctx := context.Background()

	if svc.Document() != nil || svc.Fingerprint() != "" {
		t.Fatal("expected no document before load")
	}

	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ev := expectEvent(t, events, EventGraphLoaded)
	summary, ok := ev.Payload.(LoadSummary)
	if !ok {
		t.Fatalf("expected LoadSummary payload, got %T", ev.Payload)
	}
	if summary.Nodes != 4 || summary.Edges != 2 {
		t.Errorf("expected 4 nodes and 2 edges, got %d and %d", summary.Nodes, summary.Edges)
	}
	if summary.Fingerprint != svc.Fingerprint() || len(svc.Fingerprint()) != 64 {
		t.Errorf("unexpected fingerprint %q", svc.Fingerprint())
	}
}

func TestGraphServiceReload(t *testing.T) {
	svc, path, events := newTestService(t, scenarioJSON)
	ctx := context.Background()

	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	expectEvent(t, events, EventGraphLoaded)
	first := svc.Snapshot()

	t.Run("unchanged document publishes nothing", func(t *testing.T) {
		if err := svc.Reload(ctx); err != nil {
			t.Fatalf("Reload: %v", err)
		}
		expectNoEvent(t, events)
		if svc.Snapshot() != first {
			t.Error("expected snapshot to be kept")
		}
	})

	t.Run("changed document swaps snapshot", func(t *testing.T) {
		writeData(t, path, `{"nodes":[{"id":"A"},{"id":"B"}],"edges":[{"source":"A","target":"B"}]}`)
		if err := svc.Reload(ctx); err != nil {
			t.Fatalf("Reload: %v", err)
		}
		ev := expectEvent(t, events, EventGraphReloaded)
		if ev.Payload.(LoadSummary).Nodes != 2 {
			t.Errorf("expected 2 nodes, got %+v", ev.Payload)
		}
		if svc.Fingerprint() == first.Fingerprint {
			t.Error("expected fingerprint to change")
		}
		// Sessions holding the old snapshot keep seeing it
		if len(first.Document.Nodes) != 4 {
			t.Error("old snapshot was mutated")
		}
	})

	t.Run("failure keeps previous snapshot", func(t *testing.T) {
		current := svc.Snapshot()
		writeData(t, path, `{"nodes": [`)
		if err := svc.Reload(ctx); err == nil {
			t.Fatal("expected error")
		}
		ev := expectEvent(t, events, EventLoadFailed)
		if ev.Payload.(LoadFailure).Error == "" {
			t.Error("expected failure message")
		}
		if svc.Snapshot() != current {
			t.Error("expected previous snapshot to stay current")
		}
	})
}

func TestGraphServiceFirstLoadFailure(t *testing.T) {
	bus := NewEventBus()
	events := make(chan Event, 1)
	bus.Subscribe(events)
	svc := NewGraphService(loader.NewFileSource(filepath.Join(t.TempDir(), "missing.json")), bus, Options{})

	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	expectEvent(t, events, EventLoadFailed)

	if len(svc.Roots()) != 0 {
		t.Error("expected no roots without a document")
	}
	if _, err := svc.Visible("A", nil); !errors.Is(err, ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, got %v", err)
	}
	if err := svc.Export(&bytes.Buffer{}, "json"); !errors.Is(err, ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, got %v", err)
	}
}

func TestGraphServiceRoots(t *testing.T) {
	svc, _, _ := newTestService(t, scenarioJSON)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	roots := svc.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %+v", roots)
	}
	if roots[0].ID != "A" || !roots[0].Selected || roots[0].Label != "A a" {
		t.Errorf("unexpected first root %+v", roots[0])
	}
	if roots[1].ID != "B" || roots[1].Selected {
		t.Errorf("unexpected second root %+v", roots[1])
	}
}

func TestGraphServiceVisible(t *testing.T) {
	svc, _, _ := newTestService(t, scenarioJSON)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name       string
		root       string
		expansions []string
		want       []string
	}{
		{"root A", "A", nil, []string{"A", "B", "C", "AB", "BC"}},
		{"root B hides predecessor", "B", nil, []string{"B", "C", "BC"}},
		{"root B expand B", "B", []string{"B"}, []string{"A", "B", "C", "AB", "BC"}},
		{"isolated expansion adds nothing", "A", []string{"D"}, []string{"A", "B", "C", "AB", "BC"}},
		{"unknown root", "Z", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Visible(tt.root, tt.expansions)
			if err != nil {
				t.Fatalf("Visible: %v", err)
			}
			if diff := cmp.Diff(tt.want, elementIDs(got.Elements)); diff != "" {
				t.Errorf("visible mismatch (-want +got):\n%s", diff)
			}
			if got.Hidden != 6-len(tt.want) {
				t.Errorf("expected %d hidden, got %d", 6-len(tt.want), got.Hidden)
			}
		})
	}

	t.Run("empty root", func(t *testing.T) {
		if _, err := svc.Visible("", nil); !errors.Is(err, visibility.ErrEmptyRoot) {
			t.Errorf("expected ErrEmptyRoot, got %v", err)
		}
	})
}

func TestGraphServiceExport(t *testing.T) {
	svc, _, _ := newTestService(t, scenarioJSON)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(&buf, "yaml"); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("source: A")) {
		t.Errorf("expected YAML output, got:\n%s", buf.String())
	}

	if err := svc.Export(&buf, "csv"); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestFingerprintIsStable(t *testing.T) {
	a := &domain.Document{Nodes: []domain.Node{{ID: "木"}}, Edges: []domain.Edge{}}
	b := &domain.Document{Nodes: []domain.Node{{ID: "木"}}, Edges: []domain.Edge{}}
	c := &domain.Document{Nodes: []domain.Node{{ID: "木", Learned: true}}, Edges: []domain.Edge{}}

	fa, _ := Fingerprint(a)
	fb, _ := Fingerprint(b)
	fc, _ := Fingerprint(c)
	if fa != fb {
		t.Error("expected equal documents to share a fingerprint")
	}
	if fa == fc {
		t.Error("expected different documents to differ")
	}
}
