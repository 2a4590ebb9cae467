package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"lukechampine.com/blake3"

	"hanzimap/internal/codec"
	"hanzimap/internal/domain"
	"hanzimap/internal/engine"
	"hanzimap/internal/loader"
	"hanzimap/internal/metrics"
	"hanzimap/internal/selection"
	"hanzimap/internal/visibility"
)

// ErrNoDocument is returned while no document has been loaded successfully
var ErrNoDocument = errors.New("no graph document loaded")

// Options configures a GraphService
type Options struct {
	DefaultRoot string
	Layout      engine.LayoutOptions
}

// Snapshot is an immutable loaded document
type Snapshot struct {
	Document    *domain.Document
	Fingerprint string
	LoadedAt    time.Time
}

// VisibleSet is the result of a headless recomputation
type VisibleSet struct {
	Root       string           `json:"root"`
	Expansions []string         `json:"expansions"`
	Elements   []domain.Element `json:"elements"`
	Hidden     int              `json:"hidden"`
}

// GraphService provides the loaded graph document and queries over it
type GraphService struct {
	source   loader.Source
	eventBus *EventBus
	opts     Options

	loadMu  sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewGraphService creates a new graph service. Nothing is loaded until Load.
func NewGraphService(source loader.Source, eventBus *EventBus, opts Options) *GraphService {
	if opts.Layout.Name == "" {
		opts.Layout = engine.DefaultLayout()
	}
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	return &GraphService{
		source:   source,
		eventBus: eventBus,
		opts:     opts,
	}
}

// Load fetches the document from the data source and makes it current.
// On failure the previous snapshot, if any, stays current.
func (s *GraphService) Load(ctx context.Context) error {
	snap, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.eventBus.Publish(Event{Type: EventGraphLoaded, Payload: s.summary(snap)})
	return nil
}

// Reload fetches the document again and publishes graph_reloaded if it
// changed. An unchanged document publishes nothing.
func (s *GraphService) Reload(ctx context.Context) error {
	snap, changed, err := s.load(ctx)
	if err != nil {
		return err
	}
	if changed {
		log.Printf("Graph data reloaded: %d nodes, %d edges", len(snap.Document.Nodes), len(snap.Document.Edges))
		s.eventBus.Publish(Event{Type: EventGraphReloaded, Payload: s.summary(snap)})
	}
	return nil
}

func (s *GraphService) load(ctx context.Context) (*Snapshot, bool, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	doc, err := loader.Load(ctx, s.source)
	if err != nil {
		log.Printf("Failed to load graph data: %v", err)
		metrics.LoadFailures.Inc()
		s.eventBus.Publish(Event{
			Type:    EventLoadFailed,
			Payload: LoadFailure{Source: s.source.String(), Error: err.Error()},
		})
		return nil, false, err
	}

	fp, err := Fingerprint(doc)
	if err != nil {
		return nil, false, err
	}

	prev := s.current.Load()
	if prev != nil && prev.Fingerprint == fp {
		return prev, false, nil
	}

	snap := &Snapshot{Document: doc, Fingerprint: fp, LoadedAt: time.Now()}
	s.current.Store(snap)
	metrics.DocumentElements.WithLabelValues(string(domain.GroupNodes)).Set(float64(len(doc.Nodes)))
	metrics.DocumentElements.WithLabelValues(string(domain.GroupEdges)).Set(float64(len(doc.Edges)))
	return snap, true, nil
}

func (s *GraphService) summary(snap *Snapshot) LoadSummary {
	return LoadSummary{
		Source:      s.source.String(),
		Nodes:       len(snap.Document.Nodes),
		Edges:       len(snap.Document.Edges),
		Fingerprint: snap.Fingerprint,
	}
}

// Snapshot returns the current snapshot, or nil before the first load
func (s *GraphService) Snapshot() *Snapshot {
	return s.current.Load()
}

// Document returns the current document, or nil before the first load
func (s *GraphService) Document() *domain.Document {
	if snap := s.current.Load(); snap != nil {
		return snap.Document
	}
	return nil
}

// Fingerprint returns the hex digest of the current document
func (s *GraphService) Fingerprint() string {
	if snap := s.current.Load(); snap != nil {
		return snap.Fingerprint
	}
	return ""
}

// DefaultRoot returns the root preselected in the dropdown
func (s *GraphService) DefaultRoot() string {
	return s.opts.DefaultRoot
}

// Layout returns the layout options sent with every render
func (s *GraphService) Layout() engine.LayoutOptions {
	return s.opts.Layout
}

// EventBus returns the bus load outcomes are published on
func (s *GraphService) EventBus() *EventBus {
	return s.eventBus
}

// Roots lists the eligible roots of the current document.
// Before the first load the list is empty.
func (s *GraphService) Roots() []selection.Option {
	return selection.EligibleRoots(s.Document(), s.opts.DefaultRoot)
}

// Visible recomputes the visible set for a root and a sequence of taps on a
// fresh engine. Nothing is kept between calls.
func (s *GraphService) Visible(root string, expansions []string) (*VisibleSet, error) {
	doc := s.Document()
	if doc == nil {
		return nil, ErrNoDocument
	}

	eng := engine.New(doc, nil)
	ctrl := visibility.New(eng, s.opts.Layout)
	if err := ctrl.SetRoot(root); err != nil {
		return nil, err
	}
	for _, id := range expansions {
		ctrl.Expand(id)
	}

	return &VisibleSet{
		Root:       ctrl.Root(),
		Expansions: ctrl.Expansions(),
		Elements:   eng.ElementsOf(ctrl.Visible()),
		Hidden:     ctrl.Removed().Len(),
	}, nil
}

// Export writes the current document in the given format
func (s *GraphService) Export(w io.Writer, format string) error {
	doc := s.Document()
	if doc == nil {
		return ErrNoDocument
	}
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	return c.Export(doc, w)
}

// Fingerprint returns the blake3 digest of a document's JSON encoding
func Fingerprint(doc *domain.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
