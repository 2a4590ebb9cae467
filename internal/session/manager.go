package session

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"hanzimap/internal/engine"
	"hanzimap/internal/metrics"
	"hanzimap/internal/service"
)

// DefaultIdleTimeout closes sessions whose page stopped answering
const DefaultIdleTimeout = 10 * time.Minute

// Source supplies the document a new session starts from
type Source interface {
	Snapshot() *service.Snapshot
	DefaultRoot() string
	Layout() engine.LayoutOptions
}

// Options configures a Manager
type Options struct {
	IdleTimeout time.Duration
	// PingInterval defaults to a third of IdleTimeout
	PingInterval time.Duration
	CheckOrigin  func(r *http.Request) bool
}

// Manager accepts websocket connections and tracks their sessions
type Manager struct {
	src      Source
	upgrader websocket.Upgrader
	opts     Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager
func NewManager(src Source, opts Options) *Manager {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = opts.IdleTimeout / 3
	}
	return &Manager{
		src:  src,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
		sessions: make(map[string]*Session),
	}
}

// ServeHTTP upgrades the request and runs a session until the page leaves
func (m *Manager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var s *Session
	if snap := m.src.Snapshot(); snap != nil {
		s = newSession(uuid.NewString(), conn, snap.Document, snap.Fingerprint, m.src.Layout())
	} else {
		s = newSession(uuid.NewString(), conn, nil, "", m.src.Layout())
	}

	m.add(s)
	defer m.remove(s.ID)

	if err := s.start(m.src.DefaultRoot()); err != nil {
		log.Printf("Session %s failed to start: %v", s.ID, err)
		return
	}

	s.readLoop()
}

func (m *Manager) add(s *Session) {
	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Inc()
	log.Printf("Session %s connected (total: %d)", s.ID, n)
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if ok {
		metrics.ActiveSessions.Dec()
		log.Printf("Session %s disconnected (total: %d)", id, n)
	}
}

// Get retrieves a session by ID
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Count returns the number of connected sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run pings sessions, closes idle ones and closes every session when ctx ends
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep(time.Now())
		case <-ctx.Done():
			m.CloseAll("server shutting down")
			return ctx.Err()
		}
	}
}

// sweep closes sessions idle since before now minus the idle timeout and
// pings the rest
func (m *Manager) sweep(now time.Time) {
	for _, s := range m.snapshot() {
		if now.Sub(s.LastUsed()) > m.opts.IdleTimeout {
			log.Printf("Session %s idle since %s, closing", s.ID, s.LastUsed().Format(time.RFC3339))
			s.Close("idle timeout")
			continue
		}
		if err := s.ping(); err != nil {
			log.Printf("Session %s ping failed: %v", s.ID, err)
		}
	}
}

// CloseAll closes every connected session
func (m *Manager) CloseAll(reason string) {
	for _, s := range m.snapshot() {
		s.Close(reason)
	}
}

func (m *Manager) snapshot() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}
