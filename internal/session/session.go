package session

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"hanzimap/internal/domain"
	"hanzimap/internal/engine"
	"hanzimap/internal/selection"
	"hanzimap/internal/visibility"
)

const (
	writeWait     = 10 * time.Second
	maxFrameBytes = 4096
)

// Session is one page's view of the graph
type Session struct {
	ID          string
	CreatedAt   time.Time
	fingerprint string

	conn     *websocket.Conn
	writeMu  sync.Mutex
	lastUsed atomic.Int64
	closed   sync.Once

	doc    *domain.Document
	layout engine.LayoutOptions
	eng    *engine.Graph
	ctrl   *visibility.Controller
}

func newSession(id string, conn *websocket.Conn, doc *domain.Document, fingerprint string, layout engine.LayoutOptions) *Session {
	if doc == nil {
		doc = domain.NewDocument()
	}
	s := &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		fingerprint: fingerprint,
		conn:        conn,
		doc:         doc,
		layout:      layout,
	}
	s.eng = engine.New(doc, engine.RendererFunc(s.render))
	s.ctrl = visibility.New(s.eng, layout)
	s.eng.OnTap(s.ctrl.Expand)
	s.touch()
	return s
}

// LastUsed returns when the page last showed signs of life
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

func (s *Session) touch() {
	s.lastUsed.Store(time.Now().UnixNano())
}

// start sends the init frame and shows the preselected root
func (s *Session) start(defaultRoot string) error {
	roots := selection.EligibleRoots(s.doc, defaultRoot)
	selected := selection.Initial(roots)

	if err := s.write(InitFrame{
		Type:        FrameInit,
		Session:     s.ID,
		Roots:       roots,
		Selected:    selected,
		Layout:      s.layout,
		Fingerprint: s.fingerprint,
	}); err != nil {
		return err
	}

	if selected != "" {
		return s.ctrl.SetRoot(selected)
	}
	return nil
}

// readLoop applies client frames in arrival order until the socket closes
func (s *Session) readLoop() {
	s.conn.SetReadLimit(maxFrameBytes)
	s.conn.SetPongHandler(func(string) error {
		s.touch()
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Session %s read error: %v", s.ID, err)
			}
			return
		}
		s.touch()

		var frame ClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Printf("Session %s sent malformed frame: %v", s.ID, err)
			continue
		}
		s.handle(frame)
	}
}

func (s *Session) handle(frame ClientFrame) {
	switch frame.Type {
	case FrameSelect:
		if err := s.ctrl.SetRoot(frame.ID); err != nil {
			if !errors.Is(err, visibility.ErrEmptyRoot) {
				log.Printf("Session %s failed to set root: %v", s.ID, err)
			}
		}
	case FrameTap:
		s.eng.Tap(frame.ID)
	default:
		log.Printf("Session %s sent unknown frame type %q", s.ID, frame.Type)
	}
}

// render is the engine's renderer: it ships the visible elements to the page
func (s *Session) render(elements []domain.Element, opts engine.LayoutOptions) error {
	return s.write(RenderFrame{
		Type:       FrameRender,
		Root:       s.ctrl.Root(),
		Expansions: s.ctrl.Expansions(),
		Elements:   elements,
		Layout:     opts,
	})
}

func (s *Session) write(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(v)
}

func (s *Session) ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Close sends a close frame with reason and closes the socket
func (s *Session) Close(reason string) {
	s.closed.Do(func() {
		s.writeMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, reason)
		if err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
			log.Printf("Session %s close frame failed: %v", s.ID, err)
		}
		s.writeMu.Unlock()
		s.conn.Close()
	})
}
