// Package webscreen serves the game to a single browser display over a
// websocket.
package webscreen

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/neonchess/internal/adapter/snapshotdto"
	"github.com/park285/neonchess/internal/game"
	"github.com/park285/neonchess/internal/msgcat"
	"github.com/park285/neonchess/internal/render"
	"github.com/park285/neonchess/pkg/boarddto"
)

var (
	// ErrScreenBusy is returned when a second display tries to attach.
	ErrScreenBusy = errors.New("display already connected")
	// ErrSessionEnded is returned when a display arrives after End.
	ErrSessionEnded = errors.New("session ended")
)

//go:embed index.html
var indexHTML []byte

const (
	eventBuffer    = 64
	maxBatch       = 32
	writeTimeout   = 5 * time.Second
	defaultPing    = 30 * time.Second
	pingTimeout    = 3 * time.Second
	closeReasonEnd = "session ended"
)

// Server is a game.Screen backed by one websocket display.
type Server struct {
	renderer     *render.Renderer
	catalog      *msgcat.Catalog
	logger       *zap.Logger
	pingInterval time.Duration

	mu        sync.Mutex
	conn      *websocket.Conn
	attaching bool
	latest    *game.Snapshot

	writeMu     sync.Mutex
	sentConn    *websocket.Conn
	sentVersion uint64

	events   chan game.Event
	done     chan struct{}
	doneOnce sync.Once
}

type Option func(*Server)

func WithCatalog(c *msgcat.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPingInterval sets how often an idle display is pinged. Zero disables
// pings.
func WithPingInterval(d time.Duration) Option {
	return func(s *Server) { s.pingInterval = d }
}

func New(r *render.Renderer, opts ...Option) *Server {
	s := &Server{
		renderer:     r,
		logger:       zap.NewNop(),
		pingInterval: defaultPing,
		events:       make(chan game.Event, eventBuffer),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler serves the display page at / and the websocket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	if err := s.reserve(); err != nil {
		s.logger.Warn("display refused", zap.String("remote", r.RemoteAddr), zap.Error(err))
		if errors.Is(err, ErrSessionEnded) {
			http.Error(w, s.catalog.RenderOr("web.ended", nil, err.Error()), http.StatusGone)
			return
		}
		http.Error(w, s.catalog.RenderOr("web.busy", nil, err.Error()), http.StatusConflict)
		return
	}
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
	})
	if err != nil {
		s.release(nil)
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	pending := s.attach(c)
	s.logger.Info("display connected", zap.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	if s.pingInterval > 0 {
		go s.pingLoop(ctx, c)
	}

	if pending != nil {
		if err := s.send(ctx, c, *pending, false); err != nil {
			s.logger.Warn("initial frame failed", zap.Error(err))
		}
	}

	err = s.readLoop(ctx, c)
	s.release(c)
	s.logger.Info("display disconnected", zap.Error(err))
	_ = c.Close(websocket.StatusNormalClosure, "")
	s.push(ctx, game.Close{})
}

func (s *Server) reserve() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return ErrSessionEnded
	default:
	}
	if s.conn != nil || s.attaching {
		return ErrScreenBusy
	}
	s.attaching = true
	return nil
}

// attach installs c as the display and returns the frame presented before it
// arrived, if any. Later frames reach c through Present.
func (s *Server) attach(c *websocket.Conn) *game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn, s.attaching = c, false
	return s.latest
}

// release frees the display slot if c still holds it.
func (s *Server) release(c *websocket.Conn) {
	s.mu.Lock()
	if s.conn == c {
		s.conn = nil
	}
	s.attaching = false
	s.mu.Unlock()
}

func (s *Server) readLoop(ctx context.Context, c *websocket.Conn) error {
	for {
		var msg boarddto.ClientEvent
		if err := wsjson.Read(ctx, c, &msg); err != nil {
			return err
		}
		ev, ok := snapshotdto.ToEvent(msg)
		if !ok {
			s.logger.Debug("ignored client event", zap.String("type", msg.Type))
			continue
		}
		if !s.push(ctx, ev) {
			return ctx.Err()
		}
	}
}

// push hands ev to the game loop. It gives up once the session or the
// connection ends.
func (s *Server) push(ctx context.Context, ev game.Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		// still deliver the close so the loop sees the disconnect
		if _, ok := ev.(game.Close); ok {
			select {
			case s.events <- ev:
				return true
			case <-s.done:
			}
		}
		return false
	}
}

func (s *Server) pingLoop(ctx context.Context, c *websocket.Conn) {
	t := time.NewTicker(s.pingInterval)
	defer t.Stop()
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := c.Ping(pctx)
			cancel()
			if err == nil {
				failures = 0
				continue
			}
			failures++
			if failures >= 2 {
				s.logger.Warn("display stopped answering pings", zap.Error(err))
				_ = c.Close(websocket.StatusGoingAway, "ping failure")
				return
			}
		}
	}
}

// Present sends snap to the attached display, or keeps it for the next one.
// Display write errors are logged; the reader reports the disconnect.
func (s *Server) Present(ctx context.Context, snap game.Snapshot) error {
	s.mu.Lock()
	s.latest = &snap
	c := s.conn
	s.mu.Unlock()
	if c == nil {
		return nil
	}
	if err := s.send(ctx, c, snap, false); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("frame write failed", zap.Error(err))
	}
	return nil
}

// Poll blocks until at least one event arrives and returns everything
// already queued.
func (s *Server) Poll(ctx context.Context) ([]game.Event, error) {
	var batch []game.Event
	select {
	case ev := <-s.events:
		batch = append(batch, ev)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	for len(batch) < maxBatch {
		select {
		case ev := <-s.events:
			batch = append(batch, ev)
		default:
			return batch, nil
		}
	}
	return batch, nil
}

// End sends the final frame, closes the display and refuses new ones.
func (s *Server) End(ctx context.Context, final game.Snapshot) {
	s.doneOnce.Do(func() { close(s.done) })
	s.mu.Lock()
	c := s.conn
	s.mu.Unlock()
	if c == nil {
		return
	}
	if err := s.send(ctx, c, final, true); err != nil {
		s.logger.Debug("final frame failed", zap.Error(err))
	}
	_ = c.Close(websocket.StatusNormalClosure, closeReasonEnd)
}

func (s *Server) send(ctx context.Context, c *websocket.Conn, snap game.Snapshot, finished bool) error {
	frame, err := s.renderer.RenderPNG(ctx, snap)
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	screen := s.renderer.Layout().Screen()
	msg := boarddto.ServerMessage{
		Type:     "snapshot",
		Snapshot: snapshotdto.FromSnapshot(snap, finished),
		Width:    screen.Dx(),
		Height:   screen.Dy(),
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if c == s.sentConn && snap.Version < s.sentVersion && !finished {
		// a newer frame already reached this display
		return nil
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(wctx, c, msg); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := c.Write(wctx, websocket.MessageBinary, frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	s.sentConn, s.sentVersion = c, snap.Version
	return nil
}
