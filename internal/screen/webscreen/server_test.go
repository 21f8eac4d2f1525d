package webscreen

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/neonchess/internal/board"
	"github.com/park285/neonchess/internal/game"
	"github.com/park285/neonchess/internal/layout"
	"github.com/park285/neonchess/internal/render"
	"github.com/park285/neonchess/pkg/boarddto"
)

type harness struct {
	srv  *Server
	ts   *httptest.Server
	ctrl *game.Controller
	done chan error
}

func startHarness(t *testing.T) *harness {
	t.Helper()
	lay := layout.Default()
	srv := New(render.New(lay), WithPingInterval(0))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := &harness{srv: srv, ts: ts, ctrl: game.NewController(lay, nil), done: make(chan error, 1)}
	go func() { h.done <- game.Run(ctx, h.ctrl, srv) }()
	return h
}

func (h *harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(h.ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	c.SetReadLimit(16 << 20)
	t.Cleanup(func() { _ = c.Close(websocket.StatusNormalClosure, "") })
	return c
}

func (h *harness) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("game loop did not stop")
		return nil
	}
}

// nextSnapshot reads until a JSON snapshot and its PNG frame have arrived.
func nextSnapshot(t *testing.T, c *websocket.Conn) *boarddto.Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	typ, data, err := c.Read(ctx)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if typ != websocket.MessageText {
		t.Fatalf("expected text message first, got %v", typ)
	}
	var msg boarddto.ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != "snapshot" || msg.Snapshot == nil || msg.Width != 1920 {
		t.Fatalf("unexpected message %+v", msg)
	}

	typ, frame, err := c.Read(ctx)
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if typ != websocket.MessageBinary || !strings.HasPrefix(string(frame), "\x89PNG") {
		t.Fatalf("expected png frame")
	}
	return msg.Snapshot
}

func sendEvent(t *testing.T, c *websocket.Conn, ev boarddto.ClientEvent) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, c, ev); err != nil {
		t.Fatalf("write event: %v", err)
	}
}

func squareCenter(sq board.Square) image.Point {
	r := layout.Default().SquareRect(sq)
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

func TestPlayMoveOverWebsocket(t *testing.T) {
	h := startHarness(t)
	c := h.dial(t)

	first := nextSnapshot(t, c)
	if first.Turn != "pink" || first.Rows[6] != "PPPPPPPP" {
		t.Fatalf("unexpected first frame %+v", first)
	}

	from, to := squareCenter(board.Sq(6, 4)), squareCenter(board.Sq(4, 4))
	sendEvent(t, c, boarddto.ClientEvent{Type: boarddto.EventPointerDown, X: from.X, Y: from.Y})
	sendEvent(t, c, boarddto.ClientEvent{Type: boarddto.EventPointerUp, X: to.X, Y: to.Y})

	var snap *boarddto.Snapshot
	for i := 0; i < 4; i++ {
		snap = nextSnapshot(t, c)
		if snap.Turn == "blue" {
			break
		}
	}
	if snap.Turn != "blue" || snap.Rows[4] != "....P..." {
		t.Fatalf("move not applied: %+v", snap)
	}

	sendEvent(t, c, boarddto.ClientEvent{Type: boarddto.EventKey, Key: "Escape"})
	if err := h.wait(t); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !h.ctrl.Done() {
		t.Fatalf("controller should be done")
	}
}

func TestSecondDisplayRefused(t *testing.T) {
	h := startHarness(t)
	c := h.dial(t)
	nextSnapshot(t, c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(h.ts.URL, "http")+"/ws", nil)
	if err == nil {
		t.Fatalf("second display should be refused")
	}
	if resp == nil || resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %+v", resp)
	}
}

func TestDisconnectEndsSession(t *testing.T) {
	h := startHarness(t)
	c := h.dial(t)
	nextSnapshot(t, c)

	if err := c.Close(websocket.StatusNormalClosure, "bye"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := h.wait(t); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !h.ctrl.Done() {
		t.Fatalf("disconnect should end the session")
	}
}

func TestEndRefusesNewDisplays(t *testing.T) {
	h := startHarness(t)
	c := h.dial(t)
	nextSnapshot(t, c)

	ended := make(chan struct{})
	go func() {
		h.srv.End(context.Background(), h.ctrl.Snapshot())
		close(ended)
	}()
	final := nextSnapshot(t, c)
	if !final.Finished {
		t.Fatalf("final frame should be marked finished")
	}
	// reading on lets the close handshake finish
	_, _, _ = c.Read(context.Background())
	<-ended
	if err := h.srv.reserve(); !errors.Is(err, ErrSessionEnded) {
		t.Fatalf("expected ErrSessionEnded, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(h.ts.URL, "http")+"/ws", nil)
	if err == nil {
		t.Fatalf("late display should be refused")
	}
	if resp == nil || resp.StatusCode != http.StatusGone {
		t.Fatalf("expected 410, got %+v", resp)
	}
}

func TestIndexPage(t *testing.T) {
	h := startHarness(t)
	resp, err := http.Get(h.ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<canvas") {
		t.Fatalf("unexpected index response %d", resp.StatusCode)
	}

	missing, err := http.Get(h.ts.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}
}

func TestPollHonoursContext(t *testing.T) {
	srv := New(render.New(layout.Default()))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := srv.Poll(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
