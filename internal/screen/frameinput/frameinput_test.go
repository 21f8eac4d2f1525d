package frameinput

import (
	"image"
	"testing"

	"github.com/park285/neonchess/internal/board"
	"github.com/park285/neonchess/internal/game"
	"github.com/park285/neonchess/internal/layout"
)

type frame struct {
	x, y     int
	pressed  map[game.Button]bool
	released map[game.Button]bool
	wheel    float64
	escape   bool
	closing  bool
}

func (f frame) CursorPosition() (int, int)      { return f.x, f.y }
func (f frame) JustPressed(b game.Button) bool  { return f.pressed[b] }
func (f frame) JustReleased(b game.Button) bool { return f.released[b] }
func (f frame) WheelY() float64                 { return f.wheel }
func (f frame) EscapePressed() bool             { return f.escape }
func (f frame) CloseRequested() bool            { return f.closing }

func TestCollectOrder(t *testing.T) {
	var c Collector
	got := c.Collect(frame{
		x: 10, y: 20,
		pressed:  map[game.Button]bool{game.ButtonPrimary: true},
		released: map[game.Button]bool{game.ButtonSecondary: true},
		wheel:    1,
		escape:   true,
		closing:  true,
	})
	pos := image.Pt(10, 20)
	want := []game.Event{
		game.PointerMove{Pos: pos},
		game.PointerUp{Pos: pos, Button: game.ButtonSecondary},
		game.PointerDown{Pos: pos, Button: game.ButtonPrimary},
		game.Scroll{Pos: pos, Dir: game.ScrollUp},
		game.KeyDown{Key: game.KeyEscape},
		game.Close{},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestCollectSkipsStillCursor(t *testing.T) {
	var c Collector
	c.Collect(frame{x: 5, y: 5})
	if got := c.Collect(frame{x: 5, y: 5}); len(got) != 0 {
		t.Fatalf("idle frame produced %#v", got)
	}
	got := c.Collect(frame{x: 6, y: 5, wheel: -0.5})
	if len(got) != 2 || got[1] != (game.Scroll{Pos: image.Pt(6, 5), Dir: game.ScrollDown}) {
		t.Fatalf("unexpected events %#v", got)
	}
}

func TestCollectReleaseBeforePressInOneFrame(t *testing.T) {
	var c Collector
	got := c.Collect(frame{
		x: 3, y: 4,
		pressed:  map[game.Button]bool{game.ButtonPrimary: true},
		released: map[game.Button]bool{game.ButtonPrimary: true},
	})
	pos := image.Pt(3, 4)
	want := []game.Event{
		game.PointerMove{Pos: pos},
		game.PointerUp{Pos: pos, Button: game.ButtonPrimary},
		game.PointerDown{Pos: pos, Button: game.ButtonPrimary},
	}
	if len(got) != len(want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestDropAndPickUpInOneFrame(t *testing.T) {
	lay := layout.Default()
	ctrl := game.NewController(lay, nil)
	center := func(sq board.Square) image.Point {
		r := lay.SquareRect(sq)
		return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	}

	var c Collector
	e2, d2 := center(board.Sq(6, 4)), center(board.Sq(6, 3))
	for _, ev := range c.Collect(frame{x: e2.X, y: e2.Y, pressed: map[game.Button]bool{game.ButtonPrimary: true}}) {
		ctrl.Handle(ev)
	}
	if !ctrl.Dragging() {
		t.Fatalf("expected e2 pawn to be held")
	}

	// dropping on an own piece is rejected; the same frame's press picks it up
	for _, ev := range c.Collect(frame{
		x: d2.X, y: d2.Y,
		pressed:  map[game.Button]bool{game.ButtonPrimary: true},
		released: map[game.Button]bool{game.ButtonPrimary: true},
	}) {
		ctrl.Handle(ev)
	}
	snap := ctrl.Snapshot()
	if !snap.Dragging || snap.Drag.Origin != board.Sq(6, 3) {
		t.Fatalf("expected d2 pawn to be held, got dragging=%v origin=%v", snap.Dragging, snap.Drag.Origin)
	}
}
