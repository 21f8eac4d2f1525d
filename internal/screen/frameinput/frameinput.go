// Package frameinput turns once-per-frame input polling into ordered game
// events.
package frameinput

import (
	"image"

	"github.com/park285/neonchess/internal/game"
)

// Source is the input state of the current frame.
type Source interface {
	CursorPosition() (x, y int)
	// JustPressed and JustReleased report edges since the previous frame.
	JustPressed(b game.Button) bool
	JustReleased(b game.Button) bool
	// WheelY is the vertical wheel delta; positive scrolls up.
	WheelY() float64
	EscapePressed() bool
	CloseRequested() bool
}

var buttons = []game.Button{game.ButtonPrimary, game.ButtonSecondary, game.ButtonMiddle}

// Collector remembers the cursor between frames so only real moves are
// reported.
type Collector struct {
	last  image.Point
	known bool
}

// Collect returns this frame's events: move, releases, presses, wheel, then
// keyboard and close.
func (c *Collector) Collect(src Source) []game.Event {
	var events []game.Event
	x, y := src.CursorPosition()
	pos := image.Pt(x, y)
	if !c.known || pos != c.last {
		events = append(events, game.PointerMove{Pos: pos})
		c.last, c.known = pos, true
	}
	// A release and a press of the same button within one frame can only
	// have happened in that order.
	for _, b := range buttons {
		if src.JustReleased(b) {
			events = append(events, game.PointerUp{Pos: pos, Button: b})
		}
	}
	for _, b := range buttons {
		if src.JustPressed(b) {
			events = append(events, game.PointerDown{Pos: pos, Button: b})
		}
	}
	switch dy := src.WheelY(); {
	case dy > 0:
		events = append(events, game.Scroll{Pos: pos, Dir: game.ScrollUp})
	case dy < 0:
		events = append(events, game.Scroll{Pos: pos, Dir: game.ScrollDown})
	}
	if src.EscapePressed() {
		events = append(events, game.KeyDown{Key: game.KeyEscape})
	}
	if src.CloseRequested() {
		events = append(events, game.Close{})
	}
	return events
}
