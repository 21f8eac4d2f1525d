// Package layout maps screen pixels to board squares and capture regions.
package layout

import (
	"errors"
	"fmt"
	"image"

	"github.com/park285/neonchess/internal/board"
	"github.com/park285/neonchess/internal/ledger"
)

var ErrInvalid = errors.New("invalid layout")

// Layout holds the fixed geometry of the screen. Coordinates are pixels with
// the origin at the top-left corner.
type Layout struct {
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`

	TileSize int `yaml:"tile_size"`
	BoardX   int `yaml:"board_x"`
	BoardY   int `yaml:"board_y"`

	CaptureBoxWidth  int `yaml:"capture_box_width"`
	CaptureBoxHeight int `yaml:"capture_box_height"`
	PinkCaptureX     int `yaml:"pink_capture_x"`
	PinkCaptureY     int `yaml:"pink_capture_y"`
	BlueCaptureX     int `yaml:"blue_capture_x"`
	BlueCaptureY     int `yaml:"blue_capture_y"`
	CaptureIconSize  int `yaml:"capture_icon_size"`
	CapturePadding   int `yaml:"capture_padding"`
}

// Default returns the 1920x1080 layout with a centered 800px board.
func Default() Layout {
	return Layout{
		ScreenWidth:      1920,
		ScreenHeight:     1080,
		TileSize:         100,
		BoardX:           (1920 - 800) / 2,
		BoardY:           (1080 - 800) / 2,
		CaptureBoxWidth:  380,
		CaptureBoxHeight: 110,
		PinkCaptureX:     0,
		PinkCaptureY:     140,
		BlueCaptureX:     0,
		BlueCaptureY:     785,
		CaptureIconSize:  60,
		CapturePadding:   10,
	}
}

// Validate checks that every region is non-empty and on screen.
func (l Layout) Validate() error {
	if l.ScreenWidth <= 0 || l.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, l.ScreenWidth, l.ScreenHeight)
	}
	if l.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrInvalid, l.TileSize)
	}
	if l.CaptureIconSize <= 0 || l.CapturePadding < 0 {
		return fmt.Errorf("%w: capture icon %d padding %d", ErrInvalid, l.CaptureIconSize, l.CapturePadding)
	}
	screen := l.Screen()
	if !l.BoardRect().In(screen) {
		return fmt.Errorf("%w: board %v outside screen", ErrInvalid, l.BoardRect())
	}
	for _, side := range []board.Side{board.Pink, board.Blue} {
		r := l.CaptureRect(side)
		if r.Empty() || !r.In(screen) {
			return fmt.Errorf("%w: %s capture box %v outside screen", ErrInvalid, side, r)
		}
	}
	if need := 2*l.CapturePadding + ledger.WindowSize*l.CaptureIconSize; need > l.CaptureBoxWidth {
		return fmt.Errorf("%w: capture box width %d < %d", ErrInvalid, l.CaptureBoxWidth, need)
	}
	if l.CaptureIconSize > l.CaptureBoxHeight {
		return fmt.Errorf("%w: capture icon taller than box", ErrInvalid)
	}
	if l.CaptureRect(board.Pink).Overlaps(l.CaptureRect(board.Blue)) {
		return fmt.Errorf("%w: capture boxes overlap", ErrInvalid)
	}
	return nil
}

func (l Layout) Screen() image.Rectangle {
	return image.Rect(0, 0, l.ScreenWidth, l.ScreenHeight)
}

func (l Layout) BoardRect() image.Rectangle {
	edge := board.Size * l.TileSize
	return image.Rect(l.BoardX, l.BoardY, l.BoardX+edge, l.BoardY+edge)
}

// SquareAt maps a pixel to the board square under it.
func (l Layout) SquareAt(p image.Point) (board.Square, bool) {
	if l.TileSize <= 0 || !p.In(l.BoardRect()) {
		return board.Square{}, false
	}
	return board.Sq((p.Y-l.BoardY)/l.TileSize, (p.X-l.BoardX)/l.TileSize), true
}

// SquareRect is the pixel rectangle of sq.
func (l Layout) SquareRect(sq board.Square) image.Rectangle {
	x := l.BoardX + sq.Col*l.TileSize
	y := l.BoardY + sq.Row*l.TileSize
	return image.Rect(x, y, x+l.TileSize, y+l.TileSize)
}

// CaptureRect is the box listing the captured pieces of side.
func (l Layout) CaptureRect(side board.Side) image.Rectangle {
	var x, y int
	switch side {
	case board.Pink:
		x, y = l.PinkCaptureX, l.PinkCaptureY
	case board.Blue:
		x, y = l.BlueCaptureX, l.BlueCaptureY
	default:
		return image.Rectangle{}
	}
	return image.Rect(x, y, x+l.CaptureBoxWidth, y+l.CaptureBoxHeight)
}

// CaptureRegionAt reports which capture box, if any, contains p.
func (l Layout) CaptureRegionAt(p image.Point) (board.Side, bool) {
	for _, side := range []board.Side{board.Pink, board.Blue} {
		if p.In(l.CaptureRect(side)) {
			return side, true
		}
	}
	return board.NoSide, false
}

// CaptureSlotRect is the icon rectangle of the i-th visible capture of side.
func (l Layout) CaptureSlotRect(side board.Side, i int) image.Rectangle {
	box := l.CaptureRect(side)
	x := box.Min.X + l.CapturePadding + i*l.CaptureIconSize
	y := box.Min.Y + (box.Dy()-l.CaptureIconSize)/2
	return image.Rect(x, y, x+l.CaptureIconSize, y+l.CaptureIconSize)
}
