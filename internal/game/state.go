package game

import (
	"image"

	"github.com/park285/neonchess/internal/board"
	"github.com/park285/neonchess/internal/ledger"
)

// GameState is the board plus whose turn it is and the highlighted square.
type GameState struct {
	Board       *board.Board
	Turn        board.Side
	Selected    board.Square
	HasSelected bool
}

// NewGameState returns the standard starting position with Pink to move.
func NewGameState() *GameState {
	return &GameState{Board: board.NewStandard(), Turn: board.Pink}
}

// DragState is the piece currently held under the pointer.
type DragState struct {
	Piece  board.Piece
	Origin board.Square
	Pos    image.Point
}

// CaptureView is the read-only state of one side's capture ledger.
type CaptureView struct {
	Pieces   []board.Piece
	Visible  []board.Piece
	Offset   int
	Material int
}

// Snapshot is an immutable copy of everything a renderer needs for one frame.
type Snapshot struct {
	SessionID string
	Version   uint64

	Board       *board.Board
	Turn        board.Side
	Selected    board.Square
	HasSelected bool

	Drag     DragState
	Dragging bool
	// Hints are the legal destinations of the dragged piece, filled only when
	// hints are enabled.
	Hints []board.Square

	Pink CaptureView
	Blue CaptureView
}

// Captures returns the capture view of side.
func (s Snapshot) Captures(side board.Side) CaptureView {
	if side == board.Blue {
		return s.Blue
	}
	return s.Pink
}

func captureView(l *ledger.Ledger, side board.Side) CaptureView {
	return CaptureView{
		Pieces:   l.Pieces(side),
		Visible:  l.Visible(side),
		Offset:   l.Offset(side),
		Material: l.Material(side),
	}
}
