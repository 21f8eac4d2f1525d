package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/neonchess/internal/board"
	"github.com/park285/neonchess/internal/layout"
	"github.com/park285/neonchess/internal/ledger"
	"github.com/park285/neonchess/internal/rules"
)

// Controller turns input events into validated game state transitions. It is
// the only writer of the board and the capture ledger and is not safe for
// concurrent use.
type Controller struct {
	state    *GameState
	captures *ledger.Ledger
	drag     *DragState

	layout    layout.Layout
	showHints bool
	logger    *zap.Logger
	sessionID string

	version uint64
	quit    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithHints makes snapshots carry the legal destinations of the dragged piece.
func WithHints(on bool) Option {
	return func(c *Controller) { c.showHints = on }
}

// WithState starts from the given position instead of the standard one.
func WithState(s *GameState) Option {
	return func(c *Controller) {
		if s != nil && s.Board != nil {
			c.state = s
		}
	}
}

// WithSessionID replaces the generated session id. Empty ids are ignored.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.sessionID = id
		}
	}
}

// NewController starts a session on the standard position with Pink to move.
func NewController(lay layout.Layout, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		state:     NewGameState(),
		captures:  ledger.New(),
		layout:    lay,
		logger:    logger,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("session_id", c.sessionID))
	return c
}

// SessionID identifies the session in logs and snapshots.
func (c *Controller) SessionID() string { return c.sessionID }

// Done reports whether a quit or close request ended the session.
func (c *Controller) Done() bool { return c.quit }

// Turn is the side to move.
func (c *Controller) Turn() board.Side { return c.state.Turn }

// Dragging reports whether a piece is currently held.
func (c *Controller) Dragging() bool { return c.drag != nil }

// Version changes whenever the visible state changes.
func (c *Controller) Version() uint64 { return c.version }

// Handle applies one event and reports what it did. Events after a quit are
// ignored.
func (c *Controller) Handle(ev Event) Outcome {
	if c.quit {
		return OutcomeNone
	}
	var out Outcome
	switch e := ev.(type) {
	case PointerDown:
		out = c.pointerDown(e)
	case PointerMove:
		out = c.pointerMove(e)
	case PointerUp:
		out = c.pointerUp(e)
	case Scroll:
		out = c.scroll(e)
	case KeyDown:
		if e.Key == KeyEscape {
			out = c.terminate("escape")
		}
	case Close:
		out = c.terminate("close")
	}
	if out != OutcomeNone {
		c.version++
	}
	return out
}

func (c *Controller) pointerDown(e PointerDown) Outcome {
	if e.Button != ButtonPrimary || c.drag != nil {
		return OutcomeNone
	}
	sq, ok := c.layout.SquareAt(e.Pos)
	if !ok {
		return OutcomeNone
	}
	piece, ok := c.state.Board.Get(sq)
	if !ok || piece.Side != c.state.Turn {
		return OutcomeNone
	}
	c.drag = &DragState{Piece: piece, Origin: sq, Pos: e.Pos}
	c.state.Selected, c.state.HasSelected = sq, true
	c.logger.Debug("piece picked up",
		zap.String("piece", piece.String()),
		zap.String("from", sq.String()),
	)
	return OutcomePickedUp
}

func (c *Controller) pointerMove(e PointerMove) Outcome {
	if c.drag == nil || c.drag.Pos == e.Pos {
		return OutcomeNone
	}
	c.drag.Pos = e.Pos
	return OutcomeDragged
}

func (c *Controller) pointerUp(e PointerUp) Outcome {
	if e.Button != ButtonPrimary || c.drag == nil {
		return OutcomeNone
	}
	drag := *c.drag
	c.endDrag()

	target, ok := c.layout.SquareAt(e.Pos)
	if !ok {
		c.logger.Debug("move rejected",
			zap.String("piece", drag.Piece.String()),
			zap.String("from", drag.Origin.String()),
			zap.String("reason", "off_board"),
			zap.String("fen", c.state.Board.FEN()),
		)
		return OutcomeRejected
	}
	if !rules.IsLegal(c.state.Board, drag.Origin, target, drag.Piece) {
		c.logger.Debug("move rejected",
			zap.String("piece", drag.Piece.String()),
			zap.String("from", drag.Origin.String()),
			zap.String("to", target.String()),
			zap.String("reason", "illegal"),
			zap.String("fen", c.state.Board.FEN()),
		)
		return OutcomeRejected
	}

	captured, took := c.state.Board.Move(drag.Origin, target)
	if took {
		c.captures.Append(captured)
	}
	c.state.Turn = c.state.Turn.Opponent()

	fields := []zap.Field{
		zap.String("piece", drag.Piece.String()),
		zap.String("from", drag.Origin.String()),
		zap.String("to", target.String()),
		zap.String("turn", c.state.Turn.String()),
		zap.String("fen", c.state.Board.FEN()),
	}
	if took {
		fields = append(fields, zap.String("captured", captured.String()))
		c.logger.Info("move accepted", fields...)
		return OutcomeCaptured
	}
	c.logger.Info("move accepted", fields...)
	return OutcomeMoved
}

func (c *Controller) scroll(e Scroll) Outcome {
	side, ok := c.layout.CaptureRegionAt(e.Pos)
	if !ok {
		return OutcomeNone
	}
	var moved bool
	switch e.Dir {
	case ScrollUp:
		moved = c.captures.ScrollUp(side)
	case ScrollDown:
		moved = c.captures.ScrollDown(side)
	}
	if !moved {
		return OutcomeNone
	}
	return OutcomeScrolled
}

func (c *Controller) terminate(reason string) Outcome {
	if c.drag != nil {
		c.logger.Debug("drag discarded on quit", zap.String("from", c.drag.Origin.String()))
	}
	c.endDrag()
	c.quit = true
	c.logger.Info("session ended", zap.String("reason", reason))
	return OutcomeQuit
}

func (c *Controller) endDrag() {
	c.drag = nil
	c.state.HasSelected = false
	c.state.Selected = board.Square{}
}

// Snapshot copies the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		SessionID:   c.sessionID,
		Version:     c.version,
		Board:       c.state.Board.Clone(),
		Turn:        c.state.Turn,
		Selected:    c.state.Selected,
		HasSelected: c.state.HasSelected,
		Pink:        captureView(c.captures, board.Pink),
		Blue:        captureView(c.captures, board.Blue),
	}
	if c.drag != nil {
		s.Drag = *c.drag
		s.Dragging = true
		if c.showHints {
			s.Hints = rules.Destinations(c.state.Board, c.drag.Origin)
		}
	}
	return s
}
