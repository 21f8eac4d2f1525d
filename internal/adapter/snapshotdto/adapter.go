// Package snapshotdto converts between game types and their JSON forms.
package snapshotdto

import (
	"image"
	"strings"

	"github.com/park285/neonchess/internal/board"
	"github.com/park285/neonchess/internal/game"
	"github.com/park285/neonchess/pkg/boarddto"
)

// FromSnapshot converts a frame snapshot. finished marks the last frame of a
// session.
func FromSnapshot(s game.Snapshot, finished bool) *boarddto.Snapshot {
	out := &boarddto.Snapshot{
		SessionID: s.SessionID,
		Version:   s.Version,
		Turn:      s.Turn.String(),
		Captured: boarddto.CapturedPieces{
			Pink: toPieceTokenList(s.Pink.Pieces),
			Blue: toPieceTokenList(s.Blue.Pieces),
		},
		Offsets:  boarddto.ScrollOffsets{Pink: s.Pink.Offset, Blue: s.Blue.Offset},
		Material: boarddto.MaterialScore{Pink: s.Pink.Material, Blue: s.Blue.Material},
		Finished: finished,
	}
	if s.Board != nil {
		out.FEN = s.Board.FEN()
		rows := s.Board.Rows()
		out.Rows = rows[:]
	}
	if s.HasSelected {
		out.Selected = s.Selected.String()
	}
	if s.Dragging {
		out.Drag = &boarddto.Drag{
			Piece: s.Drag.Piece.String(),
			From:  s.Drag.Origin.String(),
			X:     s.Drag.Pos.X,
			Y:     s.Drag.Pos.Y,
		}
	}
	for _, sq := range s.Hints {
		out.Hints = append(out.Hints, sq.String())
	}
	return out
}

func toPieceTokenList(list []board.Piece) []string {
	tokens := make([]string, 0, len(list))
	for _, p := range list {
		tokens = append(tokens, p.String())
	}
	return tokens
}

// ToEvent decodes a client event. Unknown types and buttons report false.
func ToEvent(e boarddto.ClientEvent) (game.Event, bool) {
	pos := image.Pt(e.X, e.Y)
	switch e.Type {
	case boarddto.EventPointerDown:
		btn, ok := toButton(e.Button)
		if !ok {
			return nil, false
		}
		return game.PointerDown{Pos: pos, Button: btn}, true
	case boarddto.EventPointerMove:
		return game.PointerMove{Pos: pos}, true
	case boarddto.EventPointerUp:
		btn, ok := toButton(e.Button)
		if !ok {
			return nil, false
		}
		return game.PointerUp{Pos: pos, Button: btn}, true
	case boarddto.EventScroll:
		switch {
		case e.DeltaY < 0:
			return game.Scroll{Pos: pos, Dir: game.ScrollUp}, true
		case e.DeltaY > 0:
			return game.Scroll{Pos: pos, Dir: game.ScrollDown}, true
		}
		return nil, false
	case boarddto.EventKey:
		if strings.EqualFold(e.Key, "escape") {
			return game.KeyDown{Key: game.KeyEscape}, true
		}
		return game.KeyDown{Key: game.KeyOther}, true
	case boarddto.EventClose:
		return game.Close{}, true
	}
	return nil, false
}

func toButton(b int) (game.Button, bool) {
	switch b {
	case 0:
		return game.ButtonPrimary, true
	case 1:
		return game.ButtonMiddle, true
	case 2:
		return game.ButtonSecondary, true
	}
	return 0, false
}
