package ledger

import "github.com/park285/neonchess/internal/board"

// WindowSize is the number of capture icons visible at once.
const WindowSize = 6

var pieceValues = map[board.Kind]int{
	board.Pawn:   1,
	board.Knight: 3,
	board.Bishop: 3,
	board.Rook:   5,
	board.Queen:  9,
}

// Ledger records captured pieces per side, keyed by the side that owned the
// captured piece, together with a scroll offset into each list.
type Ledger struct {
	pieces map[board.Side][]board.Piece
	offset map[board.Side]int
}

// New returns an empty ledger with both offsets at zero.
func New() *Ledger {
	return &Ledger{
		pieces: map[board.Side][]board.Piece{board.Pink: nil, board.Blue: nil},
		offset: map[board.Side]int{board.Pink: 0, board.Blue: 0},
	}
}

// Append records p in the list of p's own side.
func (l *Ledger) Append(p board.Piece) {
	if p.IsZero() {
		return
	}
	l.pieces[p.Side] = append(l.pieces[p.Side], p)
	l.clamp(p.Side)
}

// ScrollUp moves the window one entry toward the oldest capture.
func (l *Ledger) ScrollUp(side board.Side) bool {
	if !known(side) {
		return false
	}
	before := l.offset[side]
	l.offset[side] = before - 1
	l.clamp(side)
	return l.offset[side] != before
}

// ScrollDown moves the window one entry toward the newest capture.
func (l *Ledger) ScrollDown(side board.Side) bool {
	if !known(side) {
		return false
	}
	before := l.offset[side]
	l.offset[side] = before + 1
	l.clamp(side)
	return l.offset[side] != before
}

// Visible returns the pieces inside the current window.
func (l *Ledger) Visible(side board.Side) []board.Piece {
	list := l.pieces[side]
	start := l.offset[side]
	end := min(start+WindowSize, len(list))
	return append([]board.Piece(nil), list[start:end]...)
}

// Pieces returns a copy of the full capture list for side.
func (l *Ledger) Pieces(side board.Side) []board.Piece {
	return append([]board.Piece(nil), l.pieces[side]...)
}

// Len is the number of pieces side has lost.
func (l *Ledger) Len(side board.Side) int { return len(l.pieces[side]) }

// Offset is the index of the first visible entry for side.
func (l *Ledger) Offset(side board.Side) int { return l.offset[side] }

// MaxOffset is the largest valid scroll offset for side.
func (l *Ledger) MaxOffset(side board.Side) int {
	return max(0, len(l.pieces[side])-WindowSize)
}

// Material is the point value of everything side has lost.
func (l *Ledger) Material(side board.Side) int {
	total := 0
	for _, p := range l.pieces[side] {
		total += pieceValues[p.Kind]
	}
	return total
}

func (l *Ledger) clamp(side board.Side) {
	l.offset[side] = min(max(l.offset[side], 0), l.MaxOffset(side))
}

func known(side board.Side) bool {
	return side == board.Pink || side == board.Blue
}
