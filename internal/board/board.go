package board

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// Board is an 8x8 row-major grid of pieces.
type Board struct {
	cells [Size][Size]Piece
}

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandard returns the standard starting layout: Blue on rows 0-1, Pink on rows 6-7.
func NewStandard() *Board {
	b := &Board{}
	for col := 0; col < Size; col++ {
		b.cells[0][col] = NewPiece(Blue, backRank[col])
		b.cells[1][col] = NewPiece(Blue, Pawn)
		b.cells[6][col] = NewPiece(Pink, Pawn)
		b.cells[7][col] = NewPiece(Pink, backRank[col])
	}
	return b
}

// NewEmpty returns a board without pieces.
func NewEmpty() *Board {
	return &Board{}
}

func mustValid(sq Square) {
	if !sq.Valid() {
		panic(fmt.Sprintf("board: square %v out of range", sq))
	}
}

// Get returns the occupant of sq and whether the square is occupied.
func (b *Board) Get(sq Square) (Piece, bool) {
	mustValid(sq)
	p := b.cells[sq.Row][sq.Col]
	return p, !p.IsZero()
}

// Occupied reports whether sq holds a piece.
func (b *Board) Occupied(sq Square) bool {
	_, ok := b.Get(sq)
	return ok
}

// Set overwrites the occupant of sq. Set(sq, NoPiece) clears it.
func (b *Board) Set(sq Square, p Piece) {
	mustValid(sq)
	if p.IsZero() {
		p = NoPiece
	}
	b.cells[sq.Row][sq.Col] = p
}

// Move relocates the occupant of from onto to and clears from. When to was
// occupied the displaced piece is returned with ok set. No legality is checked.
func (b *Board) Move(from, to Square) (captured Piece, ok bool) {
	mustValid(from)
	mustValid(to)
	captured, ok = b.Get(to)
	mover := b.cells[from.Row][from.Col]
	b.cells[from.Row][from.Col] = NoPiece
	b.cells[to.Row][to.Col] = mover
	return captured, ok
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	n := 0
	for row := range b.cells {
		for col := range b.cells[row] {
			if !b.cells[row][col].IsZero() {
				n++
			}
		}
	}
	return n
}

// CountOf returns how many copies of p are on the board.
func (b *Board) CountOf(p Piece) int {
	n := 0
	for row := range b.cells {
		for col := range b.cells[row] {
			if b.cells[row][col] == p {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Mirror returns the board reflected across the horizontal midline with the
// sides of all pieces swapped.
func (b *Board) Mirror() *Board {
	m := &Board{}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			m.cells[Size-1-row][col] = b.cells[row][col].Mirror()
		}
	}
	return m
}

// Rows returns one string per row in letter notation, '.' for empty squares.
func (b *Board) Rows() [Size]string {
	var out [Size]string
	for row := 0; row < Size; row++ {
		var sb strings.Builder
		for col := 0; col < Size; col++ {
			sb.WriteByte(b.cells[row][col].Letter())
		}
		out[row] = sb.String()
	}
	return out
}

// FEN returns the piece-placement field with Pink as White.
func (b *Board) FEN() string {
	m := make(map[nchess.Square]nchess.Piece, Size*Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.cells[row][col]
			if p.IsZero() {
				continue
			}
			m[toNChessSquare(Sq(row, col))] = toNChessPiece(p)
		}
	}
	return nchess.NewBoard(m).String()
}

// ParseRows builds a board from row strings in letter notation. It is the
// inverse of Rows and is mainly used to set up positions.
func ParseRows(rows [Size]string) (*Board, error) {
	b := &Board{}
	for row, line := range rows {
		if len(line) != Size {
			return nil, fmt.Errorf("row %d: want %d squares, got %d", row, Size, len(line))
		}
		for col := 0; col < Size; col++ {
			p, err := pieceFromLetter(line[col])
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			b.cells[row][col] = p
		}
	}
	return b, nil
}

func pieceFromLetter(c byte) (Piece, error) {
	if c == '.' {
		return NoPiece, nil
	}
	side := Pink
	upper := c
	if c >= 'a' && c <= 'z' {
		side = Blue
		upper = c - ('a' - 'A')
	}
	for _, k := range Kinds {
		if k.Letter() == upper {
			return NewPiece(side, k), nil
		}
	}
	return NoPiece, fmt.Errorf("unknown piece letter %q", c)
}
