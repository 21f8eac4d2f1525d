package board

import (
	"fmt"

	nchess "github.com/corentings/chess/v2"
)

// Size is the edge length of the board.
const Size = 8

// Side identifies one of the two players.
type Side int8

const (
	NoSide Side = iota
	Pink
	Blue
)

func (s Side) String() string {
	switch s {
	case Pink:
		return "pink"
	case Blue:
		return "blue"
	default:
		return "none"
	}
}

// Opponent returns the other side. NoSide has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case Pink:
		return Blue
	case Blue:
		return Pink
	default:
		return NoSide
	}
}

// Direction is the row delta of a forward pawn step: Pink moves toward row 0.
func (s Side) Direction() int {
	if s == Pink {
		return -1
	}
	return 1
}

// HomeRow is the pawn starting row for the side.
func (s Side) HomeRow() int {
	if s == Pink {
		return 6
	}
	return 1
}

// Kind is a piece type.
type Kind int8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Kinds lists every real piece kind in a stable order.
var Kinds = []Kind{Pawn, Knight, Bishop, Rook, Queen, King}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Letter is the upper-case notation letter of the kind.
func (k Kind) Letter() byte {
	switch k {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return '.'
	}
}

// Piece is a (Side, Kind) pair. The zero value is NoPiece.
type Piece struct {
	Side Side
	Kind Kind
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// NewPiece builds a piece value.
func NewPiece(side Side, kind Kind) Piece {
	return Piece{Side: side, Kind: kind}
}

// IsZero reports whether p is NoPiece.
func (p Piece) IsZero() bool {
	return p.Kind == NoKind || p.Side == NoSide
}

// Letter returns the notation letter: upper case for Pink, lower case for Blue.
func (p Piece) Letter() byte {
	if p.IsZero() {
		return '.'
	}
	l := p.Kind.Letter()
	if p.Side == Blue {
		l += 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	if p.IsZero() {
		return "none"
	}
	return p.Side.String() + "_" + p.Kind.String()
}

// Mirror swaps the side of the piece.
func (p Piece) Mirror() Piece {
	if p.IsZero() {
		return NoPiece
	}
	return Piece{Side: p.Side.Opponent(), Kind: p.Kind}
}

// Square is a board cell. Row 0 is Blue's back rank.
type Square struct {
	Row int
	Col int
}

// Sq is shorthand for Square{Row: row, Col: col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// Mirror reflects the square across the horizontal midline.
func (s Square) Mirror() Square {
	return Square{Row: Size - 1 - s.Row, Col: s.Col}
}

// String returns the algebraic name (a8 for row 0, col 0).
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return toNChessSquare(s).String()
}

func toNChessSquare(s Square) nchess.Square {
	return nchess.NewSquare(nchess.File(s.Col), nchess.Rank(Size-1-s.Row))
}

func toNChessPiece(p Piece) nchess.Piece {
	if p.IsZero() {
		return nchess.NoPiece
	}
	color := nchess.White
	if p.Side == Blue {
		color = nchess.Black
	}
	var pt nchess.PieceType
	switch p.Kind {
	case Pawn:
		pt = nchess.Pawn
	case Knight:
		pt = nchess.Knight
	case Bishop:
		pt = nchess.Bishop
	case Rook:
		pt = nchess.Rook
	case Queen:
		pt = nchess.Queen
	case King:
		pt = nchess.King
	}
	return nchess.NewPiece(pt, color)
}
