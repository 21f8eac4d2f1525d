// Package rules decides whether a single piece movement is legal.
//
// Only geometric movement and blocking are enforced: there is no notion of
// check, castling, en passant or promotion.
package rules

import "github.com/park285/neonchess/internal/board"

// IsLegal reports whether piece may move from one square to another on b.
// It never mutates b and is total over all inputs; off-board squares are
// simply illegal.
func IsLegal(b *board.Board, from, to board.Square, piece board.Piece) bool {
	if b == nil || piece.IsZero() || !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return false
	}
	target, occupied := b.Get(to)
	if occupied && target.Side == piece.Side {
		return false
	}

	dr := to.Row - from.Row
	dc := to.Col - from.Col

	switch piece.Kind {
	case board.Pawn:
		return pawnMove(b, from, dr, dc, piece.Side, occupied)
	case board.Knight:
		return knightMove(dr, dc)
	case board.Bishop:
		return diagonal(b, from, dr, dc)
	case board.Rook:
		return straight(b, from, dr, dc)
	case board.Queen:
		return diagonal(b, from, dr, dc) || straight(b, from, dr, dc)
	case board.King:
		return max(abs(dr), abs(dc)) == 1
	}
	return false
}

// Destinations lists every square the piece on from may legally move to.
func Destinations(b *board.Board, from board.Square) []board.Square {
	if b == nil || !from.Valid() {
		return nil
	}
	piece, ok := b.Get(from)
	if !ok {
		return nil
	}
	var out []board.Square
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			to := board.Sq(row, col)
			if IsLegal(b, from, to, piece) {
				out = append(out, to)
			}
		}
	}
	return out
}

func pawnMove(b *board.Board, from board.Square, dr, dc int, side board.Side, targetOccupied bool) bool {
	dir := side.Direction()
	if dc == 0 {
		if dr == dir && !targetOccupied {
			return true
		}
		if from.Row == side.HomeRow() && dr == 2*dir && !targetOccupied &&
			!b.Occupied(board.Sq(from.Row+dir, from.Col)) {
			return true
		}
	}
	// Diagonal steps only capture.
	if abs(dc) == 1 && dr == dir && targetOccupied {
		return true
	}
	return false
}

func knightMove(dr, dc int) bool {
	adr, adc := abs(dr), abs(dc)
	return (adr == 2 && adc == 1) || (adr == 1 && adc == 2)
}

func diagonal(b *board.Board, from board.Square, dr, dc int) bool {
	if dr == 0 || abs(dr) != abs(dc) {
		return false
	}
	return pathClear(b, from, dr, dc)
}

func straight(b *board.Board, from board.Square, dr, dc int) bool {
	if (dr == 0) == (dc == 0) {
		return false
	}
	return pathClear(b, from, dr, dc)
}

// pathClear walks the squares strictly between from and from+(dr,dc).
func pathClear(b *board.Board, from board.Square, dr, dc int) bool {
	stepR, stepC := sign(dr), sign(dc)
	steps := max(abs(dr), abs(dc))
	for i := 1; i < steps; i++ {
		if b.Occupied(board.Sq(from.Row+i*stepR, from.Col+i*stepC)) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
