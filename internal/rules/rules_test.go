package rules

import (
	"math/rand/v2"
	"testing"

	"github.com/park285/neonchess/internal/board"
)

func mustRows(t *testing.T, rows [board.Size]string) *board.Board {
	t.Helper()
	b, err := board.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	return b
}

func pieceAt(t *testing.T, b *board.Board, sq board.Square) board.Piece {
	t.Helper()
	p, ok := b.Get(sq)
	if !ok {
		t.Fatalf("no piece at %v", sq)
	}
	return p
}

func TestStandardOpeningMoves(t *testing.T) {
	b := board.NewStandard()
	tests := []struct {
		name string
		from board.Square
		to   board.Square
		want bool
	}{
		{"pink pawn single step", board.Sq(6, 4), board.Sq(5, 4), true},
		{"pink pawn double step", board.Sq(6, 4), board.Sq(4, 4), true},
		{"pink pawn triple step", board.Sq(6, 4), board.Sq(3, 4), false},
		{"pink pawn backwards", board.Sq(6, 4), board.Sq(7, 4), false},
		{"pink pawn empty diagonal", board.Sq(6, 4), board.Sq(5, 5), false},
		{"blue pawn double step", board.Sq(1, 3), board.Sq(3, 3), true},
		{"blue pawn wrong direction", board.Sq(1, 3), board.Sq(0, 3), false},
		{"pink knight jumps", board.Sq(7, 1), board.Sq(5, 2), true},
		{"pink knight onto own pawn", board.Sq(7, 1), board.Sq(6, 3), false},
		{"blue knight jumps", board.Sq(0, 6), board.Sq(2, 5), true},
		{"rook blocked by own pawn", board.Sq(7, 0), board.Sq(5, 0), false},
		{"bishop blocked", board.Sq(7, 2), board.Sq(5, 4), false},
		{"queen blocked", board.Sq(7, 3), board.Sq(4, 3), false},
		{"king onto own piece", board.Sq(7, 4), board.Sq(6, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pieceAt(t, b, tt.from)
			if got := IsLegal(b, tt.from, tt.to, p); got != tt.want {
				t.Fatalf("IsLegal(%v->%v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSameSquareAlwaysIllegal(t *testing.T) {
	b := board.NewStandard()
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Sq(row, col)
			for _, side := range []board.Side{board.Pink, board.Blue} {
				for _, k := range board.Kinds {
					if IsLegal(b, sq, sq, board.NewPiece(side, k)) {
						t.Fatalf("%v %s %s: null move accepted", sq, side, k)
					}
				}
			}
		}
	}
}

func TestPawnRules(t *testing.T) {
	b := mustRows(t, [board.Size]string{
		"........",
		"...p....",
		"...N....",
		"........",
		"....p...",
		"...P.n..",
		"P.......",
		"........",
	})
	pinkPawn := board.NewPiece(board.Pink, board.Pawn)
	bluePawn := board.NewPiece(board.Blue, board.Pawn)

	if IsLegal(b, board.Sq(1, 3), board.Sq(2, 3), bluePawn) {
		t.Fatalf("pawn cannot advance onto an occupied square")
	}
	if IsLegal(b, board.Sq(1, 3), board.Sq(3, 3), bluePawn) {
		t.Fatalf("double step must not jump over a piece")
	}
	if IsLegal(b, board.Sq(1, 3), board.Sq(2, 4), bluePawn) {
		t.Fatalf("diagonal onto an empty square must be illegal")
	}
	if !IsLegal(b, board.Sq(5, 3), board.Sq(4, 4), pinkPawn) {
		t.Fatalf("pink pawn should capture diagonally forward")
	}
	if IsLegal(b, board.Sq(5, 3), board.Sq(6, 4), pinkPawn) {
		t.Fatalf("pink pawn cannot step diagonally backwards")
	}
	if !IsLegal(b, board.Sq(4, 4), board.Sq(5, 3), bluePawn) {
		t.Fatalf("blue pawn should capture toward row 7")
	}
	if IsLegal(b, board.Sq(5, 3), board.Sq(3, 3), pinkPawn) {
		t.Fatalf("double step only from the home row")
	}
	if !IsLegal(b, board.Sq(6, 0), board.Sq(4, 0), pinkPawn) {
		t.Fatalf("home-row double step over empty squares should be legal")
	}
	if IsLegal(b, board.Sq(5, 3), board.Sq(4, 2), pinkPawn) {
		t.Fatalf("diagonal without a target is not a capture")
	}
}

func TestLeapersIgnoreBlockers(t *testing.T) {
	b := board.NewStandard()
	knight := pieceAt(t, b, board.Sq(7, 6))
	if !IsLegal(b, board.Sq(7, 6), board.Sq(5, 5), knight) {
		t.Fatalf("knight must jump over the pawn wall")
	}
	king := board.NewPiece(board.Pink, board.King)
	empty := board.NewEmpty()
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			to := board.Sq(4+dr, 4+dc)
			want := max(abs(dr), abs(dc)) == 1
			if got := IsLegal(empty, board.Sq(4, 4), to, king); got != want {
				t.Fatalf("king (%d,%d): got %v want %v", dr, dc, got, want)
			}
		}
	}
}

func TestSlidingPiecesBlocked(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for iter := 0; iter < 200; iter++ {
		b := randomBoard(rng)
		for _, kind := range []board.Kind{board.Bishop, board.Rook, board.Queen} {
			from := board.Sq(rng.IntN(board.Size), rng.IntN(board.Size))
			piece := board.NewPiece(board.Pink, kind)
			for row := 0; row < board.Size; row++ {
				for col := 0; col < board.Size; col++ {
					to := board.Sq(row, col)
					if !IsLegal(b, from, to, piece) {
						continue
					}
					for _, mid := range between(from, to) {
						if b.Occupied(mid) {
							t.Fatalf("%s %v->%v accepted through occupied %v", kind, from, to, mid)
						}
					}
				}
			}
		}
	}
}

func TestMirrorSymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	boards := []*board.Board{board.NewStandard()}
	for i := 0; i < 40; i++ {
		boards = append(boards, randomBoard(rng))
	}
	for _, b := range boards {
		m := b.Mirror()
		for fr := 0; fr < board.Size; fr++ {
			for fc := 0; fc < board.Size; fc++ {
				from := board.Sq(fr, fc)
				for _, side := range []board.Side{board.Pink, board.Blue} {
					for _, kind := range board.Kinds {
						p := board.NewPiece(side, kind)
						for tr := 0; tr < board.Size; tr++ {
							for tc := 0; tc < board.Size; tc++ {
								to := board.Sq(tr, tc)
								got := IsLegal(b, from, to, p)
								mirrored := IsLegal(m, from.Mirror(), to.Mirror(), p.Mirror())
								if got != mirrored {
									t.Fatalf("%v %v->%v: %v, mirrored %v", p, from, to, got, mirrored)
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestDestinations(t *testing.T) {
	b := board.NewStandard()
	got := Destinations(b, board.Sq(7, 1))
	if len(got) != 2 {
		t.Fatalf("expected 2 knight destinations, got %v", got)
	}
	if d := Destinations(b, board.Sq(4, 4)); d != nil {
		t.Fatalf("empty square should have no destinations, got %v", d)
	}
	if d := Destinations(b, board.Sq(9, 9)); d != nil {
		t.Fatalf("off-board square should have no destinations, got %v", d)
	}
}

func TestOffBoardIsIllegal(t *testing.T) {
	b := board.NewStandard()
	p := board.NewPiece(board.Pink, board.Queen)
	if IsLegal(b, board.Sq(7, 3), board.Sq(-1, 3), p) || IsLegal(b, board.Sq(8, 3), board.Sq(5, 3), p) {
		t.Fatalf("off-board endpoints must be rejected")
	}
}

func randomBoard(rng *rand.Rand) *board.Board {
	b := board.NewEmpty()
	n := 6 + rng.IntN(20)
	for i := 0; i < n; i++ {
		side := board.Pink
		if rng.IntN(2) == 1 {
			side = board.Blue
		}
		kind := board.Kinds[rng.IntN(len(board.Kinds))]
		b.Set(board.Sq(rng.IntN(board.Size), rng.IntN(board.Size)), board.NewPiece(side, kind))
	}
	return b
}

func between(from, to board.Square) []board.Square {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	steps := max(abs(dr), abs(dc))
	var out []board.Square
	for i := 1; i < steps; i++ {
		out = append(out, board.Sq(from.Row+i*sign(dr), from.Col+i*sign(dc)))
	}
	return out
}
