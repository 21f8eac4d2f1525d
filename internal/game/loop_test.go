package game

import (
	"context"
	"errors"
	"testing"

	"github.com/park285/neonchess/internal/board"
)

type fakeScreen struct {
	batches  [][]Event
	frames   []Snapshot
	pollErr  error
	presents int
}

func (f *fakeScreen) Present(_ context.Context, snap Snapshot) error {
	f.presents++
	f.frames = append(f.frames, snap)
	return nil
}

func (f *fakeScreen) Poll(ctx context.Context) ([]Event, error) {
	if len(f.batches) == 0 {
		if f.pollErr != nil {
			return nil, f.pollErr
		}
		return nil, ctx.Err()
	}
	next := f.batches[0]
	f.batches = f.batches[1:]
	return next, nil
}

func TestRunPlaysUntilClose(t *testing.T) {
	c := newTestController(t)
	from, to := board.Sq(6, 4), board.Sq(4, 4)
	s := &fakeScreen{batches: [][]Event{
		{PointerDown{Pos: center(from), Button: ButtonPrimary}},
		{},
		{PointerUp{Pos: center(to), Button: ButtonPrimary}},
		{Close{}, PointerDown{Pos: center(board.Sq(1, 4)), Button: ButtonPrimary}},
	}}
	if err := Run(context.Background(), c, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !c.Done() {
		t.Fatalf("controller should be done")
	}
	if c.Dragging() {
		t.Fatalf("events after close must not be handled")
	}
	// initial frame, pick up, move; the empty batch changes nothing
	if s.presents != 3 {
		t.Fatalf("expected 3 frames, got %d", s.presents)
	}
	if last := s.frames[len(s.frames)-1]; last.Turn != board.Blue {
		t.Fatalf("last frame should show blue to move")
	}
}

func TestRunReturnsPollError(t *testing.T) {
	boom := errors.New("boom")
	s := &fakeScreen{pollErr: boom}
	err := Run(context.Background(), newTestController(t), s)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped poll error, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, newTestController(t), &fakeScreen{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
