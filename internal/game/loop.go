package game

import (
	"context"
	"fmt"
)

// Screen presents frames and delivers input in batches.
type Screen interface {
	Present(ctx context.Context, snap Snapshot) error
	// Poll blocks until the next batch of input is available.
	Poll(ctx context.Context) ([]Event, error)
}

// Run drives the render-then-poll loop until the controller is told to quit
// or ctx is cancelled. Frames are presented only when the state changed.
func Run(ctx context.Context, c *Controller, s Screen) error {
	presented := false
	var last uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !presented || c.Version() != last {
			if err := s.Present(ctx, c.Snapshot()); err != nil {
				return fmt.Errorf("present frame: %w", err)
			}
			presented, last = true, c.Version()
		}

		events, err := s.Poll(ctx)
		if err != nil {
			return fmt.Errorf("poll input: %w", err)
		}
		for _, ev := range events {
			c.Handle(ev)
			if c.Done() {
				return nil
			}
		}
	}
}
