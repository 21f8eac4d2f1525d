// Package desktop runs the game in a native window.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/park285/neonchess/internal/game"
	"github.com/park285/neonchess/internal/render"
	"github.com/park285/neonchess/internal/screen/frameinput"
)

// Window adapts a controller and renderer to ebiten.Game. Ebiten owns the
// loop here, so Update plays the role of game.Run.
type Window struct {
	ctx      context.Context
	ctrl     *game.Controller
	renderer *render.Renderer
	logger   *zap.Logger

	input frameinput.Collector
	frame *image.RGBA
	image *ebiten.Image

	drawn       bool
	lastVersion uint64
	err         error
}

func New(ctx context.Context, ctrl *game.Controller, r *render.Renderer, logger *zap.Logger) *Window {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Window{
		ctx:      ctx,
		ctrl:     ctrl,
		renderer: r,
		logger:   logger,
		frame:    image.NewRGBA(r.Layout().Screen()),
	}
}

// Update handles one frame of input.
func (w *Window) Update() error {
	if w.err != nil {
		return w.err
	}
	events := w.input.Collect(ebitenSource{})
	if w.ctx.Err() != nil {
		events = append(events, game.Close{})
	}
	for _, ev := range events {
		w.ctrl.Handle(ev)
		if w.ctrl.Done() {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw re-renders only when the controller state changed.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		b := w.frame.Bounds()
		w.image = ebiten.NewImage(b.Dx(), b.Dy())
	}
	if v := w.ctrl.Version(); !w.drawn || v != w.lastVersion {
		if err := w.renderer.RenderInto(w.frame, w.ctrl.Snapshot()); err != nil {
			w.err = fmt.Errorf("render frame: %w", err)
			w.logger.Error("render failed", zap.Error(err))
			return
		}
		w.image.WritePixels(w.frame.Pix)
		w.drawn, w.lastVersion = true, v
	}
	screen.DrawImage(w.image, nil)
}

// Layout keeps the logical screen at the layout size; ebiten scales it to
// the window.
func (w *Window) Layout(int, int) (int, int) {
	b := w.frame.Bounds()
	return b.Dx(), b.Dy()
}

// Run opens the window and blocks until the session ends.
func Run(w *Window, title string, scale float64) error {
	b := w.frame.Bounds()
	ebiten.SetWindowSize(int(float64(b.Dx())*scale), int(float64(b.Dy())*scale))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(w)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

type ebitenSource struct{}

func (ebitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenSource) JustPressed(b game.Button) bool {
	mb, ok := mouseButton(b)
	return ok && inpututil.IsMouseButtonJustPressed(mb)
}

func (ebitenSource) JustReleased(b game.Button) bool {
	mb, ok := mouseButton(b)
	return ok && inpututil.IsMouseButtonJustReleased(mb)
}

func (ebitenSource) WheelY() float64 {
	_, y := ebiten.Wheel()
	return y
}

func (ebitenSource) EscapePressed() bool { return inpututil.IsKeyJustPressed(ebiten.KeyEscape) }

func (ebitenSource) CloseRequested() bool { return ebiten.IsWindowBeingClosed() }

func mouseButton(b game.Button) (ebiten.MouseButton, bool) {
	switch b {
	case game.ButtonPrimary:
		return ebiten.MouseButtonLeft, true
	case game.ButtonSecondary:
		return ebiten.MouseButtonRight, true
	case game.ButtonMiddle:
		return ebiten.MouseButtonMiddle, true
	}
	return 0, false
}
