// Package render draws game snapshots into images.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/park285/neonchess/internal/board"
	"github.com/park285/neonchess/internal/game"
	"github.com/park285/neonchess/internal/layout"
	"github.com/park285/neonchess/internal/ledger"
	"github.com/park285/neonchess/internal/msgcat"
)

const (
	panelRadius     = 12
	panelHeight     = 80
	panelGap        = 35
	turnPanelWidth  = 300
	turnPanelHeight = 60
	turnPanelGap    = 65
	borderWidth     = 4
	labelGap        = 20
	stripHeight     = 22
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	lightTile       = color.RGBA{44, 38, 78, 255}
	darkTile        = color.RGBA{20, 16, 42, 255}
	borderColor     = color.NRGBA{R: 0, G: 255, B: 246, A: 200}
	labelColor      = color.NRGBA{R: 0, G: 255, B: 246, A: 255}
	panelColor      = color.NRGBA{R: 28, G: 31, B: 46, A: 250}
	shadowColor     = color.NRGBA{0, 0, 0, 50}
	textPrimary     = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	textMuted       = color.NRGBA{R: 150, G: 156, B: 190, A: 255}
)

// Renderer draws snapshots at the pixel geometry of its layout.
type Renderer struct {
	layout  layout.Layout
	catalog *msgcat.Catalog
	names   map[board.Side]string
	face    font.Face
	logger  *zap.Logger
}

type Option func(*Renderer)

// WithCatalog sets the message catalog used for HUD text.
func WithCatalog(c *msgcat.Catalog) Option {
	return func(r *Renderer) { r.catalog = c }
}

// WithPlayerNames sets the names shown in the player panels.
func WithPlayerNames(pink, blue string) Option {
	return func(r *Renderer) {
		if s := strings.TrimSpace(pink); s != "" {
			r.names[board.Pink] = s
		}
		if s := strings.TrimSpace(blue); s != "" {
			r.names[board.Blue] = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

func New(lay layout.Layout, opts ...Option) *Renderer {
	r := &Renderer{
		layout: lay,
		names:  map[board.Side]string{board.Pink: "Pink", board.Blue: "Blue"},
		face:   basicfont.Face7x13,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Layout() layout.Layout { return r.layout }

// RenderPNG renders snap and encodes it as PNG.
func (r *Renderer) RenderPNG(ctx context.Context, snap game.Snapshot) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img, err := r.Render(snap)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	r.logger.Debug("frame encoded",
		zap.String("session_id", snap.SessionID),
		zap.Uint64("version", snap.Version),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// Render draws one full frame.
func (r *Renderer) Render(snap game.Snapshot) (*image.RGBA, error) {
	if snap.Board == nil {
		return nil, fmt.Errorf("snapshot has no board")
	}
	img := image.NewRGBA(r.layout.Screen())
	if err := r.RenderInto(img, snap); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderInto draws one full frame into img, which must cover the layout's
// screen rectangle.
func (r *Renderer) RenderInto(img *image.RGBA, snap game.Snapshot) error {
	if snap.Board == nil {
		return fmt.Errorf("snapshot has no board")
	}
	if !r.layout.Screen().In(img.Bounds()) {
		return fmt.Errorf("target %v does not cover screen %v", img.Bounds(), r.layout.Screen())
	}
	fillRect(img, img.Bounds(), backgroundColor)

	r.drawTiles(img, snap)
	r.drawHints(img, snap)
	r.drawBorder(img)
	r.drawLabels(img)
	if err := r.drawPieces(img, snap); err != nil {
		return err
	}
	r.drawPlayerPanels(img, snap.Turn)
	r.drawTurnPanel(img, snap)
	for _, side := range []board.Side{board.Pink, board.Blue} {
		if err := r.drawCaptureBox(img, side, snap.Captures(side)); err != nil {
			return err
		}
	}
	if err := r.drawDragGhost(img, snap); err != nil {
		return err
	}
	return nil
}

func (r *Renderer) drawTiles(img *image.RGBA, snap game.Snapshot) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Sq(row, col)
			tile := lightTile
			if (row+col)%2 == 1 {
				tile = darkTile
			}
			fillRect(img, r.layout.SquareRect(sq), tile)
		}
	}
	if !snap.HasSelected {
		return
	}
	if p, ok := snap.Board.Get(snap.Selected); ok {
		highlight := sideColor(p.Side)
		highlight.A = 110
		drawSquareOverlay(img, r.layout.SquareRect(snap.Selected), highlight)
	}
}

func (r *Renderer) drawHints(img *image.RGBA, snap game.Snapshot) {
	if !snap.Dragging || len(snap.Hints) == 0 {
		return
	}
	clr := sideColor(snap.Drag.Piece.Side)
	clr.A = 150
	radius := max(r.layout.TileSize/8, 2)
	for _, sq := range snap.Hints {
		rect := r.layout.SquareRect(sq)
		center := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
		if snap.Board.Occupied(sq) {
			drawFrame(img, rect, max(r.layout.TileSize/20, 2), clr)
			continue
		}
		drawDisc(img, center, radius, clr)
	}
}

func (r *Renderer) drawBorder(img *image.RGBA) {
	drawFrame(img, r.layout.BoardRect().Inset(-borderWidth), borderWidth, borderColor)
}

// drawLabels writes rank digits left of the board and file letters below it.
func (r *Renderer) drawLabels(img *image.RGBA) {
	drawer := &font.Drawer{Dst: img, Face: r.face}
	rect := r.layout.BoardRect()
	tile := r.layout.TileSize
	for i := 0; i < board.Size; i++ {
		name := board.Sq(i, i).String()
		rankRect := image.Rect(rect.Min.X-borderWidth-labelGap*2, rect.Min.Y+i*tile, rect.Min.X-borderWidth, rect.Min.Y+(i+1)*tile)
		fileRect := image.Rect(rect.Min.X+i*tile, rect.Max.Y+borderWidth, rect.Min.X+(i+1)*tile, rect.Max.Y+borderWidth+labelGap*2)
		drawCenteredString(drawer, rankRect, name[1:], labelColor)
		drawCenteredString(drawer, fileRect, name[:1], labelColor)
	}
}

func (r *Renderer) drawPieces(img *image.RGBA, snap game.Snapshot) error {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Sq(row, col)
			if snap.Dragging && sq == snap.Drag.Origin {
				continue
			}
			p, ok := snap.Board.Get(sq)
			if !ok {
				continue
			}
			if err := r.drawSprite(img, p, r.layout.SquareRect(sq)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) drawDragGhost(img *image.RGBA, snap game.Snapshot) error {
	if !snap.Dragging {
		return nil
	}
	half := r.layout.TileSize / 2
	topLeft := snap.Drag.Pos.Sub(image.Pt(half, half))
	rect := image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(r.layout.TileSize, r.layout.TileSize))}
	return r.drawSprite(img, snap.Drag.Piece, rect)
}

func (r *Renderer) drawSprite(img *image.RGBA, p board.Piece, rect image.Rectangle) error {
	sprite, err := sprites.get(p, rect.Dx())
	if err != nil {
		return fmt.Errorf("draw %s: %w", p, err)
	}
	imagedraw.Draw(img, rect, sprite, image.Point{}, imagedraw.Over)
	return nil
}

// panelRect is the name panel of side: Blue above the board, Pink below.
func (r *Renderer) panelRect(side board.Side) image.Rectangle {
	b := r.layout.BoardRect()
	if side == board.Blue {
		return image.Rect(b.Min.X, b.Min.Y-panelGap-panelHeight, b.Max.X, b.Min.Y-panelGap)
	}
	return image.Rect(b.Min.X, b.Max.Y+panelGap, b.Max.X, b.Max.Y+panelGap+panelHeight)
}

func (r *Renderer) drawPlayerPanels(img *image.RGBA, turn board.Side) {
	drawer := &font.Drawer{Dst: img, Face: r.face}
	for _, side := range []board.Side{board.Pink, board.Blue} {
		rect := r.panelRect(side)
		drawRoundedPanel(img, rect.Add(image.Pt(0, 6)), panelRadius, shadowColor)
		drawRoundedPanel(img, rect, panelRadius, panelColor)
		if side == turn {
			drawFrame(img, rect, 2, sideColor(side))
		}
		name := r.text("hud.player", map[string]any{"Name": r.names[side]}, r.names[side])
		name = truncateWithEllipsis(r.face, name, rect.Dx()-2*panelRadius)
		drawCenteredString(drawer, rect, name, sideColor(side))
	}
}

func (r *Renderer) drawTurnPanel(img *image.RGBA, snap game.Snapshot) {
	b := r.layout.BoardRect()
	x := b.Max.X + turnPanelGap
	rect := image.Rect(x, b.Min.Y+1, x+turnPanelWidth, b.Min.Y+1+turnPanelHeight).Intersect(r.layout.Screen())
	if rect.Dx() < 2*panelRadius {
		return
	}
	drawer := &font.Drawer{Dst: img, Face: r.face}
	drawRoundedPanel(img, rect, panelRadius, panelColor)
	drawFrame(img, rect, 2, sideColor(snap.Turn))

	name := r.names[snap.Turn]
	turn := r.text("hud.turn", map[string]any{"Name": name}, name)
	top := image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+rect.Dy()/2)
	drawCenteredString(drawer, top, truncateWithEllipsis(r.face, turn, rect.Dx()-2*panelRadius), textPrimary)

	if snap.Dragging {
		held := r.text("hud.dragging", map[string]any{
			"Piece": snap.Drag.Piece.Kind.String(),
			"From":  snap.Drag.Origin.String(),
		}, "")
		bottom := image.Rect(rect.Min.X, top.Max.Y, rect.Max.X, rect.Max.Y)
		drawCenteredString(drawer, bottom, truncateWithEllipsis(r.face, held, rect.Dx()-2*panelRadius), textMuted)
	}
}

func (r *Renderer) drawCaptureBox(img *image.RGBA, side board.Side, view game.CaptureView) error {
	box := r.layout.CaptureRect(side)
	drawRoundedPanel(img, box, panelRadius, panelColor)
	drawFrame(img, box, 2, sideColor(side))

	for i, p := range view.Visible {
		if err := r.drawSprite(img, p, r.layout.CaptureSlotRect(side, i)); err != nil {
			return err
		}
	}

	drawer := &font.Drawer{Dst: img, Face: r.face}
	top := image.Rect(box.Min.X, box.Min.Y+4, box.Max.X, box.Min.Y+4+stripHeight)
	bottom := image.Rect(box.Min.X, box.Max.Y-4-stripHeight, box.Max.X, box.Max.Y-4)
	half := box.Dx() / 2

	count := r.text("hud.captured", map[string]any{"Count": len(view.Pieces)}, fmt.Sprint(len(view.Pieces)))
	drawCenteredString(drawer, image.Rect(top.Min.X, top.Min.Y, top.Min.X+half, top.Max.Y), count, textMuted)
	if view.Material > 0 {
		material := r.text("hud.material", map[string]any{"Points": view.Material}, fmt.Sprint(view.Material))
		drawCenteredString(drawer, image.Rect(top.Min.X+half, top.Min.Y, top.Max.X, top.Max.Y), material, sideColor(side))
	}

	if view.Offset > 0 {
		up := r.text("hud.scroll_up", nil, "^")
		drawCenteredString(drawer, image.Rect(bottom.Min.X, bottom.Min.Y, bottom.Min.X+half, bottom.Max.Y), up, textPrimary)
	}
	if view.Offset+ledger.WindowSize < len(view.Pieces) {
		down := r.text("hud.scroll_down", nil, "v")
		drawCenteredString(drawer, image.Rect(bottom.Min.X+half, bottom.Min.Y, bottom.Max.X, bottom.Max.Y), down, textPrimary)
	}
	return nil
}

func (r *Renderer) text(key string, data any, fallback string) string {
	return r.catalog.RenderOr(key, data, fallback)
}
