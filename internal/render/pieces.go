package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/park285/neonchess/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceFiles embed.FS

var (
	neonPink = color.NRGBA{R: 255, G: 64, B: 200, A: 255}
	neonBlue = color.NRGBA{R: 0, G: 255, B: 246, A: 255}
)

func sideColor(side board.Side) color.NRGBA {
	if side == board.Blue {
		return neonBlue
	}
	return neonPink
}

type pieceCacheKey struct {
	piece board.Piece
	size  int
}

// pieceCache holds rasterized sprites shared by every renderer.
type pieceCache struct {
	mu     sync.RWMutex
	images map[pieceCacheKey]*image.RGBA
}

var sprites = &pieceCache{images: map[pieceCacheKey]*image.RGBA{}}

func (c *pieceCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// get returns the sprite of piece at size x size pixels, rasterizing it on
// first use.
func (c *pieceCache) get(piece board.Piece, size int) (*image.RGBA, error) {
	if piece.IsZero() || size <= 0 {
		return nil, fmt.Errorf("no sprite for %s at %dpx", piece, size)
	}
	key := pieceCacheKey{piece: piece, size: size}

	c.mu.RLock()
	if img, ok := c.images[key]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := rasterizePiece(piece, size)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if prev, ok := c.images[key]; ok {
		img = prev
	} else {
		c.images[key] = img
	}
	c.mu.Unlock()
	return img, nil
}

func rasterizePiece(piece board.Piece, size int) (*image.RGBA, error) {
	name := pieceAssetName(piece.Kind)
	data, err := pieceFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", name, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(tintSVG(data, sideColor(piece.Side))))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg %s: %w", name, err)
	}
	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

func pieceAssetName(kind board.Kind) string {
	return fmt.Sprintf("assets/pieces/%s.svg", kind)
}
