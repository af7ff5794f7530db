package cli

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/Sanmeet007/palette-vision/internal/palette"
)

// swatchTileSize is the edge length, in pixels, of each square palette tile.
const swatchTileSize = 64

// buildSwatch renders the palette as a horizontal strip, one tile per entry
// in rank order.
func buildSwatch(entries []palette.Entry, tileSize int) (*image.RGBA, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	if tileSize < 1 {
		tileSize = swatchTileSize
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(entries), tileSize))
	for i, e := range entries {
		tile := image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize)
		fill := color.RGBA{R: e.Color.R, G: e.Color.G, B: e.Color.B, A: 255}
		draw.Draw(img, tile, &image.Uniform{C: fill}, image.Point{}, draw.Src)
	}
	return img, nil
}

// writeSwatch renders the palette strip and saves it as a PNG.
func writeSwatch(entries []palette.Entry, tileSize int, path string) error {
	img, err := buildSwatch(entries, tileSize)
	if err != nil {
		return err
	}
	return imgio.Save(path, img, imgio.PNGEncoder())
}
