package cli

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sanmeet007/palette-vision/internal/palette"
)

func testPalette() []palette.Entry {
	return []palette.Entry{
		{Color: palette.RGB{R: 255}, Fraction: 0.6},
		{Color: palette.RGB{B: 255}, Fraction: 0.4},
	}
}

func TestBuildSwatch(t *testing.T) {
	img, err := buildSwatch(testPalette(), 8)
	if err != nil {
		t.Fatalf("buildSwatch: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 8 {
		t.Fatalf("swatch size: got %dx%d, want 16x8", bounds.Dx(), bounds.Dy())
	}

	if r, _, _, _ := img.At(3, 3).RGBA(); r>>8 != 255 {
		t.Errorf("first tile should be red, got %v", img.At(3, 3))
	}
	if _, _, b, _ := img.At(11, 4).RGBA(); b>>8 != 255 {
		t.Errorf("second tile should be blue, got %v", img.At(11, 4))
	}
}

func TestBuildSwatch_EmptyPalette(t *testing.T) {
	if _, err := buildSwatch(nil, 8); err == nil {
		t.Fatal("buildSwatch should fail for an empty palette")
	}
}

func TestBuildSwatch_TileSizeClamped(t *testing.T) {
	img, err := buildSwatch(testPalette(), 0)
	if err != nil {
		t.Fatalf("buildSwatch: %v", err)
	}
	if got := img.Bounds().Dy(); got != swatchTileSize {
		t.Errorf("tile size: got %d, want %d", got, swatchTileSize)
	}
}

func TestWriteSwatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.png")
	if err := writeSwatch(testPalette(), 4, path); err != nil {
		t.Fatalf("writeSwatch: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening swatch: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding swatch: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 4 {
		t.Fatalf("swatch size: got %dx%d, want 8x4", bounds.Dx(), bounds.Dy())
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r>>8 != 255 {
		t.Errorf("first tile should be red, got %v", img.At(1, 1))
	}
	if _, _, b, _ := img.At(6, 2).RGBA(); b>>8 != 255 {
		t.Errorf("second tile should be blue, got %v", img.At(6, 2))
	}
}
