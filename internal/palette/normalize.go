package palette

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultMaxDimension bounds the longer side of a normalized image. Inputs
// above the bound are downscaled before flattening, which keeps the
// worst-case clustering cost independent of the input resolution.
const DefaultMaxDimension = 800

// Normalize decodes raw image bytes into an RGB pixel grid ready for
// flattening.
//
// Parameters:
//   - data: Encoded image bytes. PNG, JPEG, GIF, WebP, BMP and TIFF are
//     recognized.
//   - maxDimension: Upper bound for the longer image side. Values below 1
//     fall back to DefaultMaxDimension.
//
// Returns:
//   - *image.NRGBA: The decoded grid, with grayscale and paletted inputs
//     expanded to full RGB. An alpha channel is carried in the buffer but
//     ignored by the rest of the pipeline.
//   - error: *DecodeError if the bytes are empty or not a recognizable image.
//
// # Downscaling
//
// When the longer side exceeds maxDimension, both dimensions are scaled by
// maxDimension divided by the longer side, using Lanczos resampling. Target
// dimensions are truncated, never rounded up, and clamped to at least one
// pixel so extreme aspect ratios cannot collapse the grid.
//
// The function is pure: identical bytes always produce an identical grid.
func Normalize(data []byte, maxDimension int) (*image.NRGBA, error) {
	if maxDimension < 1 {
		maxDimension = DefaultMaxDimension
	}
	if len(data) == 0 {
		return nil, &DecodeError{Err: errors.New("empty input")}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDimension {
		return imaging.Clone(img), nil
	}

	ratio := float64(maxDimension) / float64(longest)
	nw := int(float64(w) * ratio)
	nh := int(float64(h) * ratio)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return imaging.Resize(img, nw, nh, imaging.Lanczos), nil
}
