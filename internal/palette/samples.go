package palette

import (
	"image"
	"math"
)

// Sample is a single pixel expressed as real-valued RGB components in the
// 0-255 range. Clustering arithmetic works on samples rather than image
// types, so centroids can sit between integer colors.
type Sample struct {
	R float64
	G float64
	B float64
}

// distanceSq returns the squared euclidean distance between two samples.
func (s Sample) distanceSq(o Sample) float64 {
	dr := s.R - o.R
	dg := s.G - o.G
	db := s.B - o.B
	return dr*dr + dg*dg + db*db
}

// distance returns the euclidean distance between two samples.
func (s Sample) distance(o Sample) float64 {
	return math.Sqrt(s.distanceSq(o))
}

// Flatten reshapes a pixel grid into a flat sample set, row-major from the
// top-left corner. Alpha is dropped. *image.NRGBA grids are read directly
// from their pixel rows; any other image type goes through the generic At
// interface.
func Flatten(img image.Image) []Sample {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	samples := make([]Sample, 0, w*h)

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
			for x := 0; x < w; x++ {
				samples = append(samples, Sample{
					R: float64(row[x*4]),
					G: float64(row[x*4+1]),
					B: float64(row[x*4+2]),
				})
			}
		}
		return samples
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			samples = append(samples, Sample{
				R: float64(r >> 8),
				G: float64(g >> 8),
				B: float64(b >> 8),
			})
		}
	}
	return samples
}
