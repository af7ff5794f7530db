package palette

import (
	"math"
	"sort"
)

// Entry is one ranked palette color: a quantized RGB value and the fraction
// of samples its cluster covers.
type Entry struct {
	Color    RGB     `json:"color"`
	Fraction float64 `json:"fraction"`
}

// Rank orders clusters by population and returns the topN most prevalent as
// quantized palette entries.
//
// Counting follows bincount semantics: the count table covers label values
// 0 through max(labels), so a trailing centroid that never received a label
// produces no entry while an interior one surfaces with fraction 0. Ties in
// population break toward the lower cluster index. topN values below 1 are
// clamped to 1.
//
// When fewer counted clusters exist than topN, the top entry is repeated with
// fraction 1.0 until the palette holds exactly topN entries, so callers
// always receive a full palette. Fractions are rounded to four decimal
// places.
//
// Rank expects at least one label; with none there is no palette and the
// result is nil.
func Rank(centroids []Sample, labels []int, topN int) []Entry {
	if topN < 1 {
		topN = 1
	}
	if len(labels) == 0 {
		return nil
	}

	maxLabel := 0
	for _, l := range labels {
		if l > maxLabel {
			maxLabel = l
		}
	}
	counts := make([]int, maxLabel+1)
	for _, l := range labels {
		counts[l]++
	}

	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	keep := topN
	if keep > len(order) {
		keep = len(order)
	}
	total := float64(len(labels))
	entries := make([]Entry, 0, topN)
	for _, idx := range order[:keep] {
		entries = append(entries, Entry{
			Color:    quantize(centroids[idx]),
			Fraction: roundFraction(float64(counts[idx]) / total),
		})
	}
	for len(entries) < topN {
		entries = append(entries, Entry{Color: entries[0].Color, Fraction: 1.0})
	}
	return entries
}

// quantize converts a real-valued centroid to 8-bit RGB with clamped
// rounding: channels round to the nearest integer, and overshoot clamps to
// the 0-255 range instead of wrapping.
func quantize(s Sample) RGB {
	return RGB{R: clampChannel(s.R), G: clampChannel(s.G), B: clampChannel(s.B)}
}

func clampChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

func roundFraction(f float64) float64 {
	return math.Round(f*10000) / 10000
}
