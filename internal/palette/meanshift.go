package palette

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Mode-seeking parameters. Bandwidth estimation subsamples the input to keep
// its pairwise distance scan bounded; the fallback bandwidth covers inputs
// whose estimate collapses to zero, such as single-color images.
const (
	bandwidthQuantile = 0.2
	bandwidthSamples  = 500
	bandwidthSeed     = 0
	fallbackBandwidth = 30.0
	meanShiftMaxIter  = 300
)

// EstimateBandwidth derives a neighborhood radius from the spread of the
// sample set: the mean distance from each point to its ⌊n·quantile⌋-th
// nearest neighbor, the point itself included.
//
// When the sample set exceeds maxSamples, a deterministic random subsample of
// maxSamples points is measured instead, keeping the scan quadratic in
// maxSamples rather than in the full set. A uniform sample set estimates to
// 0; callers substitute a fallback radius in that case.
func EstimateBandwidth(samples []Sample, quantile float64, maxSamples int) float64 {
	if len(samples) == 0 {
		return 0
	}
	sub := samples
	if maxSamples > 0 && len(samples) > maxSamples {
		rng := rand.New(rand.NewSource(bandwidthSeed))
		sub = make([]Sample, maxSamples)
		for i, j := range rng.Perm(len(samples))[:maxSamples] {
			sub[i] = samples[j]
		}
	}

	kth := int(float64(len(sub)) * quantile)
	if kth < 1 {
		kth = 1
	}

	dists := make([]float64, len(sub))
	var total float64
	for _, p := range sub {
		for j, q := range sub {
			dists[j] = p.distance(q)
		}
		sort.Float64s(dists)
		total += dists[kth-1]
	}
	return total / float64(len(sub))
}

// ClusterMeanShift discovers cluster centers by hill-climbing candidate seeds
// to local density modes. The cluster count is data-driven rather than fixed.
//
// Seeds come from a coarse grid with one cell per bandwidth-sized bin that
// holds at least one sample. Each seed moves to the mean of the samples
// within one bandwidth of it until the movement stalls or the iteration cap
// is reached. Seeds whose final neighborhood is empty are dropped. Surviving
// centers are ordered by support, centers within one bandwidth of a stronger
// center merge into it, and every sample is labeled with its nearest
// remaining center.
//
// Returns *ClusteringError when the sample set is empty or no seed retains
// support.
func ClusterMeanShift(samples []Sample) ([]Sample, []int, error) {
	if len(samples) == 0 {
		return nil, nil, &ClusteringError{Algorithm: AlgorithmMeanShift, Reason: "no samples to cluster"}
	}

	bandwidth := EstimateBandwidth(samples, bandwidthQuantile, bandwidthSamples)
	if bandwidth <= 0 || math.IsNaN(bandwidth) {
		bandwidth = fallbackBandwidth
	}

	type mode struct {
		center  Sample
		support int
	}
	seeds := binSeeds(samples, bandwidth)
	modes := make([]mode, 0, len(seeds))
	for _, seed := range seeds {
		center, support := climbToMode(samples, seed, bandwidth)
		if support > 0 {
			modes = append(modes, mode{center: center, support: support})
		}
	}
	if len(modes) == 0 {
		return nil, nil, &ClusteringError{
			Algorithm: AlgorithmMeanShift,
			Reason:    fmt.Sprintf("no samples within bandwidth %.3f of any seed", bandwidth),
		}
	}

	sort.Slice(modes, func(i, j int) bool {
		a, b := modes[i], modes[j]
		if a.support != b.support {
			return a.support > b.support
		}
		if a.center.R != b.center.R {
			return a.center.R > b.center.R
		}
		if a.center.G != b.center.G {
			return a.center.G > b.center.G
		}
		return a.center.B > b.center.B
	})

	// Two seeds that climbed to within one bandwidth of each other found the
	// same mode; the better-supported center absorbs the weaker one.
	centers := make([]Sample, 0, len(modes))
	merged := make([]bool, len(modes))
	for i := range modes {
		if merged[i] {
			continue
		}
		centers = append(centers, modes[i].center)
		for j := i + 1; j < len(modes); j++ {
			if !merged[j] && modes[i].center.distance(modes[j].center) <= bandwidth {
				merged[j] = true
			}
		}
	}

	labels := make([]int, len(samples))
	for i, s := range samples {
		labels[i], _ = nearestCentroid(s, centers)
	}
	return centers, labels, nil
}

// binSeeds buckets samples into a bandwidth-sized grid and returns the center
// of every occupied cell, in first-occurrence order. If every sample lands in
// its own cell the binning gains nothing and the samples themselves become
// the seeds.
func binSeeds(samples []Sample, binSize float64) []Sample {
	type cell struct{ r, g, b int }
	seen := make(map[cell]struct{}, len(samples)/4+1)
	seeds := make([]Sample, 0)
	for _, s := range samples {
		c := cell{
			r: int(math.Round(s.R / binSize)),
			g: int(math.Round(s.G / binSize)),
			b: int(math.Round(s.B / binSize)),
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		seeds = append(seeds, Sample{
			R: float64(c.r) * binSize,
			G: float64(c.g) * binSize,
			B: float64(c.b) * binSize,
		})
	}
	if len(seeds) == len(samples) {
		seeds = append([]Sample(nil), samples...)
	}
	return seeds
}

// climbToMode shifts a seed to the mean of its bandwidth neighborhood until
// the movement falls below one thousandth of the bandwidth or the iteration
// cap is reached. It returns the final center and the size of its last
// neighborhood; support 0 means the seed never had a sample in range.
func climbToMode(samples []Sample, seed Sample, bandwidth float64) (Sample, int) {
	var (
		center    = seed
		support   int
		radiusSq  = bandwidth * bandwidth
		threshold = 1e-3 * bandwidth
	)
	for iter := 0; iter < meanShiftMaxIter; iter++ {
		var sum Sample
		count := 0
		for _, s := range samples {
			if s.distanceSq(center) <= radiusSq {
				sum.R += s.R
				sum.G += s.G
				sum.B += s.B
				count++
			}
		}
		if count == 0 {
			return center, 0
		}
		n := float64(count)
		next := Sample{R: sum.R / n, G: sum.G / n, B: sum.B / n}
		moved := next.distance(center)
		center = next
		support = count
		if moved <= threshold {
			break
		}
	}
	return center, support
}
