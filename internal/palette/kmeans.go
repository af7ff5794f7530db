package palette

import (
	"fmt"
	"math"
	"math/rand"
)

// Fixed-k clustering parameters. The seed is fixed so repeated extractions of
// the same image yield the same palette.
const (
	kmeansSeed     = 42
	kmeansRestarts = 10
	kmeansMaxIter  = 300
	kmeansTol      = 1e-4
)

// ClusterKMeans partitions the sample set into exactly k clusters using Lloyd
// iterations with weighted (k-means++ style) seeding.
//
// The run is fully deterministic: initialization draws from a private
// generator with a fixed seed, and the best of ten restarts, measured by
// within-cluster sum of squared distances, is returned. k values below 1 are
// clamped to 1.
//
// Returns *ClusteringError when the sample set is empty or smaller than k.
// The label slice assigns every sample to a centroid index. A cluster that
// ends up empty keeps its previous centroid and simply receives no labels.
func ClusterKMeans(samples []Sample, k int) ([]Sample, []int, error) {
	if k < 1 {
		k = 1
	}
	if len(samples) == 0 {
		return nil, nil, &ClusteringError{Algorithm: AlgorithmKMeans, Reason: "no samples to cluster"}
	}
	if len(samples) < k {
		return nil, nil, &ClusteringError{
			Algorithm: AlgorithmKMeans,
			Reason:    fmt.Sprintf("%d samples cannot form %d clusters", len(samples), k),
		}
	}

	rng := rand.New(rand.NewSource(kmeansSeed))
	tol := kmeansTol * meanVariance(samples)

	var (
		bestCentroids []Sample
		bestLabels    []int
		bestInertia   = math.Inf(1)
	)
	for run := 0; run < kmeansRestarts; run++ {
		centroids, labels, inertia := lloyd(samples, seedCentroids(samples, k, rng), tol)
		if inertia < bestInertia {
			bestCentroids, bestLabels, bestInertia = centroids, labels, inertia
		}
	}
	return bestCentroids, bestLabels, nil
}

// seedCentroids picks k initial centroids: the first uniformly at random,
// each subsequent one with probability proportional to its squared distance
// from the nearest centroid chosen so far.
func seedCentroids(samples []Sample, k int, rng *rand.Rand) []Sample {
	centroids := make([]Sample, 0, k)
	centroids = append(centroids, samples[rng.Intn(len(samples))])

	weights := make([]float64, len(samples))
	for len(centroids) < k {
		var total float64
		for i, s := range samples {
			d := s.distanceSq(centroids[0])
			for _, c := range centroids[1:] {
				if dd := s.distanceSq(c); dd < d {
					d = dd
				}
			}
			weights[i] = d
			total += d
		}
		if total == 0 {
			// Every sample coincides with an existing centroid.
			centroids = append(centroids, samples[rng.Intn(len(samples))])
			continue
		}
		target := rng.Float64() * total
		pick := len(samples) - 1
		for i, w := range weights {
			target -= w
			if target <= 0 {
				pick = i
				break
			}
		}
		centroids = append(centroids, samples[pick])
	}
	return centroids
}

// lloyd alternates assignment and centroid updates until the total squared
// centroid movement drops to tol or the iteration cap is reached. It returns
// the converged centroids, a final assignment against them, and the resulting
// inertia.
func lloyd(samples []Sample, centroids []Sample, tol float64) ([]Sample, []int, float64) {
	k := len(centroids)
	labels := make([]int, len(samples))
	sums := make([]Sample, k)
	counts := make([]int, k)

	for iter := 0; iter < kmeansMaxIter; iter++ {
		for j := range sums {
			sums[j] = Sample{}
			counts[j] = 0
		}
		for i, s := range samples {
			l, _ := nearestCentroid(s, centroids)
			labels[i] = l
			sums[l].R += s.R
			sums[l].G += s.G
			sums[l].B += s.B
			counts[l]++
		}

		var shift float64
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				continue // empty cluster keeps its previous centroid
			}
			n := float64(counts[j])
			next := Sample{R: sums[j].R / n, G: sums[j].G / n, B: sums[j].B / n}
			shift += next.distanceSq(centroids[j])
			centroids[j] = next
		}
		if shift <= tol {
			break
		}
	}

	var inertia float64
	for i, s := range samples {
		l, d := nearestCentroid(s, centroids)
		labels[i] = l
		inertia += d
	}
	return centroids, labels, inertia
}

// nearestCentroid returns the index of the closest centroid and the squared
// distance to it. Ties resolve to the lowest index.
func nearestCentroid(s Sample, centroids []Sample) (int, float64) {
	best := 0
	bestDist := s.distanceSq(centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := s.distanceSq(centroids[j]); d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best, bestDist
}

// meanVariance returns the per-channel variance averaged across the three
// channels. The convergence tolerance scales with it so that loosely spread
// sample sets do not iterate forever chasing absolute thresholds.
func meanVariance(samples []Sample) float64 {
	n := float64(len(samples))
	var mean Sample
	for _, s := range samples {
		mean.R += s.R
		mean.G += s.G
		mean.B += s.B
	}
	mean.R /= n
	mean.G /= n
	mean.B /= n

	var total float64
	for _, s := range samples {
		total += s.distanceSq(mean)
	}
	return total / (3 * n)
}
