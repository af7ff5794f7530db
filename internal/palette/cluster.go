package palette

import "fmt"

// Algorithm selects the clustering variant used by Cluster and Extract.
type Algorithm string

const (
	// AlgorithmKMeans partitions samples into a fixed number of clusters.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmMeanShift discovers a data-driven number of density modes.
	AlgorithmMeanShift Algorithm = "meanshift"
)

// ParseAlgorithm maps a request-level algorithm name onto its canonical
// variant. The underscore and hyphen spellings of meanshift are accepted for
// compatibility with existing clients; all three report as "meanshift".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "kmeans":
		return AlgorithmKMeans, nil
	case "meanshift", "mean_shift", "mean-shift":
		return AlgorithmMeanShift, nil
	}
	return "", fmt.Errorf("unsupported algorithm %q", s)
}

// Cluster dispatches the sample set to the selected variant. k applies to
// the fixed-k variant only. Unrecognized algorithm values run the fixed-k
// variant rather than failing; adapters validate names before reaching this
// point.
func Cluster(samples []Sample, algorithm Algorithm, k int) ([]Sample, []int, error) {
	if algorithm == AlgorithmMeanShift {
		return ClusterMeanShift(samples)
	}
	return ClusterKMeans(samples, k)
}
