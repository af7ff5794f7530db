package palette

import "testing"

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"kmeans", AlgorithmKMeans, false},
		{"meanshift", AlgorithmMeanShift, false},
		{"mean_shift", AlgorithmMeanShift, false},
		{"mean-shift", AlgorithmMeanShift, false},
		{"KMeans", "", true},
		{"dbscan", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAlgorithm(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAlgorithm(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCluster_Dispatch(t *testing.T) {
	red := Sample{R: 255}
	blue := Sample{B: 255}
	samples := twoToneSamples(30, 30, red, blue)

	t.Run("fixed-k honors k", func(t *testing.T) {
		centroids, _, err := Cluster(samples, AlgorithmKMeans, 2)
		if err != nil {
			t.Fatalf("Cluster failed: %v", err)
		}
		if len(centroids) != 2 {
			t.Errorf("centroid count: got %d, want 2", len(centroids))
		}
	})

	t.Run("mode-seeking ignores k", func(t *testing.T) {
		centroids, _, err := Cluster(samples, AlgorithmMeanShift, 5)
		if err != nil {
			t.Fatalf("Cluster failed: %v", err)
		}
		if len(centroids) != 2 {
			t.Errorf("centroid count: got %d, want 2", len(centroids))
		}
	})

	t.Run("unknown algorithm runs fixed-k", func(t *testing.T) {
		centroids, _, err := Cluster(samples, Algorithm("dbscan"), 2)
		if err != nil {
			t.Fatalf("Cluster failed: %v", err)
		}
		if len(centroids) != 2 {
			t.Errorf("centroid count: got %d, want 2", len(centroids))
		}
	})
}
