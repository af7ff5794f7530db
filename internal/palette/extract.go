package palette

// Defaults applied by Extract when the corresponding Options field is zero.
const (
	DefaultK    = 3
	DefaultTopN = 2
)

// Options controls a single extraction. The zero value selects the documented
// defaults, so adapters can pass through whatever subset of fields their
// callers supplied.
type Options struct {
	// Algorithm picks the clustering variant. Anything other than
	// AlgorithmMeanShift runs the fixed-k variant.
	Algorithm Algorithm

	// K is the cluster count for the fixed-k variant; the mode-seeking
	// variant ignores it. Defaults to DefaultK.
	K int

	// TopN is the number of palette entries to return. Defaults to
	// DefaultTopN.
	TopN int

	// MaxDimension bounds the longer image side before flattening.
	// Defaults to DefaultMaxDimension.
	MaxDimension int
}

func (o Options) withDefaults() Options {
	if o.Algorithm != AlgorithmMeanShift {
		o.Algorithm = AlgorithmKMeans
	}
	if o.K == 0 {
		o.K = DefaultK
	}
	if o.TopN == 0 {
		o.TopN = DefaultTopN
	}
	if o.MaxDimension == 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	return o
}

// Result is a ranked palette plus the canonical algorithm that produced it.
type Result struct {
	Algorithm Algorithm `json:"algorithm"`
	Entries   []Entry   `json:"entries"`
}

// Extract runs the full pipeline on encoded image bytes: decode and
// normalize, flatten to samples, cluster, rank.
//
// Returns:
//   - *DecodeError when the bytes cannot be decoded into an image
//   - *ClusteringError when clustering cannot produce centroids
//
// Extract keeps no state between calls and is safe for concurrent use.
func Extract(data []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	img, err := Normalize(data, opts.MaxDimension)
	if err != nil {
		return nil, err
	}

	centroids, labels, err := Cluster(Flatten(img), opts.Algorithm, opts.K)
	if err != nil {
		return nil, err
	}

	return &Result{
		Algorithm: opts.Algorithm,
		Entries:   Rank(centroids, labels, opts.TopN),
	}, nil
}
