package palette

// DecodeError reports input bytes that could not be decoded into a pixel
// grid. It always originates from caller-supplied data, so transports map it
// to a client-side failure.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode image: " + e.Err.Error()
}

// Unwrap returns the underlying decoder error.
func (e *DecodeError) Unwrap() error { return e.Err }

// ClusteringError reports a clustering run that could not produce centroids,
// either because the sample set is degenerate (empty, or smaller than the
// requested cluster count) or because no candidate mode retained support.
// Transports map it to a server-side failure.
type ClusteringError struct {
	Algorithm Algorithm
	Reason    string
}

func (e *ClusteringError) Error() string {
	return string(e.Algorithm) + " clustering: " + e.Reason
}
