// Package palette extracts ranked dominant-color palettes from raster images.
//
// The pipeline has four stages, each usable on its own:
//
//	Normalize  decode bytes into an RGB pixel grid, downscaling oversized
//	           images so the longer side stays within a fixed bound
//	Flatten    reshape the grid into float64 RGB samples, row-major
//	Cluster    group samples with fixed-k (kmeans) or mode-seeking
//	           (meanshift) clustering
//	Rank       order clusters by population and quantize the winners
//
// Formatted output (hex, rgb, rgba, hsl strings) is produced by Format and
// FormatAlpha from ranked entries. Extract composes all stages.
//
// # Determinism
//
// Identical input bytes and options always produce an identical palette.
// Both clustering variants draw any randomness from private generators with
// fixed seeds; nothing in the package touches global state.
//
// # Performance
//
// Fixed-k clustering costs O(n·k) per iteration. Mode-seeking clustering
// scans every sample for every seed iteration and is quadratic in the worst
// case. The Normalize size bound is what keeps that latency acceptable, so
// callers feeding the clusterers directly must bound their own sample counts.
//
// # Error Handling
//
// The package fails with two typed errors: *DecodeError for bytes that do not
// decode into an image, and *ClusteringError for sample sets no clustering
// run can handle. Adapters rely on the distinction to separate caller
// mistakes from processing failures.
package palette
