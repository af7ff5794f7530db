// Package server implements the HTTP API for palette extraction.
//
// The server is a thin adapter around the palette package: it parses and
// validates requests, enforces the payload cap, runs the extraction pipeline,
// and serializes the ranked palette. All color work happens in the core.
//
// # Endpoints
//
//   - POST /dominant-colors: multipart upload with a required "file" field
//     plus optional format, algorithm, k, top_n and include_percentage fields.
//   - POST /dominant-colors/base64: JSON body carrying a base64-encoded image
//     (an optional data URL prefix is stripped) plus the same optional
//     parameters.
//   - GET /healthz: liveness probe.
//   - GET /: service metadata and the endpoint catalog.
//
// Both extraction endpoints answer with the same body:
//
//	{
//	  "colors": [{"color": "#ff8040", "percentage": 56.25}, ...],
//	  "algorithm": "kmeans",
//	  "format": "hex"
//	}
//
// # Error Handling
//
// Failures carry a {"detail": "..."} body. Invalid parameters, undecodable
// images and malformed base64 are 400s; payloads over the 10 MB cap are 413s;
// clustering failures are 500s. An extraction that exceeds the configured
// timeout answers 504 and is abandoned, not interrupted: the goroutine runs
// to completion and only then frees its concurrency slot.
//
// # Concurrency
//
// Extractions run under a semaphore sized by Config.MaxConcurrent; requests
// beyond the bound queue rather than fail. Each request owns its own pixel
// data, so no state is shared across requests.
package server
