package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Sanmeet007/palette-vision/internal/palette"
)

const (
	// maxImageBytes is the documented 10 MB payload cap, applied to the raw
	// image bytes on both extraction endpoints.
	maxImageBytes = 10 << 20

	// formOverheadBytes is the allowance for multipart boundaries and form
	// fields on top of the image payload itself.
	formOverheadBytes = 1 << 20

	// maxBase64BodyBytes caps the JSON body of the base64 endpoint: a
	// maximum-size image grows by 4/3 when encoded, plus the JSON envelope.
	maxBase64BodyBytes = maxImageBytes*4/3 + formOverheadBytes
)

// errTimeout marks an extraction abandoned after the configured budget.
var errTimeout = errors.New("extraction timed out")

// extractionParams are the validated caller parameters shared by both
// extraction endpoints.
type extractionParams struct {
	encoding  palette.Encoding
	algorithm palette.Algorithm
	k         int
	topN      int
}

// colorEntry is one palette color in the response. Percentage is a pointer so
// a genuine 0 survives include_percentage=true while the field disappears
// entirely when percentages are off.
type colorEntry struct {
	Color      string   `json:"color"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// paletteResponse is the success body of both extraction endpoints.
type paletteResponse struct {
	Colors    []colorEntry `json:"colors"`
	Algorithm string       `json:"algorithm"`
	Format    string       `json:"format"`
}

// handleDominantColors extracts a palette from a multipart image upload.
//
// Form fields: file (required), format, algorithm, k, top_n,
// include_percentage. Missing optional fields take the API defaults
// (hex, kmeans, 3, 2, true).
func (s *Server) handleDominantColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(maxImageBytes + formOverheadBytes); err != nil {
		if isTooLarge(err) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "File size exceeds 10 MB limit")
			return
		}
		s.writeError(w, http.StatusBadRequest, "Invalid multipart form data")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	if len(contents) == 0 {
		s.writeError(w, http.StatusBadRequest, "Empty file")
		return
	}
	if len(contents) > maxImageBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "File size exceeds 10 MB limit")
		return
	}

	k, detail := formInt(r, "k", palette.DefaultK)
	if detail != "" {
		s.writeError(w, http.StatusBadRequest, detail)
		return
	}
	topN, detail := formInt(r, "top_n", palette.DefaultTopN)
	if detail != "" {
		s.writeError(w, http.StatusBadRequest, detail)
		return
	}
	includePercentage, detail := formBool(r, "include_percentage", true)
	if detail != "" {
		s.writeError(w, http.StatusBadRequest, detail)
		return
	}
	params, detail := validateParams(r.FormValue("format"), r.FormValue("algorithm"), k, topN)
	if detail != "" {
		s.writeError(w, http.StatusBadRequest, detail)
		return
	}

	s.extractAndRespond(w, contents, params, includePercentage)
}

// base64Request is the JSON body of the base64 extraction endpoint. Pointer
// fields distinguish "absent, use the default" from explicit values.
type base64Request struct {
	ImageBase64       string `json:"image_base64"`
	Format            string `json:"format"`
	Algorithm         string `json:"algorithm"`
	K                 *int   `json:"k"`
	TopN              *int   `json:"top_n"`
	IncludePercentage *bool  `json:"include_percentage"`
}

// handleDominantColorsBase64 extracts a palette from a base64-encoded image.
// The image_base64 value may carry a data URL prefix, which is stripped.
func (s *Server) handleDominantColorsBase64(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBase64BodyBytes)
	var req base64Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isTooLarge(err) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "Image size exceeds 10 MB limit")
			return
		}
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.ImageBase64 == "" {
		s.writeError(w, http.StatusBadRequest, "image_base64 is required")
		return
	}
	encoded := req.ImageBase64
	if strings.HasPrefix(encoded, "data:") {
		_, rest, ok := strings.Cut(encoded, ",")
		if !ok {
			s.writeError(w, http.StatusBadRequest, "Invalid data URL")
			return
		}
		encoded = rest
	}
	contents, err := decodeBase64(encoded)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid base64 image data")
		return
	}
	if len(contents) > maxImageBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "Image size exceeds 10 MB limit")
		return
	}

	k := palette.DefaultK
	if req.K != nil {
		k = *req.K
	}
	topN := palette.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	includePercentage := true
	if req.IncludePercentage != nil {
		includePercentage = *req.IncludePercentage
	}
	params, detail := validateParams(req.Format, req.Algorithm, k, topN)
	if detail != "" {
		s.writeError(w, http.StatusBadRequest, detail)
		return
	}

	s.extractAndRespond(w, contents, params, includePercentage)
}

// handleHealthz answers liveness probes.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleServiceInfo serves the endpoint catalog at the root path. The "/"
// pattern also receives every unrouted path, so anything else is a 404.
func (s *Server) handleServiceInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, serviceInfo())
}

// extractAndRespond runs the extraction pipeline and writes the palette or
// the mapped failure.
func (s *Server) extractAndRespond(w http.ResponseWriter, contents []byte, params extractionParams, includePercentage bool) {
	result, err := s.runExtraction(contents, palette.Options{
		Algorithm:    params.algorithm,
		K:            params.k,
		TopN:         params.topN,
		MaxDimension: s.cfg.MaxDimension,
	})
	if err != nil {
		s.respondExtractionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, buildResponse(result, params.encoding, includePercentage))
}

// runExtraction executes one extraction under the concurrency bound and the
// configured timeout. On timeout the goroutine is abandoned, not interrupted;
// its semaphore slot frees once the extraction eventually finishes.
func (s *Server) runExtraction(data []byte, opts palette.Options) (*palette.Result, error) {
	type outcome struct {
		result *palette.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		s.sem <- struct{}{}
		defer func() { <-s.sem }()
		result, err := palette.Extract(data, opts)
		done <- outcome{result: result, err: err}
	}()

	if s.cfg.Timeout < 0 {
		out := <-done
		return out.result, out.err
	}
	timer := time.NewTimer(s.cfg.Timeout)
	defer timer.Stop()
	select {
	case out := <-done:
		return out.result, out.err
	case <-timer.C:
		return nil, errTimeout
	}
}

// respondExtractionError maps core failures onto the API's status codes:
// undecodable input is the caller's fault, everything else is the server's.
func (s *Server) respondExtractionError(w http.ResponseWriter, err error) {
	var decodeErr *palette.DecodeError
	switch {
	case errors.Is(err, errTimeout):
		s.logger.Warn("extraction abandoned", "timeout", s.cfg.Timeout)
		s.writeError(w, http.StatusGatewayTimeout, "Color extraction timed out")
	case errors.As(err, &decodeErr):
		s.writeError(w, http.StatusBadRequest, "Invalid image data: "+decodeErr.Err.Error())
	default:
		s.logger.Error("extraction failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Color extraction failed: "+err.Error())
	}
}

// buildResponse formats ranked entries with the requested encoding.
func buildResponse(result *palette.Result, enc palette.Encoding, includePercentage bool) paletteResponse {
	colors := make([]colorEntry, 0, len(result.Entries))
	for _, e := range result.Entries {
		entry := colorEntry{Color: palette.Format(e.Color, enc)}
		if includePercentage {
			pct := roundPercentage(e.Fraction * 100)
			entry.Percentage = &pct
		}
		colors = append(colors, entry)
	}
	return paletteResponse{
		Colors:    colors,
		Algorithm: string(result.Algorithm),
		Format:    string(enc),
	}
}

// validateParams normalizes and validates the shared request parameters.
// It returns the documented failure message, or "" when the parameters are
// valid.
func validateParams(format, algorithm string, k, topN int) (extractionParams, string) {
	if format == "" {
		format = "hex"
	}
	enc, err := palette.ParseEncoding(strings.ToLower(format))
	if err != nil {
		return extractionParams{}, "Invalid color format"
	}

	if algorithm == "" {
		algorithm = "kmeans"
	}
	algo, err := palette.ParseAlgorithm(strings.ToLower(algorithm))
	if err != nil {
		return extractionParams{}, "Unsupported algorithm"
	}

	if k < 1 {
		return extractionParams{}, "k must be a positive integer"
	}
	if topN < 1 {
		return extractionParams{}, "top_n must be a positive integer"
	}

	return extractionParams{encoding: enc, algorithm: algo, k: k, topN: topN}, ""
}

// formInt parses an optional integer form field. An absent field takes the
// fallback; a malformed value produces a failure message.
func formInt(r *http.Request, field string, fallback int) (int, string) {
	raw := r.FormValue(field)
	if raw == "" {
		return fallback, ""
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, field + " must be an integer"
	}
	return v, ""
}

// formBool parses an optional boolean form field.
func formBool(r *http.Request, field string, fallback bool) (bool, string) {
	raw := r.FormValue(field)
	if raw == "" {
		return fallback, ""
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, field + " must be a boolean"
	}
	return v, ""
}

// decodeBase64 tolerates embedded whitespace, which base64 payloads copied
// from files or shell pipelines commonly carry.
func decodeBase64(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(clean)
}

// isTooLarge reports whether err came from the request body cap.
func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "request body too large")
}

// roundPercentage keeps percentages at four decimal places, mirroring the
// fraction rounding in the core.
func roundPercentage(v float64) float64 {
	return math.Round(v*10000) / 10000
}
