package server

import "github.com/Sanmeet007/palette-vision/internal/version"

// Endpoint describes one API operation in the service index.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// ServiceInfo is the GET / body: service identity plus the endpoint catalog.
type ServiceInfo struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Version     string     `json:"version"`
	Endpoints   []Endpoint `json:"endpoints"`
}

// serviceInfo returns the service index served at the root path.
func serviceInfo() ServiceInfo {
	return ServiceInfo{
		Name:        "palette-vision",
		Description: "Dominant color palette extraction from raster images",
		Version:     version.Version,
		Endpoints: []Endpoint{
			{
				Method: "POST",
				Path:   "/dominant-colors",
				Description: "Extract the dominant color palette from a multipart image upload. " +
					"Fields: file (required), format (hex|rgb|rgba|hsl, default hex), " +
					"algorithm (kmeans|meanshift, default kmeans), k (default 3), " +
					"top_n (default 2), include_percentage (default true).",
			},
			{
				Method: "POST",
				Path:   "/dominant-colors/base64",
				Description: "Extract the dominant color palette from a base64-encoded image. " +
					"JSON body: image_base64 (required, data URL prefix allowed) plus the " +
					"same optional parameters as the upload endpoint.",
			},
			{
				Method:      "GET",
				Path:        "/healthz",
				Description: "Liveness probe.",
			},
		},
	}
}
