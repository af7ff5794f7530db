package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Encoding selects the string representation of a palette color.
type Encoding string

const (
	EncodingHex  Encoding = "hex"
	EncodingRGB  Encoding = "rgb"
	EncodingRGBA Encoding = "rgba"
	EncodingHSL  Encoding = "hsl"
)

// DefaultAlpha is the opacity rendered by the rgba encoding when the caller
// does not supply one.
const DefaultAlpha = 1.0

// ParseEncoding maps a request-level format name onto an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "hex":
		return EncodingHex, nil
	case "rgb":
		return EncodingRGB, nil
	case "rgba":
		return EncodingRGBA, nil
	case "hsl":
		return EncodingHSL, nil
	}
	return "", fmt.Errorf("unsupported color format %q", s)
}

// RGB is a quantized palette color with 8-bit components.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Format renders a color in the requested encoding with the default alpha.
func Format(c RGB, enc Encoding) string {
	return FormatAlpha(c, enc, DefaultAlpha)
}

// FormatAlpha renders a color in the requested encoding:
//
//   - hex:  "#rrggbb", lowercase, zero-padded
//   - rgb:  "rgb(r, g, b)"
//   - rgba: "rgba(r, g, b, a)" with the supplied alpha
//   - hsl:  "hsl(Hdeg, S%, L%)", hue in degrees, saturation and lightness as
//     percentages, each rounded to two decimals
//
// Fractional components always carry at least one decimal, so a full-opacity
// alpha renders as "1.0". Unknown encodings render as hex rather than
// failing, so a palette is never lost to a formatting option.
func FormatAlpha(c RGB, enc Encoding, alpha float64) string {
	switch enc {
	case EncodingRGB:
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	case EncodingRGBA:
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatComponent(alpha))
	case EncodingHSL:
		col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
		h, s, l := col.Hsl()
		return fmt.Sprintf("hsl(%sdeg, %s%%, %s%%)",
			formatComponent(round2(h)),
			formatComponent(round2(s*100)),
			formatComponent(round2(l*100)))
	default:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
}

// formatComponent renders a float with its shortest exact representation
// while keeping at least one decimal, so integral values read as "1.0"
// rather than "1".
func formatComponent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
