package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Sanmeet007/palette-vision/internal/palette"
)

// writeTestPNG writes a 100x10 PNG whose top six rows are red and bottom four
// are blue, giving exact 60/40 pixel shares.
func writeTestPNG(t *testing.T) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 100, 10))
	for y := 0; y < 10; y++ {
		fill := color.NRGBA{R: 255, A: 255}
		if y >= 6 {
			fill = color.NRGBA{B: 255, A: 255}
		}
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	path := filepath.Join(t.TempDir(), "twotone.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
	return path
}

func TestRenderText(t *testing.T) {
	entries := []palette.Entry{
		{Color: palette.RGB{R: 255}, Fraction: 0.6},
		{Color: palette.RGB{B: 255}, Fraction: 0.4},
	}

	got := renderText(entries, palette.EncodingHex)
	want := "#ff0000  60.00%\n#0000ff  40.00%\n"
	if got != want {
		t.Errorf("renderText: got %q, want %q", got, want)
	}
}

func TestRenderText_HSL(t *testing.T) {
	entries := []palette.Entry{{Color: palette.RGB{R: 255}, Fraction: 1}}

	got := renderText(entries, palette.EncodingHSL)
	want := "hsl(0.0deg, 100.0%, 50.0%)  100.00%\n"
	if got != want {
		t.Errorf("renderText: got %q, want %q", got, want)
	}
}

func TestRenderJSON(t *testing.T) {
	result := &palette.Result{
		Algorithm: palette.AlgorithmMeanShift,
		Entries: []palette.Entry{
			{Color: palette.RGB{R: 255}, Fraction: 0.75},
			{Color: palette.RGB{B: 255}, Fraction: 0.25},
		},
	}

	out, err := renderJSON(result, palette.EncodingRGB)
	if err != nil {
		t.Fatalf("renderJSON: %v", err)
	}

	var got paletteJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding rendered JSON: %v", err)
	}
	want := paletteJSON{
		Colors: []colorJSON{
			{Color: "rgb(255, 0, 0)", Percentage: 75},
			{Color: "rgb(0, 0, 255)", Percentage: 25},
		},
		Algorithm: "meanshift",
		Format:    "rgb",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered palette mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractCommand_JSON(t *testing.T) {
	path := writeTestPNG(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"extract", path, "--json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		extractJSON = false
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("extract command: %v", err)
	}

	var got paletteJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding command output: %v", err)
	}
	want := paletteJSON{
		Colors: []colorJSON{
			{Color: "#ff0000", Percentage: 60},
			{Color: "#0000ff", Percentage: 40},
		},
		Algorithm: "kmeans",
		Format:    "hex",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("extract output mismatch (-want +got):\n%s", diff)
	}
}
