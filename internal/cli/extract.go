package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sanmeet007/palette-vision/internal/palette"
)

var (
	extractAlgorithm    string
	extractK            int
	extractTopN         int
	extractFormat       string
	extractJSON         bool
	extractSwatch       string
	extractMaxDimension int
)

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract the dominant colors of an image",
	Long: `Extract the dominant colors of a local image file.

The image is downscaled, clustered in RGB space, and the palette is
printed in rank order with each color's share of the pixels. Supported
inputs are PNG, JPEG, GIF, WebP, BMP and TIFF.`,
	Example: `  palette-vision extract photo.jpg
  palette-vision extract photo.jpg -a meanshift -f rgb
  palette-vision extract photo.jpg -k 5 -n 4 --swatch palette.png`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractAlgorithm, "algorithm", "a", "kmeans", "clustering algorithm (kmeans, meanshift)")
	extractCmd.Flags().IntVarP(&extractK, "k", "k", palette.DefaultK, "cluster count for kmeans")
	extractCmd.Flags().IntVarP(&extractTopN, "top-n", "n", palette.DefaultTopN, "number of palette entries to return")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "color format (hex, rgb, rgba, hsl)")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "emit the palette as JSON")
	extractCmd.Flags().StringVar(&extractSwatch, "swatch", "", "write a swatch strip PNG to this path")
	extractCmd.Flags().IntVar(&extractMaxDimension, "max-dimension", palette.DefaultMaxDimension, "downscale bound for the longer image side")
}

func runExtract(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	enc, err := palette.ParseEncoding(strings.ToLower(extractFormat))
	if err != nil {
		return err
	}
	algorithm, err := palette.ParseAlgorithm(strings.ToLower(extractAlgorithm))
	if err != nil {
		return err
	}
	if extractK < 1 {
		return fmt.Errorf("k must be a positive integer")
	}
	if extractTopN < 1 {
		return fmt.Errorf("top-n must be a positive integer")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d bytes from %s\n", len(data), path)
		fmt.Fprintf(os.Stderr, "Extracting %d colors using %s...\n", extractTopN, algorithm)
	}

	result, err := palette.Extract(data, palette.Options{
		Algorithm:    algorithm,
		K:            extractK,
		TopN:         extractTopN,
		MaxDimension: extractMaxDimension,
	})
	if err != nil {
		return fmt.Errorf("extract palette: %w", err)
	}

	if extractJSON {
		out, err := renderJSON(result, enc)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), renderText(result.Entries, enc))
	}

	if extractSwatch != "" {
		if err := writeSwatch(result.Entries, swatchTileSize, extractSwatch); err != nil {
			return fmt.Errorf("write swatch: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Swatch written to %s\n", extractSwatch)
		}
	}
	return nil
}

// renderText returns one line per palette entry: the formatted color and its
// pixel share.
func renderText(entries []palette.Entry, enc palette.Encoding) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %.2f%%\n", palette.Format(e.Color, enc), e.Fraction*100)
	}
	return b.String()
}

// paletteJSON mirrors the HTTP API's response shape so scripted callers can
// consume either surface with the same decoder.
type paletteJSON struct {
	Colors    []colorJSON `json:"colors"`
	Algorithm string      `json:"algorithm"`
	Format    string      `json:"format"`
}

type colorJSON struct {
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}

func renderJSON(result *palette.Result, enc palette.Encoding) (string, error) {
	resp := paletteJSON{
		Colors:    make([]colorJSON, 0, len(result.Entries)),
		Algorithm: string(result.Algorithm),
		Format:    string(enc),
	}
	for _, e := range result.Entries {
		resp.Colors = append(resp.Colors, colorJSON{
			Color:      palette.Format(e.Color, enc),
			Percentage: math.Round(e.Fraction*100*10000) / 10000,
		})
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode palette: %w", err)
	}
	return string(out), nil
}
