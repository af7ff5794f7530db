// palette-vision extracts dominant color palettes from images, as a
// one-shot CLI or as an HTTP API.
package main

import (
	"os"

	"github.com/Sanmeet007/palette-vision/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
