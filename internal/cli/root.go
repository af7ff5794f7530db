// Package cli provides the palette-vision command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sanmeet007/palette-vision/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "palette-vision",
	Short: "Dominant color palette extraction",
	Long: `palette-vision extracts ranked dominant-color palettes from raster
images, either one-shot from a local file or as an HTTP API.

Two clustering algorithms are available: fixed-k (kmeans) partitions the
pixels into an exact number of clusters, while mode-seeking (meanshift)
discovers the cluster count from the color density itself.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
