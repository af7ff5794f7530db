package cli

import (
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/Sanmeet007/palette-vision/internal/palette"
	"github.com/Sanmeet007/palette-vision/internal/server"
	"github.com/Sanmeet007/palette-vision/internal/version"
)

// logLevelEnvVar overrides the --log-level default when the flag is not set.
const logLevelEnvVar = "PALETTE_VISION_LOG_LEVEL"

var (
	serveAddr          string
	serveMaxDimension  int
	serveMaxConcurrent int
	serveTimeout       time.Duration
	serveLogLevel      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the palette extraction HTTP API",
	Long: `Run the HTTP server exposing the extraction endpoints.

POST /dominant-colors accepts a multipart image upload and POST
/dominant-colors/base64 accepts a base64-encoded image in a JSON body.
Both reject payloads over 10 MB and share the extraction parameters
(format, algorithm, k, top_n, include_percentage).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().IntVar(&serveMaxDimension, "max-dimension", palette.DefaultMaxDimension, "downscale bound for the longer image side")
	serveCmd.Flags().IntVar(&serveMaxConcurrent, "max-concurrent", 0, "concurrent extraction cap (0 = number of CPUs)")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", server.DefaultTimeout, "per-request extraction budget (negative = unbounded)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := serveLogLevel
	if env := os.Getenv(logLevelEnvVar); env != "" && !cmd.Flags().Changed("log-level") {
		level = env
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "palette-vision",
		Level:  parseLogLevel(level),
		Output: os.Stderr,
	})

	srv := server.New(server.Config{
		Addr:          serveAddr,
		MaxDimension:  serveMaxDimension,
		MaxConcurrent: serveMaxConcurrent,
		Timeout:       serveTimeout,
		Logger:        logger,
	})
	logger.Info("starting server", "addr", serveAddr, "version", version.Short())
	return srv.ListenAndServe()
}

// parseLogLevel maps a level name onto hclog's levels, defaulting to info
// for anything unrecognized.
func parseLogLevel(s string) hclog.Level {
	if level := hclog.LevelFromString(s); level != hclog.NoLevel {
		return level
	}
	return hclog.Info
}
