// Command meanshift segments images by mean-shift mode filtering in the
// joint spatial and L*a*b* color space.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/meanshift"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "meanshift",
	Short:         "Mean-shift color segmentation of raster images",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every filter pass to stderr")
}

// setupLogging routes library logs to stderr. Only warnings are shown unless
// verbose is set.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	meanshift.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
