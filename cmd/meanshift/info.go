package main

import (
	"fmt"

	msimage "github.com/gogpu/meanshift/internal/image"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Print image dimensions and format",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, format, err := msimage.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	p := newPrinter()
	w := cmd.OutOrStdout()
	p.Fprintf(w, "File:       %s\n", path)
	p.Fprintf(w, "Format:     %s\n", format)
	p.Fprintf(w, "Dimensions: %d x %d\n", cfg.Width, cfg.Height)
	p.Fprintf(w, "Pixels:     %d\n", cfg.Width*cfg.Height)
	return nil
}
