// Package main provides the CLI entry point for cimcat.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cimtools/cimcat/pkg/cimcat"
	"github.com/cimtools/cimcat/pkg/cimcat/config"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	configPath string
	parentUID  string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cimcat [input.xlsx]",
		Short: "Convert category spreadsheets to CIM RDF/XML",
		Long: `cimcat reads a styled spreadsheet describing event categories,
drops rows marked red by fill or font color, and emits the remaining
hierarchy as a CIM RDF/XML model document.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", `Output file path (default: input name with .xml; "-" for stdout)`)
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&parentUID, "parent-uid", "", "UID of the parent object for generated category types")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	doc, err := cimcat.Convert(inputPath, cfg, parentUID, log)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if outputPath == "-" {
		fmt.Println(doc)
		return nil
	}

	out := outputPath
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		out = base + ".xml"
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info("model document written", "path", out)
	return nil
}
