package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shapec/internal/diagfmt"
	"shapec/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.shape",
	Short: "Parse a description file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.ParseFile(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		opts := diagfmt.Options{Color: useColor(cmd, os.Stderr), Notes: true}
		diagfmt.WriteBag(os.Stderr, result.FileSet, result.Bag, opts)
	}
	if result.Root == nil {
		return fmt.Errorf("%s did not parse", args[0])
	}

	diagfmt.WriteAST(os.Stdout, result.FileSet, result.Root)
	return nil
}
