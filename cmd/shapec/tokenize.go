package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shapec/internal/diagfmt"
	"shapec/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.shape",
	Short: "Tokenize a description file",
	Long:  `Tokenize breaks a structure description down into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().Bool("trivia", false, "include whitespace and comment trivia")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	withTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		opts := diagfmt.Options{Color: useColor(cmd, os.Stderr), Notes: true}
		diagfmt.WriteBag(os.Stderr, result.FileSet, result.Bag, opts)
	}

	diagfmt.WriteTokens(os.Stdout, result.FileSet, result.Tokens, withTrivia)
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s contains invalid tokens", args[0])
	}
	return nil
}
