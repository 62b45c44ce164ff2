// Package main provides the bibmerge CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibmerge",
	Short: "Merge and deduplicate BibTeX citation exports",
	Long: `bibmerge merges citation-database .bib exports into one cleaned file.

It parses every .bib file in a directory, drops entries that are too old
or carry no usable bibliographic identity, collapses near-duplicates by
author/title/venue similarity (including chapters hiding inside already
listed books), and writes a single consolidated .bib file with summary
counters.

All commands output JSON by default for scripting; pass --human for
readable progress and summaries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
