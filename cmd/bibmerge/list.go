package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/avitech/bibmerge/internal/merge"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list <bibs-dir>",
	Short: "List all entries parsed from a directory of .bib files",
	Long: `List all entries parsed from a directory of .bib files.

Malformed blocks are skipped silently during parsing; list shows what
actually survives extraction, before any filtering or deduplication.

Examples:
  bibmerge list bibs/
  bibmerge list bibs/ --human`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

// ListEntry summarizes one parsed entry.
type ListEntry struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Year  string `json:"year,omitempty"`
	Title string `json:"title,omitempty"`
}

// ListResult is the JSON document for the list command.
type ListResult struct {
	Files   []string    `json:"files"`
	Count   int         `json:"count"`
	Entries []ListEntry `json:"entries"`
}

func runList(cmd *cobra.Command, args []string) error {
	entries, files, err := merge.LoadDir(args[0], merge.Options{})
	if err != nil {
		code := ExitDataError
		if errors.Is(err, merge.ErrNoBibFiles) || errors.Is(err, os.ErrNotExist) {
			code = ExitConfigError
		}
		exitWithError(code, "%v", err)
	}

	listEntries := make([]ListEntry, 0, len(entries))
	for _, e := range entries {
		listEntries = append(listEntries, ListEntry{
			Key:   e.Key,
			Type:  e.Type,
			Year:  e.Year(),
			Title: e.Field("title"),
		})
	}

	if humanOutput {
		for _, e := range listEntries {
			fmt.Printf("%-30s %-14s %-6s %s\n", e.Key, e.Type, e.Year, truncateString(e.Title, 50))
		}
		fmt.Printf("\n%d entries from %d files\n", len(listEntries), len(files))
		return nil
	}

	return outputJSON(ListResult{
		Files:   files,
		Count:   len(listEntries),
		Entries: listEntries,
	})
}
