package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/avitech/bibmerge/internal/config"
	"github.com/avitech/bibmerge/internal/merge"
	"github.com/spf13/cobra"
)

var (
	mergeOutput    string
	mergeConfig    string
	mergeMinYear   int
	mergeThreshold float64
	mergeDryRun    bool
)

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.bib", "Output file path")
	mergeCmd.Flags().StringVar(&mergeConfig, "config", "", "Merge settings file (YAML)")
	mergeCmd.Flags().IntVar(&mergeMinYear, "min-year", 0, "Minimum publication year (overrides settings file)")
	mergeCmd.Flags().Float64Var(&mergeThreshold, "threshold", 0, "Similarity threshold in (0,1] (overrides settings file)")
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "Report what would be merged without writing")
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <bibs-dir>",
	Short: "Merge all .bib files in a directory into one deduplicated file",
	Long: `Merge all .bib files in a directory into one deduplicated file.

Files are processed in file-name order. Entries are filtered (missing or
invalid year, too old, incomplete @misc), checked against the manual
duplicate table, then compared against every already accepted entry by
author/title/venue similarity. A chapter of an already accepted book is
dropped in the book's favor.

Examples:
  bibmerge merge bibs/ -o publications.bib
  bibmerge merge bibs/ --config merge.yml --human
  bibmerge merge bibs/ --min-year 2019 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

// MergeResult is the JSON document describing one merge run.
type MergeResult struct {
	DryRun                 bool                  `json:"dry_run,omitempty"`
	Output                 string                `json:"output,omitempty"`
	Files                  []string              `json:"files"`
	TotalEntries           int                   `json:"total_entries"`
	UniqueEntries          int                   `json:"unique_entries"`
	DuplicatesRemoved      int                   `json:"duplicates_removed"`
	FilteredByYear         int                   `json:"filtered_by_year"`
	FilteredIncompleteMisc int                   `json:"filtered_incomplete_misc"`
	FilteredNoYear         int                   `json:"filtered_no_invalid_year"`
	Duplicates             []merge.DuplicatePair `json:"duplicates"`
	Filtered               []merge.FilteredEntry `json:"filtered"`
}

func runMerge(cmd *cobra.Command, args []string) error {
	opts, err := buildMergeOptions(cmd)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	result, err := merge.Run(args[0], opts)
	if err != nil {
		code := ExitDataError
		if errors.Is(err, merge.ErrNoBibFiles) || errors.Is(err, os.ErrNotExist) {
			code = ExitConfigError
		}
		exitWithError(code, "%v", err)
	}

	if !mergeDryRun {
		if err := merge.WriteOutput(mergeOutput, result, opts); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if humanOutput {
		reportMergeHuman(result, opts)
		return nil
	}

	return outputJSON(MergeResult{
		DryRun:                 mergeDryRun,
		Output:                 outputPathUnlessDryRun(),
		Files:                  result.Files,
		TotalEntries:           result.TotalEntries,
		UniqueEntries:          result.UniqueCount,
		DuplicatesRemoved:      len(result.Duplicates),
		FilteredByYear:         result.FilteredCount(merge.ReasonTooOld),
		FilteredIncompleteMisc: result.FilteredCount(merge.ReasonIncompleteMisc),
		FilteredNoYear:         result.FilteredCount(merge.ReasonNoYear, merge.ReasonInvalidYear),
		Duplicates:             result.Duplicates,
		Filtered:               result.Filtered,
	})
}

// buildMergeOptions loads the settings file and applies flag overrides.
func buildMergeOptions(cmd *cobra.Command) (merge.Options, error) {
	cfg := config.Default()
	if mergeConfig != "" {
		loaded, err := config.Load(mergeConfig)
		if err != nil {
			return merge.Options{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("min-year") {
		cfg.MinYear = mergeMinYear
	}
	if cmd.Flags().Changed("threshold") {
		cfg.SimilarityThreshold = mergeThreshold
	}
	if err := cfg.Validate(); err != nil {
		return merge.Options{}, err
	}

	opts := merge.Options{
		MinYear:             cfg.MinYear,
		SimilarityThreshold: cfg.SimilarityThreshold,
		Header:              cfg.Header,
		ManualDuplicates:    cfg.ManualDuplicates,
	}
	if humanOutput {
		opts.Logf = func(format string, args ...interface{}) {
			fmt.Printf(format, args...)
		}
	}
	return opts, nil
}

func outputPathUnlessDryRun() string {
	if mergeDryRun {
		return ""
	}
	return mergeOutput
}

// reportMergeHuman prints the final summary in human-readable format.
// Per-record notices were already streamed during the run via Logf.
func reportMergeHuman(result *merge.Result, opts merge.Options) {
	fmt.Printf("\nMerge complete!\n")
	fmt.Printf("Total entries processed: %d\n", result.TotalEntries)
	fmt.Printf("Unique entries: %d\n", result.UniqueCount)
	fmt.Printf("Duplicates removed: %d\n", len(result.Duplicates))
	fmt.Printf("Filtered by year (< %d): %d\n", opts.MinYear, result.FilteredCount(merge.ReasonTooOld))
	fmt.Printf("Filtered incomplete @misc: %d\n", result.FilteredCount(merge.ReasonIncompleteMisc))
	fmt.Printf("Filtered no/invalid year: %d\n", result.FilteredCount(merge.ReasonNoYear, merge.ReasonInvalidYear))
	if mergeDryRun {
		fmt.Println("Dry run: no output written")
	} else {
		fmt.Printf("Output written to: %s\n", mergeOutput)
	}
}
