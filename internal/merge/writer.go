package merge

import (
	"fmt"
	"os"
	"strings"
)

// WriteOutput writes the accepted entries to path: a comment block with
// the summary counters, then each entry's original raw text separated by
// blank lines, in accepted order.
func WriteOutput(path string, result *Result, opts Options) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%% %s\n", opts.Header)
	fmt.Fprintf(&sb, "%% Total entries: %d\n", result.UniqueCount)
	fmt.Fprintf(&sb, "%% Duplicates removed: %d\n", len(result.Duplicates))
	fmt.Fprintf(&sb, "%% Filtered by year (< %d): %d\n", opts.MinYear, result.FilteredCount(ReasonTooOld))
	fmt.Fprintf(&sb, "%% Filtered incomplete @misc: %d\n", result.FilteredCount(ReasonIncompleteMisc))
	fmt.Fprintf(&sb, "%% Filtered no/invalid year: %d\n", result.FilteredCount(ReasonNoYear, ReasonInvalidYear))
	fmt.Fprintf(&sb, "%% Original total: %d\n\n", result.TotalEntries)

	for _, entry := range result.Accepted {
		sb.WriteString(entry.Raw)
		sb.WriteString("\n\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
