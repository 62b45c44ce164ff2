// Package merge coordinates the full batch: load, reorder, filter,
// deduplicate, and write one consolidated BibTeX file.
package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/avitech/bibmerge/internal/bibtex"
	"github.com/avitech/bibmerge/internal/similarity"
)

// ErrNoBibFiles is returned when the input directory contains no .bib files.
var ErrNoBibFiles = errors.New("no .bib files found")

// Options configures a merge run.
type Options struct {
	MinYear             int
	SimilarityThreshold float64
	Header              string // Title line of the output comment block
	ManualDuplicates    map[string]string

	// Logf receives advisory progress notices. Nil means silent.
	Logf func(format string, args ...interface{})
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// Reason classifies why an entry was excluded from the output.
type Reason string

// Exclusion reasons, in the order the filter chain applies them.
const (
	ReasonNoYear         Reason = "no-year"
	ReasonIncompleteMisc Reason = "incomplete-misc"
	ReasonInvalidYear    Reason = "invalid-year"
	ReasonTooOld         Reason = "too-old"
)

// FilteredEntry records one excluded entry and why.
type FilteredEntry struct {
	Key    string `json:"key"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"` // e.g. the offending year value
}

// DuplicatePair records a dropped duplicate and the entry kept in its place.
type DuplicatePair struct {
	Key     string `json:"key"`             // Dropped entry
	KeptKey string `json:"kept_key"`        // Entry retained in its place
	Manual  bool   `json:"manual,omitempty"` // Dropped by the manual override table
}

// Result is the outcome of one merge run.
type Result struct {
	Files        []string        `json:"files"`
	TotalEntries int             `json:"total_entries"`
	Accepted     []bibtex.Entry  `json:"-"`
	UniqueCount  int             `json:"unique_count"`
	Duplicates   []DuplicatePair `json:"duplicates"`
	Filtered     []FilteredEntry `json:"filtered"`
}

// FilteredCount returns how many entries were excluded for the given reasons.
func (r *Result) FilteredCount(reasons ...Reason) int {
	n := 0
	for _, f := range r.Filtered {
		for _, reason := range reasons {
			if f.Reason == reason {
				n++
			}
		}
	}
	return n
}

// Run executes the whole pipeline short of writing: load every .bib file
// in dir, reorder, filter, and deduplicate.
func Run(dir string, opts Options) (*Result, error) {
	entries, files, err := LoadDir(dir, opts)
	if err != nil {
		return nil, err
	}

	result := Dedupe(entries, opts)
	result.Files = files
	return result, nil
}

// LoadDir parses every .bib file in dir, in lexicographic file-name order,
// into one combined sequence. Returns ErrNoBibFiles when the directory
// holds no matching files.
func LoadDir(dir string, opts Options) ([]bibtex.Entry, []string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, fmt.Errorf("input directory: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.bib"))
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", ErrNoBibFiles, dir)
	}
	sort.Strings(paths)

	opts.logf("Found %d .bib files\n", len(paths))

	var entries []bibtex.Entry
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		opts.logf("Processing %s...\n", filepath.Base(path))
		parsed, err := bibtex.ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, parsed...)
		files = append(files, filepath.Base(path))
	}
	return entries, files, nil
}

// Dedupe reorders, filters, and deduplicates a combined entry sequence.
//
// Entries are stable-sorted so books come first and incollections last:
// a book must already be in the accepted set when its chapters are
// evaluated, so the chapter-of-book check can fire. Each survivor of the
// filter chain is compared against every accepted entry in order; the
// first match wins and the scan stops.
func Dedupe(entries []bibtex.Entry, opts Options) *Result {
	ordered := make([]bibtex.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return typePriority(ordered[i]) < typePriority(ordered[j])
	})

	result := &Result{TotalEntries: len(entries)}

	for _, entry := range ordered {
		if excluded, f := filterEntry(entry, opts); excluded {
			result.Filtered = append(result.Filtered, f)
			continue
		}

		// Manual overrides win over similarity: a listed key is dropped
		// before any comparison runs.
		if keep, ok := opts.ManualDuplicates[entry.Key]; ok {
			opts.logf("  Manual duplicate: %s ~ %s\n", entry.Key, keep)
			result.Duplicates = append(result.Duplicates, DuplicatePair{Key: entry.Key, KeptKey: keep, Manual: true})
			continue
		}

		duplicate := false
		for _, accepted := range result.Accepted {
			if similarity.AreDuplicate(entry, accepted, opts.SimilarityThreshold) {
				opts.logf("  Duplicate found: %s ~ %s\n", entry.Key, accepted.Key)
				result.Duplicates = append(result.Duplicates, DuplicatePair{Key: entry.Key, KeptKey: accepted.Key})
				duplicate = true
				break
			}
		}
		if !duplicate {
			result.Accepted = append(result.Accepted, entry)
		}
	}

	result.UniqueCount = len(result.Accepted)
	return result
}

// typePriority orders books before everything and incollections after,
// so chapter-of-book duplicates resolve in the book's favor.
func typePriority(e bibtex.Entry) int {
	switch strings.ToLower(e.Type) {
	case "book":
		return 0
	case "incollection":
		return 2
	default:
		return 1
	}
}

// filterEntry applies the exclusion rules in order; the first matching
// rule wins and the entry is not compared further.
func filterEntry(entry bibtex.Entry, opts Options) (bool, FilteredEntry) {
	yearStr := entry.Year()
	if yearStr == "" {
		opts.logf("  Filtered (no year): %s\n", entry.Key)
		return true, FilteredEntry{Key: entry.Key, Reason: ReasonNoYear}
	}

	// Misc entries with no venue, no DOI, and only a citation or note
	// carry no verifiable bibliographic identity.
	if strings.ToLower(entry.Type) == "misc" && isIncompleteMisc(entry) {
		opts.logf("  Filtered (incomplete @misc): %s\n", entry.Key)
		return true, FilteredEntry{Key: entry.Key, Reason: ReasonIncompleteMisc}
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		opts.logf("  Filtered (invalid year %q): %s\n", yearStr, entry.Key)
		return true, FilteredEntry{Key: entry.Key, Reason: ReasonInvalidYear, Detail: yearStr}
	}
	if year < opts.MinYear {
		opts.logf("  Filtered (year %d): %s\n", year, entry.Key)
		return true, FilteredEntry{Key: entry.Key, Reason: ReasonTooOld, Detail: yearStr}
	}

	return false, FilteredEntry{}
}

func isIncompleteMisc(entry bibtex.Entry) bool {
	hasVenue := entry.Field("journal") != "" ||
		entry.Field("booktitle") != "" ||
		entry.Field("publisher") != "" ||
		entry.Field("howpublished") != ""
	hasDOI := entry.Field("doi") != ""
	if hasVenue || hasDOI {
		return false
	}
	_, hasCitation := entry.Fields["citation"]
	_, hasNote := entry.Fields["note"]
	return hasCitation || hasNote
}
