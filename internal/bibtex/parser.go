package bibtex

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// entryPattern matches one BibTeX entry: type marker, key terminated by a
// comma, then a body running to the first newline-then-closing-brace. The
// body may span multiple lines, hence (?s).
var entryPattern = regexp.MustCompile(`(?s)@(\w+)\{([^,]+),\s*(.*?)\n\}`)

// fieldPattern matches a single field assignment with either brace or
// quote delimiters.
var fieldPattern = regexp.MustCompile(`(\w+)\s*=\s*\{([^}]*)\}|(\w+)\s*=\s*"([^"]*)"`)

// Parse extracts all recognizable entries from BibTeX source text.
//
// Text that does not match the entry structure is skipped silently: one
// corrupt block must not halt merging of everything else. An entry whose
// body contains no recognizable fields still parses (empty field map).
func Parse(src string) []Entry {
	matches := entryPattern.FindAllStringSubmatch(src, -1)

	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, Entry{
			Type:   m[1],
			Key:    m[2],
			Fields: parseFields(m[3]),
			Raw:    m[0],
		})
	}
	return entries
}

// parseFields extracts name = {value} and name = "value" pairs from an
// entry body. Field names are case-folded; values are taken verbatim with
// the outer delimiters stripped.
func parseFields(body string) map[string]string {
	fields := make(map[string]string)
	for _, fm := range fieldPattern.FindAllStringSubmatch(body, -1) {
		if fm[1] != "" {
			fields[strings.ToLower(fm[1])] = fm[2]
		} else {
			fields[strings.ToLower(fm[3])] = fm[4]
		}
	}
	return fields
}

// ParseFile reads a file and parses all entries in it.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data)), nil
}
