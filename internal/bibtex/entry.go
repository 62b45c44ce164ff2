// Package bibtex parses BibTeX entries from citation-database exports.
package bibtex

// Entry represents a single bibliographic entry.
//
// Fields maps lower-cased field names to their raw values. Raw holds the
// original text block verbatim; output always uses Raw, never a
// reconstruction from parsed fields, so formatting and escaping survive
// the round trip.
type Entry struct {
	Type   string            // Entry type (article, book, incollection, ...)
	Key    string            // Citation key as given by the source file
	Fields map[string]string // Lower-cased field name -> raw value
	Raw    string            // Original entry text, verbatim
}

// Field returns the value of a field, or "" if absent.
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// Year returns the raw year field value ("" if absent).
func (e Entry) Year() string {
	return e.Fields["year"]
}
