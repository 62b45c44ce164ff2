package similarity

import (
	"strings"

	"github.com/avitech/bibmerge/internal/bibtex"
)

// VenueField returns the value of the field that represents an entry's
// publication venue, dispatched on entry type. Missing fields resolve to
// "", which scores 0.0 against anything in Ratio.
func VenueField(e bibtex.Entry) string {
	switch strings.ToLower(e.Type) {
	case "article":
		return e.Field("journal")
	case "inproceedings", "conference":
		return e.Field("booktitle")
	case "book":
		return firstNonEmpty(e.Field("publisher"), e.Field("series"))
	case "incollection":
		return e.Field("booktitle")
	case "misc", "preprint":
		return firstNonEmpty(e.Field("journal"), e.Field("howpublished"), e.Field("note"))
	case "thesis", "phdthesis", "mastersthesis":
		return e.Field("school")
	case "techreport":
		return e.Field("institution")
	default:
		return firstNonEmpty(e.Field("journal"), e.Field("booktitle"), e.Field("publisher"))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
