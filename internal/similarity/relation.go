package similarity

import (
	"strings"

	"github.com/avitech/bibmerge/internal/bibtex"
)

// Thresholds for the chapter-of-book heuristics.
const (
	authorMatchThreshold   = 0.7
	titleFallbackThreshold = 0.8
)

// IsChapterOfBook reports whether an incollection entry is a chapter of a
// book entry. Three independent signals are tried in order; titles and
// venues may appear in different languages or transliterations across
// source files, so exact string matching is not enough.
func IsChapterOfBook(chapter, book bibtex.Entry) bool {
	if strings.ToLower(chapter.Type) != "incollection" || strings.ToLower(book.Type) != "book" {
		return false
	}

	// Same authors and same year: likely the chapter belongs to the book.
	// Edited volumes often carry only an editor field.
	bookAuthor := book.Field("author")
	if bookAuthor == "" {
		bookAuthor = book.Field("editor")
	}
	authorSim := Ratio(chapter.Field("author"), bookAuthor)

	chapterYear := chapter.Year()
	bookYear := book.Year()
	sameYear := chapterYear != "" && bookYear != "" && chapterYear == bookYear

	if authorSim > authorMatchThreshold && sameYear {
		return true
	}

	chapterBooktitle := Normalize(chapter.Field("booktitle"))
	bookTitle := Normalize(book.Field("title"))
	if chapterBooktitle == "" || bookTitle == "" {
		return false
	}

	// Word overlap: enough significant words from the book title appearing
	// in the chapter's booktitle counts as a match even across languages.
	var bookWords []string
	for _, w := range strings.Fields(bookTitle) {
		if len(w) > 3 {
			bookWords = append(bookWords, w)
		}
	}

	matching := 0
	for _, w := range bookWords {
		if strings.Contains(chapterBooktitle, w) {
			matching++
		}
	}

	required := 2
	if len(bookWords) < required {
		required = len(bookWords)
	}
	if len(bookWords) > 0 && matching >= required {
		return true
	}

	// Fallback: high overall similarity between booktitle and title.
	return Ratio(chapterBooktitle, bookTitle) > titleFallbackThreshold
}

// AreDuplicate reports whether two entries describe the same publication.
//
// A chapter-of-book relationship in either direction is a duplicate
// outright (the book is kept, the chapter dropped). Otherwise the
// unweighted average of author, title, and venue similarity must meet the
// threshold; a missing field simply scores 0.0 and drags the average down.
func AreDuplicate(a, b bibtex.Entry, threshold float64) bool {
	if IsChapterOfBook(b, a) || IsChapterOfBook(a, b) {
		return true
	}

	authorSim := Ratio(a.Field("author"), b.Field("author"))
	titleSim := Ratio(a.Field("title"), b.Field("title"))
	venueSim := Ratio(VenueField(a), VenueField(b))

	avg := (authorSim + titleSim + venueSim) / 3
	return avg >= threshold
}
