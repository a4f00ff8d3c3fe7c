// Package passage defines the resolved scripture passage record produced by
// the resolution engine.
package passage

import (
	"fmt"
)

// TranslationDefault is the sentinel translation tag used when the input
// declared none.
const TranslationDefault = "default"

// Passage is a fully resolved book/chapter/verse-range reference.
type Passage struct {
	// Book is the canonical app-internal book identifier (e.g., "1John").
	Book string `json:"book"`

	// FullBookName is the display name (e.g., "1 John").
	FullBookName string `json:"full_book_name"`

	// Chapter is the chapter number, always >= 1.
	Chapter int `json:"chapter"`

	// StartVerse is the first verse, always >= 1.
	StartVerse int `json:"start_verse"`

	// EndVerse is the last verse, always >= StartVerse.
	EndVerse int `json:"end_verse"`

	// Translation is the declared translation tag, or TranslationDefault.
	Translation string `json:"translation"`
}

// Valid reports whether the passage satisfies the structural invariants:
// a known book, chapter >= 1 and 1 <= StartVerse <= EndVerse.
func (p Passage) Valid() bool {
	return p.Book != "" && p.Chapter >= 1 && p.StartVerse >= 1 && p.EndVerse >= p.StartVerse
}

// Reference returns the canonical string form, "Book Chapter:Start" or
// "Book Chapter:Start-End" for ranges. Resolving this string again yields an
// equivalent passage.
func (p Passage) Reference() string {
	if p.EndVerse > p.StartVerse {
		return fmt.Sprintf("%s %d:%d-%d", p.FullBookName, p.Chapter, p.StartVerse, p.EndVerse)
	}
	return fmt.Sprintf("%s %d:%d", p.FullBookName, p.Chapter, p.StartVerse)
}

// String implements fmt.Stringer.
func (p Passage) String() string {
	return p.Reference()
}
