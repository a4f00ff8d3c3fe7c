// Package grammar parses canonical "Book Chapter:Verse" style scripture
// references, including multi-reference strings and a context-assisted mode
// that resolves bare fragments against a previously known reference.
//
// The parser is built on participle. Callers treat any error or empty
// result as "no match"; nothing in this package is fatal.
package grammar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Lectern/core/books"
	"github.com/FocuswithJustin/Lectern/core/numword"
	"github.com/FocuswithJustin/Lectern/core/verselist"
)

// ErrNoReference is returned when no reference can be extracted from the
// input.
var ErrNoReference = errors.New("no reference found")

// Entity is one parsed passage span. Entities with Valid=false carry a book
// spelling the catalog does not recognize, or no chapter at all, and are
// discarded by callers.
type Entity struct {
	// Valid reports whether the span resolved to a known book and chapter.
	Valid bool

	// Book is the catalog entry for the recognized book (zero if invalid).
	Book books.Book

	// RawBook is the book spelling as it appeared in the input.
	RawBook string

	// Chapter is the chapter number, >= 1 for valid entities.
	Chapter int

	// StartVerse and EndVerse bound the verse span. Both default to 1 for
	// whole-chapter references.
	StartVerse int
	EndVerse   int

	// Translations lists declared translation tags, first-declared first.
	Translations []string
}

// refExpr is the participle grammar for a colon-free reference:
// "Genesis", "Genesis 1", "Luke 3 3" (spoken form), "Genesis 1-2".
type refExpr struct {
	Book     string `parser:"@Book"`
	Chapter  *int   `parser:"( @Number"`
	Verse    *int   `parser:"  ( @Number )?"`
	RangeEnd *int   `parser:"  ( \"-\" @Number )? )?"`
}

// refLexer tokenizes references. Book names may carry a numeric prefix
// ("1 John"), multiple words ("Song of Solomon") and a trailing period.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:\d\s*)?[A-Za-z]+(?:\s+(?:of\s+)?[A-Za-z]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refExpr](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// translationTag matches a declared translation at the end of a segment,
// optionally parenthesized: "John 3:16 NIV", "John 3:16 (ESV)".
var translationTag = regexp.MustCompile(`(?i)\(?\b(kjv|nkjv|niv|esv|nasb|nlt|msg|amp|csb|rsv|nrsv|asv|web|net)\b\)?\s*$`)

var (
	chapterWord = regexp.MustCompile(`(?i)\bchapter\s+(\d+)\b`)
	verseWord   = regexp.MustCompile(`(?i)\b(?:verses?|vs|v)\.?\s+(\d+)\b`)
	bareNumber  = regexp.MustCompile(`\b\d{1,3}\b`)
)

// RecognizeBook resolves a raw book spelling through the catalog. This is
// the book-name recognition used by detectors outside this package.
func RecognizeBook(raw string) (books.Book, bool) {
	return books.Lookup(raw)
}

// Parse parses a free-text reference string into passage entities. Multiple
// references are separated by ";". A reference whose verse expression is a
// non-contiguous list ("John 3:16, 18") yields one entity per contiguous
// run. Entities for unrecognized books or chapter-less references are
// returned with Valid=false.
func Parse(text string) ([]Entity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoReference
	}

	var entities []Entity
	for _, segment := range strings.Split(text, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		ents, err := parseSegment(segment)
		if err != nil {
			// One bad segment does not poison the rest.
			continue
		}
		entities = append(entities, ents...)
	}
	if len(entities) == 0 {
		return nil, ErrNoReference
	}
	return entities, nil
}

// parseSegment parses one ";"-delimited reference segment.
func parseSegment(segment string) ([]Entity, error) {
	segment, translations := stripTranslations(segment)

	// "Book Chapter:VerseExpr" splits at the first colon; the verse
	// expression may be a list or range and is expanded separately.
	if head, verseExpr, ok := strings.Cut(segment, ":"); ok {
		ref, err := refParser.ParseString("", strings.TrimSpace(head))
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", segment, err)
		}
		if ref.Chapter == nil {
			return []Entity{{RawBook: ref.Book, Translations: translations}}, nil
		}
		verses := verselist.Parse(verseExpr)
		if len(verses) == 0 {
			return nil, fmt.Errorf("parse %q: %w", segment, ErrNoReference)
		}
		var entities []Entity
		for _, run := range verselist.Runs(verses) {
			entities = append(entities, newEntity(ref.Book, *ref.Chapter, run[0], run[1], translations))
		}
		return entities, nil
	}

	ref, err := refParser.ParseString("", segment)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", segment, err)
	}
	if ref.Chapter == nil {
		// Book-only references carry too little to resolve; a bare book
		// name in conversation is usually not a citation.
		return []Entity{{RawBook: ref.Book, Translations: translations}}, nil
	}
	switch {
	case ref.Verse != nil && ref.RangeEnd != nil:
		// "Luke 3 3-5", spoken form with a verse range.
		return []Entity{newEntity(ref.Book, *ref.Chapter, *ref.Verse, *ref.RangeEnd, translations)}, nil
	case ref.Verse != nil:
		// "Luke 3 3", spoken chapter-verse form.
		return []Entity{newEntity(ref.Book, *ref.Chapter, *ref.Verse, *ref.Verse, translations)}, nil
	default:
		// Whole chapter (or a chapter range, where the start of the first
		// chapter is the useful anchor): default to verse 1.
		return []Entity{newEntity(ref.Book, *ref.Chapter, 1, 1, translations)}, nil
	}
}

// newEntity builds an entity, validating the book against the catalog and
// the numeric invariants.
func newEntity(rawBook string, chapter, startVerse, endVerse int, translations []string) Entity {
	e := Entity{
		RawBook:      rawBook,
		Chapter:      chapter,
		StartVerse:   startVerse,
		EndVerse:     endVerse,
		Translations: translations,
	}
	book, ok := books.Lookup(rawBook)
	if !ok {
		return e
	}
	e.Book = book
	e.Valid = chapter >= 1 && chapter <= book.Chapters && startVerse >= 1 && endVerse >= startVerse
	return e
}

// stripTranslations peels declared translation tags off the end of a
// segment, innermost-declared first.
func stripTranslations(segment string) (string, []string) {
	var tags []string
	for {
		m := translationTag.FindStringSubmatchIndex(segment)
		if m == nil {
			break
		}
		tags = append([]string{strings.ToUpper(segment[m[2]:m[3]])}, tags...)
		segment = strings.TrimSpace(segment[:m[0]])
	}
	return segment, tags
}

// ParseWithContext resolves a bare fragment ("verse 17", "chapter 5", "17")
// against a previously resolved canonical reference string and returns a
// fresh canonical reference string. The fragment may use spelled-out
// numbers. Returns ErrNoReference when nothing usable can be extracted.
func ParseWithContext(text, contextRef string) (string, error) {
	entities, err := Parse(contextRef)
	if err != nil {
		return "", fmt.Errorf("context reference %q: %w", contextRef, err)
	}
	var ctx *Entity
	for i := range entities {
		if entities[i].Valid {
			ctx = &entities[i]
			break
		}
	}
	if ctx == nil {
		return "", fmt.Errorf("context reference %q: %w", contextRef, ErrNoReference)
	}

	converted := numword.Convert(text)

	chapter := ctx.Chapter
	verse := 0
	chapterSet := false

	if m := chapterWord.FindStringSubmatch(converted); m != nil {
		if c, err := strconv.Atoi(m[1]); err == nil && c >= 1 {
			chapter = c
			chapterSet = true
		}
	}
	if m := verseWord.FindStringSubmatch(converted); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v >= 1 {
			verse = v
		}
	}

	if verse == 0 && !chapterSet {
		// No labeled numbers: fall back to bare digits. Two numbers read
		// as chapter and verse, one number as a verse in the context
		// chapter.
		nums := bareNumber.FindAllString(converted, 3)
		switch len(nums) {
		case 1:
			verse, _ = strconv.Atoi(nums[0])
		case 2:
			chapter, _ = strconv.Atoi(nums[0])
			verse, _ = strconv.Atoi(nums[1])
			chapterSet = true
		default:
			return "", fmt.Errorf("fragment %q: %w", text, ErrNoReference)
		}
	}

	if verse == 0 {
		if !chapterSet {
			return "", fmt.Errorf("fragment %q: %w", text, ErrNoReference)
		}
		// Chapter with no verse anchors at the start of the chapter.
		verse = 1
	}
	if chapter < 1 || verse < 1 {
		return "", fmt.Errorf("fragment %q: %w", text, ErrNoReference)
	}
	return fmt.Sprintf("%s %d:%d", ctx.Book.Name, chapter, verse), nil
}
