package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/Lectern/core/books"
	"github.com/FocuswithJustin/Lectern/core/grammar"
	"github.com/FocuswithJustin/Lectern/core/passage"
	"github.com/FocuswithJustin/Lectern/core/verselist"
)

// Detector patterns operate on normalized text (periods stripped, numbers
// already converted to digits).
var (
	// "chapter 3 verse 16", "chapter 3 verses 16-18", no book name.
	chapterVersePattern = regexp.MustCompile(`(?i)^chapter\s+(\d+)\s*,?\s*(?:and\s+)?verses?\s+(.+)$`)

	// "John chapter 3 verse 16", the same form with the book spoken out.
	bookChapterVersePattern = regexp.MustCompile(`(?i)^(?:the\s+)?(?:book\s+of\s+)?([1-3]?\s*[a-z]+(?:\s+(?:of\s+)?[a-z]+)*?)\s+chapter\s+(\d+)\s*,?\s*(?:and\s+)?verses?\s+(.+)$`)

	// "verse 17", "v 17", "vs. 17", "verses 17-19", anywhere in the text.
	verseOnlyPattern = regexp.MustCompile(`(?i)\b(?:verses?|vs|v)\.?\s+(\d+(?:\s*(?:-|to)\s*\d+)?)\b`)

	// "[the] [book of] Matthew chapter 5" and "chapter 5 of [the] Matthew".
	bookChapterPattern = regexp.MustCompile(`(?i)^(?:the\s+)?(?:book\s+of\s+)?([1-3]?\s*[a-z]+(?:\s+(?:of\s+)?[a-z]+)*?)\s+chapter\s+(\d+)$`)
	chapterOfPattern   = regexp.MustCompile(`(?i)^chapter\s+(\d+)\s+(?:of|in)\s+(?:the\s+)?(?:book\s+of\s+)?(.+)$`)

	// A 3-5 digit token, candidate for combined chapter+verse shorthand.
	combinedDigits = regexp.MustCompile(`\b(\d{3,5})\b`)

	// Standalone labeled numbers, used by the reconstruction fallback.
	chapterNumPattern = regexp.MustCompile(`(?i)\bchapter\s+(\d+)\b`)
	verseNumPattern   = regexp.MustCompile(`(?i)\bverses?\s+(\d+)\b`)
)

// firstNumber extracts the first capture of re as a positive integer.
func firstNumber(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// detectContextChapterVerse matches "chapter N verse M", with the book
// spoken out or taken from the context.
func (s *Session) detectContextChapterVerse(_, norm string) ([]passage.Passage, error) {
	if m := bookChapterVersePattern.FindStringSubmatch(norm); m != nil {
		book, ok := grammar.RecognizeBook(m[1])
		if ok {
			chapter, err := strconv.Atoi(m[2])
			if err != nil || chapter < 1 {
				return nil, fmt.Errorf("chapter %q: %w", m[2], ErrInvalidNumber)
			}
			return versePassages(book, chapter, m[3])
		}
	}
	m := chapterVersePattern.FindStringSubmatch(norm)
	if m == nil {
		return nil, ErrNoMatch
	}
	if !s.ctx.HasBook() {
		return nil, fmt.Errorf("chapter+verse without book: %w", ErrNoContext)
	}
	chapter, err := strconv.Atoi(m[1])
	if err != nil || chapter < 1 {
		return nil, fmt.Errorf("chapter %q: %w", m[1], ErrInvalidNumber)
	}
	book, ok := books.ByID(s.ctx.Book)
	if !ok {
		return nil, fmt.Errorf("context book %q: %w", s.ctx.Book, ErrUnknownBook)
	}
	return versePassages(book, chapter, m[2])
}

// detectVerseOnly matches "verse N" anywhere, against the context book and
// chapter.
func (s *Session) detectVerseOnly(_, norm string) ([]passage.Passage, error) {
	m := verseOnlyPattern.FindStringSubmatch(norm)
	if m == nil {
		return nil, ErrNoMatch
	}
	if !s.ctx.HasChapter() {
		return nil, fmt.Errorf("verse without book and chapter: %w", ErrNoContext)
	}
	book, ok := books.ByID(s.ctx.Book)
	if !ok {
		return nil, fmt.Errorf("context book %q: %w", s.ctx.Book, ErrUnknownBook)
	}
	return versePassages(book, s.ctx.Chapter, m[1])
}

// detectChapterOnly matches "Book chapter N" and "chapter N of Book",
// anchoring the result at verse 1. Chapter-only references deliberately
// resolve to the start of the chapter rather than the whole chapter.
func (s *Session) detectChapterOnly(_, norm string) ([]passage.Passage, error) {
	var rawBook, rawChapter string
	if m := bookChapterPattern.FindStringSubmatch(norm); m != nil {
		rawBook, rawChapter = m[1], m[2]
	} else if m := chapterOfPattern.FindStringSubmatch(norm); m != nil {
		rawChapter, rawBook = m[1], m[2]
	} else {
		return nil, ErrNoMatch
	}
	book, ok := grammar.RecognizeBook(rawBook)
	if !ok {
		return nil, fmt.Errorf("book %q: %w", rawBook, ErrUnknownBook)
	}
	chapter, err := strconv.Atoi(rawChapter)
	if err != nil || chapter < 1 || chapter > book.Chapters {
		return nil, fmt.Errorf("chapter %q of %s: %w", rawChapter, book.ID, ErrInvalidNumber)
	}
	p := passage.Passage{
		Book:         book.ID,
		FullBookName: book.Name,
		Chapter:      chapter,
		StartVerse:   1,
		EndVerse:     1,
		Translation:  passage.TranslationDefault,
	}
	return []passage.Passage{p}, nil
}

// detectCombinedDigits matches a book name immediately followed by a 3-5
// digit token ("Luke 611") and splits the digits into chapter and verse.
// Books with 3-digit chapter counts (Psalms) are excluded; the split would
// misread them.
func (s *Session) detectCombinedDigits(_, norm string) ([]passage.Passage, error) {
	loc := combinedDigits.FindStringSubmatchIndex(norm)
	if loc == nil {
		return nil, ErrNoMatch
	}
	digits := norm[loc[2]:loc[3]]

	book, ok := bookBefore(norm[:loc[2]])
	if !ok {
		return nil, fmt.Errorf("no book before %q: %w", digits, ErrUnknownBook)
	}
	if book.Chapters > 99 {
		return nil, fmt.Errorf("book %s has 3-digit chapters: %w", book.ID, ErrNoMatch)
	}

	var rawChapter, verseExpr string
	switch len(digits) {
	case 3:
		rawChapter, verseExpr = digits[:1], digits[1:]
	case 4:
		rawChapter, verseExpr = digits[:2], digits[2:]
	case 5:
		// Best-effort split; two-digit chapters dominate outside Psalms.
		rawChapter, verseExpr = digits[:2], digits[2:]
	default:
		return nil, ErrNoMatch
	}
	chapter, err := strconv.Atoi(rawChapter)
	if err != nil || chapter < 1 {
		return nil, fmt.Errorf("chapter %q: %w", rawChapter, ErrInvalidNumber)
	}
	return versePassages(book, chapter, verseExpr)
}

// bookBefore finds a catalog book in the words immediately preceding the
// digit token, trying the longest trailing window first ("song of solomon"
// before "solomon").
func bookBefore(prefix string) (books.Book, bool) {
	words := strings.Fields(prefix)
	if len(words) == 0 {
		return books.Book{}, false
	}
	max := 4
	if len(words) < max {
		max = len(words)
	}
	for n := max; n >= 1; n-- {
		candidate := strings.Join(words[len(words)-n:], " ")
		if book, ok := books.Lookup(candidate); ok {
			return book, true
		}
	}
	return books.Book{}, false
}

// versePassages expands a verse expression in the given book and chapter
// into one passage per contiguous verse run.
func versePassages(book books.Book, chapter int, verseExpr string) ([]passage.Passage, error) {
	if chapter > book.Chapters {
		return nil, fmt.Errorf("%s has %d chapters, got %d: %w", book.ID, book.Chapters, chapter, ErrInvalidNumber)
	}
	verses := verselist.Parse(verseExpr)
	if len(verses) == 0 {
		return nil, fmt.Errorf("verse expression %q: %w", verseExpr, ErrInvalidNumber)
	}
	var out []passage.Passage
	for _, run := range verselist.Runs(verses) {
		out = append(out, passage.Passage{
			Book:         book.ID,
			FullBookName: book.Name,
			Chapter:      chapter,
			StartVerse:   run[0],
			EndVerse:     run[1],
			Translation:  passage.TranslationDefault,
		})
	}
	return out, nil
}
