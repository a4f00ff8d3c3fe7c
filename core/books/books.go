// Package books provides the canonical book catalog: a static, read-only
// mapping from raw or alternate book spellings to one canonical book
// identifier, plus per-book metadata (display name, canonical order,
// chapter count).
package books

import (
	"strings"
)

// Book holds catalog metadata for a single book.
type Book struct {
	// ID is the app-internal canonical identifier (e.g., "1John").
	ID string

	// Name is the full display name (e.g., "1 John").
	Name string

	// Order is the canonical position, 1-indexed.
	Order int

	// Chapters is the number of chapters in the book.
	Chapters int
}

// canon lists all books in canonical order. The catalog indexes are derived
// from this slice at init time and never mutated afterwards.
var canon = []Book{
	{"Genesis", "Genesis", 1, 50},
	{"Exodus", "Exodus", 2, 40},
	{"Leviticus", "Leviticus", 3, 27},
	{"Numbers", "Numbers", 4, 36},
	{"Deuteronomy", "Deuteronomy", 5, 34},
	{"Joshua", "Joshua", 6, 24},
	{"Judges", "Judges", 7, 21},
	{"Ruth", "Ruth", 8, 4},
	{"1Samuel", "1 Samuel", 9, 31},
	{"2Samuel", "2 Samuel", 10, 24},
	{"1Kings", "1 Kings", 11, 22},
	{"2Kings", "2 Kings", 12, 25},
	{"1Chronicles", "1 Chronicles", 13, 29},
	{"2Chronicles", "2 Chronicles", 14, 36},
	{"Ezra", "Ezra", 15, 10},
	{"Nehemiah", "Nehemiah", 16, 13},
	{"Esther", "Esther", 17, 10},
	{"Job", "Job", 18, 42},
	{"Psalms", "Psalms", 19, 150},
	{"Proverbs", "Proverbs", 20, 31},
	{"Ecclesiastes", "Ecclesiastes", 21, 12},
	{"SongofSolomon", "Song of Solomon", 22, 8},
	{"Isaiah", "Isaiah", 23, 66},
	{"Jeremiah", "Jeremiah", 24, 52},
	{"Lamentations", "Lamentations", 25, 5},
	{"Ezekiel", "Ezekiel", 26, 48},
	{"Daniel", "Daniel", 27, 12},
	{"Hosea", "Hosea", 28, 14},
	{"Joel", "Joel", 29, 3},
	{"Amos", "Amos", 30, 9},
	{"Obadiah", "Obadiah", 31, 1},
	{"Jonah", "Jonah", 32, 4},
	{"Micah", "Micah", 33, 7},
	{"Nahum", "Nahum", 34, 3},
	{"Habakkuk", "Habakkuk", 35, 3},
	{"Zephaniah", "Zephaniah", 36, 3},
	{"Haggai", "Haggai", 37, 2},
	{"Zechariah", "Zechariah", 38, 14},
	{"Malachi", "Malachi", 39, 4},
	{"Matthew", "Matthew", 40, 28},
	{"Mark", "Mark", 41, 16},
	{"Luke", "Luke", 42, 24},
	{"John", "John", 43, 21},
	{"Acts", "Acts", 44, 28},
	{"Romans", "Romans", 45, 16},
	{"1Corinthians", "1 Corinthians", 46, 16},
	{"2Corinthians", "2 Corinthians", 47, 13},
	{"Galatians", "Galatians", 48, 6},
	{"Ephesians", "Ephesians", 49, 6},
	{"Philippians", "Philippians", 50, 4},
	{"Colossians", "Colossians", 51, 4},
	{"1Thessalonians", "1 Thessalonians", 52, 5},
	{"2Thessalonians", "2 Thessalonians", 53, 3},
	{"1Timothy", "1 Timothy", 54, 6},
	{"2Timothy", "2 Timothy", 55, 4},
	{"Titus", "Titus", 56, 3},
	{"Philemon", "Philemon", 57, 1},
	{"Hebrews", "Hebrews", 58, 13},
	{"James", "James", 59, 5},
	{"1Peter", "1 Peter", 60, 5},
	{"2Peter", "2 Peter", 61, 3},
	{"1John", "1 John", 62, 5},
	{"2John", "2 John", 63, 1},
	{"3John", "3 John", 64, 1},
	{"Jude", "Jude", 65, 1},
	{"Revelation", "Revelation", 66, 22},
}

// aliases maps lowercase alternate spellings and abbreviations to canonical
// IDs. The full name and ID of every book are added automatically at init;
// this table only lists the extras.
var aliases = map[string]string{
	"gen": "Genesis",
	"exod": "Exodus", "exo": "Exodus", "ex": "Exodus",
	"lev": "Leviticus",
	"num": "Numbers",
	"deut": "Deuteronomy", "deu": "Deuteronomy",
	"josh": "Joshua", "jos": "Joshua",
	"judg": "Judges", "jdg": "Judges",
	"1sam": "1Samuel", "1 sam": "1Samuel", "first samuel": "1Samuel",
	"2sam": "2Samuel", "2 sam": "2Samuel", "second samuel": "2Samuel",
	"1kgs": "1Kings", "1 kgs": "1Kings", "first kings": "1Kings",
	"2kgs": "2Kings", "2 kgs": "2Kings", "second kings": "2Kings",
	"1chr": "1Chronicles", "1 chr": "1Chronicles", "first chronicles": "1Chronicles",
	"2chr": "2Chronicles", "2 chr": "2Chronicles", "second chronicles": "2Chronicles",
	"ezr": "Ezra",
	"neh": "Nehemiah",
	"esth": "Esther", "est": "Esther",
	"ps": "Psalms", "psa": "Psalms", "psalm": "Psalms",
	"prov": "Proverbs", "pro": "Proverbs",
	"eccl": "Ecclesiastes", "ecc": "Ecclesiastes",
	"song": "SongofSolomon", "song of songs": "SongofSolomon",
	"sos": "SongofSolomon", "canticles": "SongofSolomon",
	"isa": "Isaiah",
	"jer": "Jeremiah",
	"lam": "Lamentations",
	"ezek": "Ezekiel", "eze": "Ezekiel",
	"dan": "Daniel",
	"hos": "Hosea",
	"obad": "Obadiah", "oba": "Obadiah",
	"jon": "Jonah",
	"mic": "Micah",
	"nah": "Nahum",
	"hab": "Habakkuk",
	"zeph": "Zephaniah", "zep": "Zephaniah",
	"hag": "Haggai",
	"zech": "Zechariah", "zec": "Zechariah",
	"mal": "Malachi",
	"matt": "Matthew", "mat": "Matthew", "mt": "Matthew",
	"mrk": "Mark", "mk": "Mark",
	"luk": "Luke", "lk": "Luke",
	"joh": "John", "jn": "John",
	"act": "Acts",
	"rom": "Romans",
	"1cor": "1Corinthians", "1 cor": "1Corinthians", "first corinthians": "1Corinthians",
	"2cor": "2Corinthians", "2 cor": "2Corinthians", "second corinthians": "2Corinthians",
	"gal": "Galatians",
	"eph": "Ephesians",
	"phil": "Philippians", "php": "Philippians",
	"col": "Colossians",
	"1thess": "1Thessalonians", "1 thess": "1Thessalonians", "first thessalonians": "1Thessalonians",
	"2thess": "2Thessalonians", "2 thess": "2Thessalonians", "second thessalonians": "2Thessalonians",
	"1tim": "1Timothy", "1 tim": "1Timothy", "first timothy": "1Timothy",
	"2tim": "2Timothy", "2 tim": "2Timothy", "second timothy": "2Timothy",
	"tit": "Titus",
	"phlm": "Philemon", "phm": "Philemon",
	"heb": "Hebrews",
	"jas": "James",
	"1pet": "1Peter", "1 pet": "1Peter", "first peter": "1Peter",
	"2pet": "2Peter", "2 pet": "2Peter", "second peter": "2Peter",
	"1jn": "1John", "1 jn": "1John", "first john": "1John",
	"2jn": "2John", "2 jn": "2John", "second john": "2John",
	"3jn": "3John", "3 jn": "3John", "third john": "3John",
	"jud": "Jude",
	"rev": "Revelation",
}

var (
	byID    map[string]Book
	byAlias map[string]string
)

func init() {
	byID = make(map[string]Book, len(canon))
	byAlias = make(map[string]string, len(canon)*3+len(aliases))
	for _, b := range canon {
		byID[b.ID] = b
		byAlias[strings.ToLower(b.ID)] = b.ID
		byAlias[strings.ToLower(b.Name)] = b.ID
		// "1 John" is also commonly written "1John".
		byAlias[strings.ToLower(strings.ReplaceAll(b.Name, " ", ""))] = b.ID
	}
	for alias, id := range aliases {
		byAlias[alias] = id
	}
}

// normalizeKey lowercases a raw book spelling, strips a trailing period, and
// collapses interior whitespace.
func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.TrimSuffix(key, ".")
	return strings.Join(strings.Fields(key), " ")
}

// Lookup resolves a raw or alternate book spelling to its catalog entry.
// Matching is case-insensitive and tolerates a trailing period and repeated
// whitespace. The boolean is false when no canonical entry exists.
func Lookup(raw string) (Book, bool) {
	id, ok := byAlias[normalizeKey(raw)]
	if !ok {
		return Book{}, false
	}
	return byID[id], true
}

// ByID returns the catalog entry for a canonical identifier.
func ByID(id string) (Book, bool) {
	b, ok := byID[id]
	return b, ok
}

// All returns every book in canonical order. The returned slice is a copy.
func All() []Book {
	out := make([]Book, len(canon))
	copy(out, canon)
	return out
}
