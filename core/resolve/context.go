package resolve

// Context is the conversational context: the single most recently resolved
// passage, kept so terse follow-up utterances ("verse 17", "chapter 5") can
// resolve relative to it. Fields are always written together from one
// passage; a zero Context means nothing has resolved yet.
type Context struct {
	// Book is the canonical book identifier of the last resolution.
	Book string `json:"book,omitempty"`

	// BookName is the full display name of that book.
	BookName string `json:"book_name,omitempty"`

	// Chapter and Verse locate the start of the last resolution.
	Chapter int `json:"chapter,omitempty"`
	Verse   int `json:"verse,omitempty"`

	// FullReference is the canonical string of the last resolution.
	FullReference string `json:"full_reference,omitempty"`
}

// HasBook reports whether a book has been established.
func (c Context) HasBook() bool { return c.Book != "" }

// HasChapter reports whether both book and chapter are established.
func (c Context) HasChapter() bool { return c.Book != "" && c.Chapter >= 1 }
