// Package resolve turns free-form utterance text into resolved scripture
// passages. A Session runs an ordered list of detection strategies over the
// normalized input: specialized detectors first, then the canonical grammar,
// then context-assisted fallbacks. The first success wins, and the session
// tracks conversational context so terse follow-ups ("verse 17") resolve
// against the last passage.
package resolve

import (
	"errors"
	"fmt"
	"sync"

	"github.com/FocuswithJustin/Lectern/core/grammar"
	"github.com/FocuswithJustin/Lectern/core/normalize"
	"github.com/FocuswithJustin/Lectern/core/passage"
	"github.com/FocuswithJustin/Lectern/internal/logging"
)

// Session holds the conversational state for one resolution stream. A
// Session serializes its own calls; independent sessions share nothing.
type Session struct {
	mu sync.Mutex

	// ctx is the last fully resolved passage, overwritten in full on every
	// success and never partially updated.
	ctx Context

	// lastInput is the last raw input that resolved successfully, used by
	// the looser fallback tiers.
	lastInput string
}

// NewSession returns a Session with empty context.
func NewSession() *Session {
	return &Session{}
}

// Context returns a copy of the current conversational context.
func (s *Session) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// tier is one resolution strategy. Tiers report failure through the error;
// an error never leaves the session.
type tier struct {
	name string
	fn   func(raw, norm string) ([]passage.Passage, error)
}

// directTiers are the detectors plus the canonical grammar, in strict
// priority order. Fallback candidates re-resolve through these only, which
// bounds the retry depth structurally.
func (s *Session) directTiers() []tier {
	return []tier{
		{"context_chapter_verse", s.detectContextChapterVerse},
		{"verse_only", s.detectVerseOnly},
		{"chapter_only", s.detectChapterOnly},
		{"combined_digits", s.detectCombinedDigits},
		{"grammar", s.parseGrammar},
	}
}

// fallbackTiers run only when every direct tier declined.
func (s *Session) fallbackTiers() []tier {
	return []tier{
		{"grammar_context", s.grammarContextRetry},
		{"legacy_context", s.legacyContextRetry},
		{"reconstruct", s.reconstructFromContext},
	}
}

// Resolve resolves one utterance. It returns nil when nothing matched; it
// never fails otherwise. On success the conversational context is
// overwritten from the first returned passage before returning.
func (s *Session) Resolve(input string) []passage.Passage {
	s.mu.Lock()
	defer s.mu.Unlock()

	norm := normalize.Text(input)
	passages := s.run(append(s.directTiers(), s.fallbackTiers()...), input, norm)
	if len(passages) == 0 {
		return nil
	}
	s.update(input, passages[0])
	return passages
}

// resolveDirect resolves a reconstructed candidate string through the
// direct tiers only.
func (s *Session) resolveDirect(candidate string) ([]passage.Passage, error) {
	passages := s.run(s.directTiers(), candidate, normalize.Text(candidate))
	if len(passages) == 0 {
		return nil, fmt.Errorf("candidate %q: %w", candidate, ErrNoMatch)
	}
	return passages, nil
}

// run iterates tiers in order, returning the first non-empty result. Tier
// failures other than a plain no-match are logged at debug level and
// swallowed; one tier's failure never stops the next.
func (s *Session) run(tiers []tier, raw, norm string) []passage.Passage {
	for _, t := range tiers {
		passages, err := t.fn(raw, norm)
		if err != nil {
			if !errors.Is(err, ErrNoMatch) {
				logging.Debug("resolution tier declined", "tier", t.name, "error", err)
			}
			continue
		}
		if len(passages) > 0 {
			logging.Debug("passage resolved", "tier", t.name, "reference", passages[0].Reference())
			return passages
		}
	}
	return nil
}

// update overwrites the conversational context from the first passage of a
// successful resolution.
func (s *Session) update(input string, first passage.Passage) {
	s.ctx = Context{
		Book:          first.Book,
		BookName:      first.FullBookName,
		Chapter:       first.Chapter,
		Verse:         first.StartVerse,
		FullReference: first.Reference(),
	}
	s.lastInput = input
}

// parseGrammar delegates to the canonical grammar and keeps the valid
// entities.
func (s *Session) parseGrammar(_, norm string) ([]passage.Passage, error) {
	entities, err := grammar.Parse(norm)
	if err != nil {
		return nil, fmt.Errorf("grammar: %w (%w)", err, ErrNoMatch)
	}
	var out []passage.Passage
	for _, e := range entities {
		if !e.Valid {
			continue
		}
		out = append(out, passageFromEntity(e))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid grammar entities: %w", ErrNoMatch)
	}
	return out, nil
}

// grammarContextRetry asks the grammar's context-assisted mode to combine
// the raw input with the last full reference, then re-resolves the
// canonical string it builds.
func (s *Session) grammarContextRetry(raw, _ string) ([]passage.Passage, error) {
	if s.ctx.FullReference == "" {
		return nil, ErrNoContext
	}
	candidate, err := grammar.ParseWithContext(raw, s.ctx.FullReference)
	if err != nil {
		return nil, fmt.Errorf("grammar context retry: %w", err)
	}
	return s.resolveDirect(candidate)
}

// legacyContextRetry repeats the context-assisted parse against the last
// successfully resolved raw input. Skipped when that input equals the
// current one, which would retry the exact same search.
func (s *Session) legacyContextRetry(raw, _ string) ([]passage.Passage, error) {
	if s.lastInput == "" || s.lastInput == raw {
		return nil, ErrNoContext
	}
	candidate, err := grammar.ParseWithContext(raw, s.lastInput)
	if err != nil {
		return nil, fmt.Errorf("legacy context retry: %w", err)
	}
	if candidate == raw {
		return nil, ErrNoMatch
	}
	return s.resolveDirect(candidate)
}

// reconstructFromContext extracts a standalone chapter and/or verse number
// from the input and splices it onto the legacy context's book, chapter and
// verse to build a fresh candidate reference.
func (s *Session) reconstructFromContext(_, norm string) ([]passage.Passage, error) {
	if s.lastInput == "" {
		return nil, ErrNoContext
	}
	entities, err := grammar.Parse(normalize.Text(s.lastInput))
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}
	var base *grammar.Entity
	for i := range entities {
		if entities[i].Valid {
			base = &entities[i]
			break
		}
	}
	if base == nil {
		return nil, fmt.Errorf("reconstruct: %w", ErrNoContext)
	}

	chapter, verse := base.Chapter, base.StartVerse
	found := false
	if c, ok := firstNumber(chapterNumPattern, norm); ok {
		chapter = c
		found = true
	}
	if v, ok := firstNumber(verseNumPattern, norm); ok {
		verse = v
		found = true
	}
	if !found {
		return nil, ErrNoMatch
	}
	if chapter < 1 || verse < 1 {
		return nil, fmt.Errorf("reconstruct: %w", ErrInvalidNumber)
	}
	return s.resolveDirect(fmt.Sprintf("%s %d:%d", base.Book.Name, chapter, verse))
}

// passageFromEntity converts a valid grammar entity, taking the first
// declared translation or the default sentinel.
func passageFromEntity(e grammar.Entity) passage.Passage {
	translation := passage.TranslationDefault
	if len(e.Translations) > 0 {
		translation = e.Translations[0]
	}
	return passage.Passage{
		Book:         e.Book.ID,
		FullBookName: e.Book.Name,
		Chapter:      e.Chapter,
		StartVerse:   e.StartVerse,
		EndVerse:     e.EndVerse,
		Translation:  translation,
	}
}
