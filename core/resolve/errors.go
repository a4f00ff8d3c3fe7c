package resolve

import "errors"

// Tier outcome kinds. A tier that declines wraps one of these; the session
// logs the decline at debug level and moves to the next tier. None of them
// ever reaches a caller.
var (
	// ErrNoMatch means the tier found nothing to act on. This is the
	// expected outcome for most tiers on most inputs, not a failure.
	ErrNoMatch = errors.New("no match")

	// ErrInvalidNumber means a matched pattern's numeric group failed to
	// parse or violated an invariant (e.g. chapter 0).
	ErrInvalidNumber = errors.New("invalid numeric token")

	// ErrUnknownBook means a detected book spelling resolved to no catalog
	// entry. The match is discarded rather than upgraded to a guess.
	ErrUnknownBook = errors.New("unknown book name")

	// ErrNoContext means the tier needs conversational context that the
	// session does not hold yet.
	ErrNoContext = errors.New("no conversational context")
)
