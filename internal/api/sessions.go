package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Lectern/core/resolve"
)

// sessionTTL is how long an idle session keeps its conversational context.
const sessionTTL = 2 * time.Hour

// sessionEntry pairs a resolver session with its last-used time.
type sessionEntry struct {
	session  *resolve.Session
	lastUsed time.Time
}

// sessionRegistry hands out per-caller resolver sessions keyed by UUID so
// each transcription stream keeps its own conversational context.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	r := &sessionRegistry{sessions: make(map[string]*sessionEntry)}
	go r.reap()
	return r
}

// get returns the session for id, creating a fresh one (with a new UUID)
// when id is unknown or empty. The returned id identifies the session the
// caller should reuse.
func (r *sessionRegistry) get(id string) (string, *resolve.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if e, ok := r.sessions[id]; ok {
			e.lastUsed = time.Now()
			return id, e.session
		}
	}
	id = uuid.NewString()
	e := &sessionEntry{session: resolve.NewSession(), lastUsed: time.Now()}
	r.sessions[id] = e
	return id, e.session
}

// reap drops sessions idle past the TTL.
func (r *sessionRegistry) reap() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.mu.Lock()
		cutoff := time.Now().Add(-sessionTTL)
		for id, e := range r.sessions {
			if e.lastUsed.Before(cutoff) {
				delete(r.sessions, id)
			}
		}
		r.mu.Unlock()
	}
}
