package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/FocuswithJustin/Lectern/core/books"
	"github.com/FocuswithJustin/Lectern/core/passage"
	"github.com/FocuswithJustin/Lectern/internal/logging"
)

// maxInputLength bounds utterance text; live transcription chunks are
// normally well under 200 characters.
const maxInputLength = 1024

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
}

// ResolveResponse is the data payload of a resolve call. Passages is null
// when nothing matched; callers show nothing rather than a wrong guess.
type ResolveResponse struct {
	SessionID string            `json:"session_id"`
	Passages  []passage.Passage `json:"passages"`
}

// setupRoutes builds the API mux.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/resolve", s.handleResolve)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)
	mux.HandleFunc("GET /api/v1/books", s.handleBooks)
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Field 'text' is required")
		return
	}
	if len(req.Text) > maxInputLength {
		respondError(w, http.StatusBadRequest, "INPUT_TOO_LONG", "Field 'text' exceeds maximum length")
		return
	}

	sessionID, session := s.sessions.get(req.SessionID)
	passages := session.Resolve(req.Text)

	if len(passages) > 0 {
		logging.ResolutionEvent(sessionID, req.Text, passages[0].Reference())
		s.recordHistory(r.Context(), sessionID, req.Text, passages[0])
		s.broadcastPassages(sessionID, passages)
	}

	respond(w, http.StatusOK, ResolveResponse{SessionID: sessionID, Passages: passages})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotFound, "HISTORY_DISABLED", "History store is not configured")
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			limit = n
		}
	}
	entries, err := s.history.Recent(r.Context(), r.URL.Query().Get("session_id"), limit)
	if err != nil {
		logging.Error("history query failed", "error", err)
		respondError(w, http.StatusInternalServerError, "HISTORY_ERROR", "Failed to query history")
		return
	}
	respond(w, http.StatusOK, entries)
}

func (s *Server) handleBooks(w http.ResponseWriter, _ *http.Request) {
	type bookInfo struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Order    int    `json:"order"`
		Chapters int    `json:"chapters"`
	}
	all := books.All()
	out := make([]bookInfo, 0, len(all))
	for _, b := range all {
		out = append(out, bookInfo{ID: b.ID, Name: b.Name, Order: b.Order, Chapters: b.Chapters})
	}
	respond(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parsePositiveInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("limit must be positive, got %d", n)
	}
	return n, nil
}
