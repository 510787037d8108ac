// Package httpapi implements the JSON-framed HTTP command surface over
// net/http, grounded on the teacher's go/server.go.
package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"bananagrams/internal/authn"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/engine"
	"bananagrams/internal/store"
	"bananagrams/internal/tiles"
)

const sessionHeader = "X-Session-Token"

// Server holds everything the HTTP handlers need: the shared dictionary,
// default settings for newly created sessions, one Engine per session
// token, and optional auth/persistence.
type Server struct {
	dict      *dictionary.Dictionary
	boardSize int
	defaults  engine.Settings
	logger    *slog.Logger

	sessions sync.Map // session token -> *engine.Engine

	verifier *authn.Verifier // nil if auth is not configured
	store    *store.Store    // nil if persistence is not configured
}

// New builds a Server. verifier and st may be nil.
func New(dict *dictionary.Dictionary, boardSize int, defaults engine.Settings, logger *slog.Logger, verifier *authn.Verifier, st *store.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{dict: dict, boardSize: boardSize, defaults: defaults, logger: logger, verifier: verifier, store: st}
}

// Routes returns the mux for this server, wrapped with CORS (and auth, if
// configured).
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/solve", s.handleSolve)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/playable-words", s.handlePlayableWords)
	mux.HandleFunc("POST /api/random-letters", s.handleRandomLetters)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("POST /api/settings", s.handleSetSettings)
	mux.HandleFunc("GET /api/session", s.handleGetSession)

	var h http.Handler = mux
	if s.verifier != nil {
		h = s.verifier.Middleware(h)
	}
	return withCORS(h)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+sessionHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("httpapi: failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sessionTokenFor resolves the session key for a request: a verified OIDC
// subject takes priority, falling back to a client-supplied header, and
// finally a freshly minted token the caller must remember and resend.
func (s *Server) sessionTokenFor(w http.ResponseWriter, r *http.Request) string {
	if s.verifier != nil {
		if claims, ok := authn.FromContext(r.Context()); ok {
			return "user:" + claims.Subject
		}
	}
	if tok := r.Header.Get(sessionHeader); tok != "" {
		return tok
	}
	tok := newSessionToken()
	w.Header().Set(sessionHeader, tok)
	return tok
}

func newSessionToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *Server) engineFor(token string) *engine.Engine {
	if e, ok := s.sessions.Load(token); ok {
		return e.(*engine.Engine)
	}
	e := engine.New(s.dict, s.boardSize, s.defaults)
	actual, _ := s.sessions.LoadOrStore(token, e)
	return actual.(*engine.Engine)
}

// handFromJSON decodes the wire format's available_letters object into a
// tiles.Hand, enforcing §6's rule that every letter A..Z must appear as a
// key with a non-negative value.
func handFromJSON(m map[string]int) (tiles.Hand, error) {
	var h tiles.Hand
	for i := 0; i < tiles.NumLetters; i++ {
		key := string(rune('A' + i))
		v, ok := m[key]
		if !ok || v < 0 {
			return tiles.Hand{}, engine.ErrInvalidInput
		}
		h[i] = v
	}
	return h, nil
}

// handToJSON renders a hand as the wire format's { "A": int, ..., "Z": int } object.
func handToJSON(h tiles.Hand) map[string]int {
	out := make(map[string]int, tiles.NumLetters)
	for i := 0; i < tiles.NumLetters; i++ {
		out[string(rune('A'+i))] = h[i]
	}
	return out
}

type solveRequest struct {
	AvailableLetters map[string]int `json:"available_letters"`
}

type solveResponse struct {
	Board   [][]string `json:"board"`
	Elapsed int64      `json:"elapsed"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hand, err := handFromJSON(req.AvailableLetters)
	if err != nil {
		writeError(w, statusForErr(err), err.Error())
		return
	}
	token := s.sessionTokenFor(w, r)
	e := s.engineFor(token)

	sol, err := e.SolveHand(r.Context(), hand)
	if err != nil {
		writeError(w, statusForErr(err), err.Error())
		return
	}
	if s.store != nil {
		go s.persist(context.Background(), token, sol, tiles.Decode(hand.Letters()))
	}
	writeJSON(w, http.StatusOK, solveResponse{Board: sol.Board, Elapsed: sol.ElapsedMS})
}

func (s *Server) persist(ctx context.Context, token string, sol *engine.Solution, letters string) {
	if err := s.store.Save(ctx, store.Snapshot{SessionToken: token, Board: sol.Board, Hand: letters}); err != nil {
		s.logger.Warn("httpapi: failed to persist session snapshot", "error", err)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	token := s.sessionTokenFor(w, r)
	s.engineFor(token).Reset()
	if s.store != nil {
		go func() {
			if err := s.store.Delete(context.Background(), token); err != nil {
				s.logger.Warn("httpapi: failed to delete session snapshot", "error", err)
			}
		}()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handlePlayableWords(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hand, err := handFromJSON(req.AvailableLetters)
	if err != nil {
		writeError(w, statusForErr(err), err.Error())
		return
	}
	token := s.sessionTokenFor(w, r)
	words, err := s.engineFor(token).GetPlayableWords(tiles.Decode(hand.Letters()))
	if err != nil {
		writeError(w, statusForErr(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"short": words.Short, "long": words.Long})
}

type randomLettersRequest struct {
	What    string `json:"what"`
	HowMany int    `json:"how_many"`
}

func (s *Server) handleRandomLetters(w http.ResponseWriter, r *http.Request) {
	var req randomLettersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token := s.sessionTokenFor(w, r)
	hand, err := s.engineFor(token).GetRandomLetters(engine.RandomMode(req.What), req.HowMany)
	if err != nil {
		writeError(w, statusForErr(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, handToJSON(hand))
}

// handleGetSession returns the persisted snapshot for the caller's session
// token, when a session store is configured (§4.N). It reports 404 when
// persistence isn't configured or nothing has been saved for this token
// yet — session persistence is a restart convenience, not part of the
// Engine API's own correctness.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "session persistence not configured")
		return
	}
	token := s.sessionTokenFor(w, r)
	snap, err := s.store.Load(r.Context(), token)
	if err != nil {
		s.logger.Warn("httpapi: failed to load session snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "no persisted session for this token")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	token := s.sessionTokenFor(w, r)
	writeJSON(w, http.StatusOK, s.engineFor(token).GetSettings())
}

func (s *Server) handleSetSettings(w http.ResponseWriter, r *http.Request) {
	var settings engine.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token := s.sessionTokenFor(w, r)
	if err := s.engineFor(token).SetSettings(settings); err != nil {
		writeError(w, statusForErr(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func statusForErr(err error) int {
	switch err {
	case engine.ErrInvalidInput:
		return http.StatusBadRequest
	case engine.ErrNoValidWords, engine.ErrNoSolution:
		return http.StatusUnprocessableEntity
	case engine.ErrCancelled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
