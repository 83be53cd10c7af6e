// internal/httpserver/server.go
//
// HTTP server wiring for the guessing game.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, panic recovery, timeouts, CORS).
//   - Browser page: "/" and "/static/*" from the embedded assets.
//   - Diagnostics: "/health", "/api".
//   - Game endpoints: POST /game/new, then (session token required)
//     POST /game/guess, POST /game/restart, GET /game/state, GET /game/ws.
//   - Daily endpoints: mounted under /daily.
//
// Notes:
//   - Each session is identified by a signed token (see session.go) carried in
//     a cookie or an Authorization: Bearer header.
//   - Guesses are rate limited per session.
//   - Expired sessions are removed by Sweep (see sweep.go).

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/guess-number/assets"
	"github.com/robalobadob/guess-number/internal/config"
	"github.com/robalobadob/guess-number/internal/game"
	"github.com/robalobadob/guess-number/internal/secret"
	"github.com/robalobadob/guess-number/internal/store"
)

// Server bundles router, session store and settings.
type Server struct {
	r        *chi.Mux
	store    store.Store
	cfg      config.Config
	limiters *limiters // per-session guess limits

	// newSource picks the secret source for "normal" sessions.
	newSource func() secret.Source
	now       func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithSource overrides the secret source used by new normal sessions.
func WithSource(f func() secret.Source) Option {
	return func(s *Server) { s.newSource = f }
}

// WithClock overrides the clock (daily date, token times).
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		store:     st,
		cfg:       cfg,
		limiters:  newLimiters(rate.Limit(cfg.GuessRate), cfg.GuessBurst),
		newSource: secret.Crypto,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(corsFor(cfg.ClientOrigin))

	// --- browser page ---
	s.r.Get("/", s.handleIndex)
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets.Web()))))

	// --- JSON API ---
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/api", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service":   "guess-number",
				"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "POST /game/restart", "GET /game/state", "GET /game/ws", "POST /daily/new", "GET /daily"},
			})
		})

		r.Post("/game/new", s.handleNewGame)
		r.With(s.requireSession()).Post("/game/guess", s.handleGuess)
		r.With(s.requireSession()).Post("/game/restart", s.handleRestart)
		r.With(s.requireSession()).Get("/game/state", s.handleState)

		s.mountDaily(r)
	})

	// WebSocket connections outlive the handler timeout.
	s.r.With(s.requireSession()).Get("/game/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return hs.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ------------------------------ PAGE ---------------------------------------

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := assets.Index()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("read index")
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "normal" | "daily"
}
type newGameRes struct {
	GameID string  `json:"gameId"`
	Token  string  `json:"token"`
	Mode   string  `json:"mode"`
	Date   string  `json:"date,omitempty"` // daily mode only
	View   viewRes `json:"view"`
}

// viewRes is the session view plus the text to display.
type viewRes struct {
	game.View
	Text string `json:"text,omitempty"`
}

// guessRes adds the outcome classification to the view.
type guessRes struct {
	viewRes
	Message game.Message `json:"message"`
}

// handleNewGame creates a session, stores it, and hands out its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body means the default mode.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	switch mode {
	case "", "normal":
		s.startSession(w, r, "normal", s.newSource())
	case "daily":
		s.startDaily(w, r)
	default:
		writeError(w, http.StatusBadRequest, "unknown_mode")
	}
}

// startSession stores a new session for src and writes its token.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, mode string, src secret.Source) {
	sess := game.NewSession(s.cfg.Rules(), src)
	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	// The session lives exactly as long as its token.
	if err := s.store.Save(r.Context(), sess, exp); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)

	res := newGameRes{
		GameID: sess.ID,
		Token:  tok,
		Mode:   mode,
		View:   viewRes{View: sess.Snapshot(), Text: game.StartText},
	}
	if mode == "daily" {
		res.Date = s.today()
	}
	hlog.FromRequest(r).Info().Str("gameId", sess.ID).Str("mode", mode).Msg("session started")
	writeJSON(w, http.StatusOK, res)
}

// guessReq carries the raw guess; strings and JSON numbers are both accepted
// and handed to the engine unparsed.
type guessReq struct {
	Guess json.RawMessage `json:"guess"`
}

func (g guessReq) raw() string {
	if len(g.Guess) == 0 || string(g.Guess) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(g.Guess, &s); err == nil {
		return s
	}
	return string(g.Guess)
}

// handleGuess applies a guess to the caller's session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if !s.limiters.allow(sess.ID) {
		writeError(w, http.StatusTooManyRequests, "rate_limited")
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	res := s.guess(sess, req.raw())
	hlog.FromRequest(r).Debug().
		Str("gameId", sess.ID).
		Stringer("message", res.Message).
		Int("score", res.Score).
		Msg("guess")
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) guess(sess *game.Session, raw string) guessRes {
	out := sess.SubmitGuess(raw)
	return guessRes{
		viewRes: viewRes{View: sess.Snapshot(), Text: out.Message.Text()},
		Message: out.Message,
	}
}

// handleRestart starts a new round in the caller's session.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	v := sess.Restart()
	hlog.FromRequest(r).Debug().Str("gameId", sess.ID).Msg("restart")
	writeJSON(w, http.StatusOK, viewRes{View: v, Text: game.StartText})
}

// handleState returns the caller's session view.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewRes{View: sessionFrom(r).Snapshot()})
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
