// internal/httpserver/server.go
//
// HTTP server wiring for the guessing game.
// Responsibilities:
//   - Router + middleware (timeouts, panic recovery, request IDs, access log).
//   - Browser endpoints: "/", POST /guess, POST /restart, /static/*.
//   - JSON endpoints under /api/session for script clients.
//   - Session binding through a signed browser-session cookie.
//   - Serialised load → apply → save of game transitions.
//
// Notes:
//   - Game outcomes (wrong guess, invalid input, game over) are never HTTP
//     errors; they are reported through the session message.
//   - Form posts answer with 303 See Other so a reload never resubmits.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/numguess/assets"
	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/i18n"
	"github.com/robalobadob/numguess/internal/store"
)

// Options configures a Server.
type Options struct {
	Store          store.Store
	Engine         *game.Engine
	SessionSecret  string
	Secure         bool          // Secure cookies (production)
	DefaultLang    language.Tag  // used when the request names no language
	RequestTimeout time.Duration // 0 means 10s
	ClientOrigin   string        // cross-origin script client allowed by CORS; empty disables CORS
	Logger         *zerolog.Logger
}

// Server bundles router, session store and game engine.
type Server struct {
	r      *chi.Mux
	store  store.Store
	engine *game.Engine
	tmpl   *template.Template
	secret []byte
	secure bool
	lang   language.Tag

	mu sync.Mutex // serialises session transitions
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Engine == nil {
		opts.Engine = game.NewEngine()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.DefaultLang == language.Und {
		opts.DefaultLang = i18n.Default()
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	s := &Server{
		r:      chi.NewRouter(),
		store:  opts.Store,
		engine: opts.Engine,
		tmpl:   newTemplates(),
		secret: []byte(opts.SessionSecret),
		secure: opts.Secure,
		lang:   opts.DefaultLang,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(logger))            // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog))      // one line per request
	s.r.Use(chimw.Recoverer)                    // recover from panics
	if opts.ClientOrigin != "" {
		s.r.Use(corsFor(opts.ClientOrigin)) // credentials-friendly CORS
	}
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(s.withLanguage)                     // resolve display language

	// --- diagnostics ---
	s.r.With(jsonContentType).Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Static files
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets.Static()))))

	// Browser endpoints
	s.r.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/", s.handlePage)
		r.Post("/guess", s.handleFormGuess)
		r.Post("/restart", s.handleFormRestart)
	})

	// JSON API
	s.r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Use(s.withSession)
		s.mountAPI(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin. The session token
// header is exposed so script clients can switch to bearer auth.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+sessionTokenHeader)
			w.Header().Set("Access-Control-Expose-Headers", sessionTokenHeader)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one structured line per request.
func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Str("requestId", chimw.GetReqID(r.Context())).
		Msg("request")
}

type ctxLangKey struct{}

// withLanguage resolves the request language and persists an explicit
// ?lang= choice as a cookie.
func (s *Server) withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, persist := i18n.ResolveTag(r, s.lang)
		if persist {
			i18n.SetLanguageCookie(w, tag)
		}
		ctx := context.WithValue(r.Context(), ctxLangKey{}, tag)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// langFrom returns the language resolved by withLanguage.
func (s *Server) langFrom(r *http.Request) language.Tag {
	if tag, ok := r.Context().Value(ctxLangKey{}).(language.Tag); ok {
		return tag
	}
	return s.lang
}

// ------------------------------ transitions --------------------------------

// transition loads the session id (creating it on first use), applies op
// with an engine localised for lang, saves the result, and records the
// round when op finished it.
func (s *Server) transition(ctx context.Context, id string, lang language.Tag,
	op func(e *game.Engine, g game.Session) game.Session) (game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := zerolog.Ctx(ctx)
	eng := s.engine.Localized(i18n.Printer(lang))
	created := false
	cur, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		cur, created = eng.NewSession(id), true
		logger.Info().Str("session", id).Msg("new session")
	} else if err != nil {
		return game.Session{}, err
	}

	next := cur
	if op != nil {
		next = op(eng, cur)
	}
	if created || next != cur {
		if err := s.store.Save(ctx, next); err != nil {
			return game.Session{}, err
		}
	}

	// Persist the finished round (best effort, non-fatal if it fails)
	if !cur.Status.Over() && next.Status.Over() && next.Round == cur.Round {
		err := s.store.RecordRound(ctx, store.Round{
			SessionID:  next.ID,
			Round:      next.Round,
			Status:     next.Status,
			Attempts:   next.Attempts,
			Secret:     next.Secret,
			FinishedAt: time.Now().UTC(),
		})
		if err != nil {
			logger.Warn().Err(err).Str("session", next.ID).Msg("record round")
		}
		logger.Info().Str("session", next.ID).Int("round", next.Round).
			Str("status", string(next.Status)).Int("attempts", next.Attempts).Msg("round finished")
	}
	return next, nil
}

// ------------------------------- small util --------------------------------

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the {"error": code} body used by every JSON failure.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
