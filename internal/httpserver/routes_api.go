// internal/httpserver/routes_api.go
//
// JSON endpoints for script clients, mounted under /api:
//   - GET  /api/session         → current session view
//   - PUT  /api/session/input   → change-input {"text": "..."}
//   - POST /api/session/guess   → optional {"guess": "..."}, then submit-guess
//   - POST /api/session/restart → restart
//   - GET  /api/session/rounds  → finished rounds of this session
//
// The secret is only exposed once the round is over.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/store"
)

// sessionView is the JSON representation of a session.
type sessionView struct {
	ID          string      `json:"id"`
	Round       int         `json:"round"`
	Pending     string      `json:"pending"`
	Message     string      `json:"message"`
	Attempts    int         `json:"attempts"`
	MaxAttempts int         `json:"maxAttempts"`
	Min         int         `json:"min"`
	Max         int         `json:"max"`
	Status      game.Status `json:"status"` // "playing" | "won" | "lost"
	GameOver    bool        `json:"gameOver"`
	Secret      *int        `json:"secret,omitempty"`
}

func newSessionView(g game.Session) sessionView {
	v := sessionView{
		ID:          g.ID,
		Round:       g.Round,
		Pending:     g.Pending,
		Message:     g.Message,
		Attempts:    g.Attempts,
		MaxAttempts: game.MaxAttempts,
		Min:         game.MinNumber,
		Max:         game.MaxNumber,
		Status:      g.Status,
		GameOver:    g.Status.Over(),
	}
	if v.GameOver {
		secret := g.Secret
		v.Secret = &secret
	}
	return v
}

// inputReq is the payload for PUT /api/session/input.
type inputReq struct {
	Text string `json:"text"`
}

// guessReq is the optional payload for POST /api/session/guess.
type guessReq struct {
	Guess *string `json:"guess"`
}

// roundsRes is returned by GET /api/session/rounds.
type roundsRes struct {
	Rounds []store.Round `json:"rounds"`
	Played int           `json:"played"`
	Won    int           `json:"won"`
}

// mountAPI registers the /api routes on r.
func (s *Server) mountAPI(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Get("/", s.handleGetSession)
		r.Put("/input", s.handleInput)
		r.Post("/guess", s.handleGuess)
		r.Post("/restart", s.handleRestart)
		r.Get("/rounds", s.handleRounds)
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, nil)
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.respond(w, r, func(e *game.Engine, g game.Session) game.Session {
		return e.ChangeInput(g, req.Text)
	})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.respond(w, r, func(e *game.Engine, g game.Session) game.Session {
		if req.Guess != nil {
			g = e.ChangeInput(g, *req.Guess)
		}
		return e.SubmitGuess(g)
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, func(e *game.Engine, g game.Session) game.Session {
		return e.Restart(g)
	})
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.store.Rounds(r.Context(), sessionIDFrom(r))
	if err != nil {
		s.serverError(w, r, err, "load rounds")
		return
	}
	writeJSON(w, http.StatusOK, roundsRes{Rounds: rounds, Played: len(rounds), Won: countWon(rounds)})
}

// respond applies op to the bound session and writes the resulting view.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, op func(*game.Engine, game.Session) game.Session) {
	g, err := s.transition(r.Context(), sessionIDFrom(r), s.langFrom(r), op)
	if err != nil {
		s.serverError(w, r, err, "session transition")
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(g))
}

// serverError logs err and answers 500.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error, what string) {
	hlog.FromRequest(r).Error().Err(err).Str("session", sessionIDFrom(r)).Msg(what)
	writeError(w, http.StatusInternalServerError, "server_error")
}
