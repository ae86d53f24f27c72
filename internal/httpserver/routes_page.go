// internal/httpserver/routes_page.go
//
// Server-rendered browser front end.
//   - GET  /        → render the current session
//   - POST /guess   → change-input(form "guess") + submit-guess, then 303 to /
//   - POST /restart → restart, then 303 to /
//
// The guess form is only rendered while the round is in play; the restart
// button only once it is over.

package httpserver

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numguess/assets"
	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/i18n"
	"github.com/robalobadob/numguess/internal/store"
)

// pageData is the view model of the page template.
type pageData struct {
	Lang        string
	Session     game.Session
	GameOver    bool
	Min         int
	Max         int
	MaxAttempts int
	Rounds      []store.Round
	Won         int
	Langs       []langLink
}

// langLink is one entry of the language switcher.
type langLink struct {
	Code    string
	Name    string
	Current bool
}

func langLinks(current string) []langLink {
	tags := i18n.Supported()
	links := make([]langLink, 0, len(tags))
	for _, tag := range tags {
		code := tag.String()
		links = append(links, langLink{Code: code, Name: i18n.Name(tag), Current: code == current})
	}
	return links
}

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		// t renders a catalog message in the page language.
		"t": func(lang, key string, args ...any) string {
			tag, ok := i18n.ParseTag(lang)
			if !ok {
				tag = i18n.Default()
			}
			return i18n.Printer(tag).Sprintf(key, args...)
		},
	}
	return template.Must(template.New("page").Funcs(funcs).ParseFS(assets.Templates(), "*.html"))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	lang := s.langFrom(r)
	g, err := s.transition(r.Context(), sessionIDFrom(r), lang, nil)
	if err != nil {
		s.serverError(w, r, err, "load session")
		return
	}
	rounds, err := s.store.Rounds(r.Context(), g.ID)
	if err != nil {
		s.serverError(w, r, err, "load rounds")
		return
	}

	data := pageData{
		Lang:        lang.String(),
		Session:     g,
		GameOver:    g.Status.Over(),
		Min:         game.MinNumber,
		Max:         game.MaxNumber,
		MaxAttempts: game.MaxAttempts,
		Rounds:      rounds,
		Won:         countWon(rounds),
		Langs:       langLinks(lang.String()),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render page")
	}
}

func (s *Server) handleFormGuess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	text := r.PostFormValue("guess")
	_, err := s.transition(r.Context(), sessionIDFrom(r), s.langFrom(r), func(e *game.Engine, g game.Session) game.Session {
		return e.SubmitGuess(e.ChangeInput(g, text))
	})
	if err != nil {
		s.serverError(w, r, err, "apply guess")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFormRestart(w http.ResponseWriter, r *http.Request) {
	_, err := s.transition(r.Context(), sessionIDFrom(r), s.langFrom(r), func(e *game.Engine, g game.Session) game.Session {
		return e.Restart(g)
	})
	if err != nil {
		s.serverError(w, r, err, "restart")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// countWon returns how many rounds ended in a win.
func countWon(rounds []store.Round) int {
	n := 0
	for _, r := range rounds {
		if r.Status == game.StatusWon {
			n++
		}
	}
	return n
}
