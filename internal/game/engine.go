// internal/game/engine.go
//
// Game engine for a single number-guessing session.
// Responsibilities:
//   - Create sessions with a fresh secret in [MinNumber, MaxNumber].
//   - Track the pending (not yet submitted) guess text.
//   - Validate and apply guesses: parse, range-check, compare.
//   - Track state transitions: playing → won/lost, and restart.
//
// Notes:
//   - All operations take a Session and return the next Session.
//   - Invalid input is never an error; it only changes Message.
//   - Messages are rendered through a *message.Printer so the same engine
//     serves every supported language (see internal/i18n).
package game

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"math/big"
	mrand "math/rand/v2"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/robalobadob/numguess/internal/i18n"
)

// Engine applies game rules to sessions. It holds no per-game state and is
// safe for concurrent use as long as its Generator is.
type Engine struct {
	rng     Generator
	printer *message.Printer
	strict  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator sets the randomness source used to draw secrets.
func WithGenerator(g Generator) Option {
	return func(e *Engine) {
		if g != nil {
			e.rng = g
		}
	}
}

// WithPrinter sets the printer used to render messages.
func WithPrinter(p *message.Printer) Option {
	return func(e *Engine) {
		if p != nil {
			e.printer = p
		}
	}
}

// WithStrictParsing makes guesses require a whole-string integer match
// instead of the default leading-prefix parse.
func WithStrictParsing(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// NewEngine constructs an engine. By default it draws secrets from
// crypto/rand and prints messages in English with lenient parsing.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng:     cryptoGenerator{},
		printer: i18n.Printer(language.English),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Localized returns a copy of the engine that renders messages with p.
func (e *Engine) Localized(p *message.Printer) *Engine {
	cp := *e
	if p != nil {
		cp.printer = p
	}
	return &cp
}

// Printer exposes the printer used for messages.
func (e *Engine) Printer() *message.Printer { return e.printer }

// NewSession starts the first round of a session identified by id.
// If id is empty a random identifier is generated.
func (e *Engine) NewSession(id string) Session {
	if id == "" {
		id = randomID()
	}
	return Session{
		ID:      id,
		Round:   1,
		Secret:  e.drawSecret(),
		Message: e.printer.Sprintf(i18n.KeyPrompt, MinNumber, MaxNumber),
		Status:  StatusPlaying,
	}
}

// ChangeInput replaces the pending guess text. Nothing else changes.
func (e *Engine) ChangeInput(s Session, text string) Session {
	s.Pending = text
	return s
}

// SubmitGuess validates the pending guess and applies it.
//
// Rules, in order:
//   - A finished session is returned unchanged.
//   - Unparseable or out-of-range input sets a validation message and
//     clears the pending text; attempts and status are untouched.
//   - Otherwise attempts is incremented, then: a match wins; the last
//     allowed attempt loses; else the player is told to go higher or lower.
func (e *Engine) SubmitGuess(s Session) Session {
	if s.Status != StatusPlaying {
		return s
	}

	n, ok := e.parse(s.Pending)
	s.Pending = ""
	if !ok || n < MinNumber || n > MaxNumber {
		s.Message = e.printer.Sprintf(i18n.KeyInvalid, MinNumber, MaxNumber)
		return s
	}

	s.Attempts++
	switch {
	case n == s.Secret:
		s.Status = StatusWon
		s.Message = e.printer.Sprintf(i18n.KeyWon, s.Secret, s.Attempts)
	case s.Attempts >= MaxAttempts:
		s.Status = StatusLost
		s.Message = e.printer.Sprintf(i18n.KeyLost, MaxAttempts, s.Secret)
	case n < s.Secret:
		s.Message = e.printer.Sprintf(i18n.KeyTooLow)
	default:
		s.Message = e.printer.Sprintf(i18n.KeyTooHigh)
	}
	return s
}

// Restart replaces the session with a new round: fresh secret, cleared
// input, initial prompt, zero attempts. The identifier is kept so the
// browser stays bound to the same session; Round is incremented.
func (e *Engine) Restart(s Session) Session {
	next := e.NewSession(s.ID)
	next.Round = s.Round + 1
	return next
}

func (e *Engine) parse(text string) (int, bool) {
	if e.strict {
		return ParseGuessStrict(text)
	}
	return ParseGuess(text)
}

// drawSecret returns a uniform integer in [MinNumber, MaxNumber].
func (e *Engine) drawSecret() int {
	return MinNumber + e.rng.Intn(MaxNumber-MinNumber+1)
}

// cryptoGenerator draws from crypto/rand (or src when set). If the source
// fails it falls back to math/rand/v2 so the draw stays uniform.
type cryptoGenerator struct {
	src io.Reader
}

func (g cryptoGenerator) Intn(n int) int {
	src := g.src
	if src == nil {
		src = rand.Reader
	}
	v, err := rand.Int(src, big.NewInt(int64(n)))
	if err != nil {
		return mrand.IntN(n)
	}
	return int(v.Int64())
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
