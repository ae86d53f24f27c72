package game

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/robalobadob/numguess/internal/i18n"
)

// fixed always draws the same secret.
type fixed int

func (f fixed) Intn(n int) int { return int(f) - MinNumber }

// sequence draws the given secrets in order, then repeats the last one.
type sequence struct {
	secrets []int
	i       int
}

func (s *sequence) Intn(n int) int {
	v := s.secrets[s.i]
	if s.i < len(s.secrets)-1 {
		s.i++
	}
	return v - MinNumber
}

func newTestEngine(secret int, opts ...Option) *Engine {
	return NewEngine(append([]Option{WithGenerator(fixed(secret))}, opts...)...)
}

func guess(e *Engine, s Session, text string) Session {
	return e.SubmitGuess(e.ChangeInput(s, text))
}

func checkInvariants(t *testing.T, s Session) {
	t.Helper()
	if s.Attempts < 0 || s.Attempts > MaxAttempts {
		t.Fatalf("attempts out of range: %d", s.Attempts)
	}
	if s.Secret < MinNumber || s.Secret > MaxNumber {
		t.Fatalf("secret out of range: %d", s.Secret)
	}
	if s.Status == StatusLost && s.Attempts != MaxAttempts {
		t.Fatalf("lost with %d attempts", s.Attempts)
	}
}

func TestNewSession(t *testing.T) {
	e := newTestEngine(42)
	s := e.NewSession("")
	if s.ID == "" {
		t.Fatal("expected generated id")
	}
	if s.Round != 1 || s.Secret != 42 || s.Attempts != 0 || s.Pending != "" || s.Status != StatusPlaying {
		t.Fatalf("unexpected initial session: %+v", s)
	}
	if s.Message != "Guess a number between 1 and 100." {
		t.Fatalf("unexpected prompt: %q", s.Message)
	}
	if got := e.NewSession("abc").ID; got != "abc" {
		t.Fatalf("id = %q, want abc", got)
	}
}

func TestHigherLowerThenWin(t *testing.T) {
	e := newTestEngine(50)
	s := e.NewSession("")

	s = guess(e, s, "25")
	checkInvariants(t, s)
	if !strings.Contains(strings.ToLower(s.Message), "too low") || s.Attempts != 1 || s.Status != StatusPlaying {
		t.Fatalf("after 25: %+v", s)
	}

	s = guess(e, s, "75")
	checkInvariants(t, s)
	if !strings.Contains(strings.ToLower(s.Message), "too high") || s.Attempts != 2 || s.Status != StatusPlaying {
		t.Fatalf("after 75: %+v", s)
	}

	s = guess(e, s, "50")
	checkInvariants(t, s)
	if s.Status != StatusWon || s.Attempts != 3 {
		t.Fatalf("after 50: %+v", s)
	}
	if !strings.Contains(s.Message, "3") || !strings.Contains(s.Message, "50") {
		t.Fatalf("win message should name secret and attempts: %q", s.Message)
	}
	if s.Pending != "" {
		t.Fatalf("pending not cleared: %q", s.Pending)
	}
}

func TestLoseAfterMaxAttempts(t *testing.T) {
	e := newTestEngine(7)
	s := e.NewSession("")
	for i := 1; i <= MaxAttempts; i++ {
		s = guess(e, s, strconv.Itoa(50+i))
		checkInvariants(t, s)
		if i < MaxAttempts && s.Status != StatusPlaying {
			t.Fatalf("guess %d ended the game: %+v", i, s)
		}
	}
	if s.Status != StatusLost || s.Attempts != MaxAttempts {
		t.Fatalf("expected loss after %d attempts: %+v", MaxAttempts, s)
	}
	if !strings.Contains(s.Message, "7") || !strings.Contains(s.Message, "10") {
		t.Fatalf("loss message should name secret and limit: %q", s.Message)
	}
}

func TestWinOnLastAttempt(t *testing.T) {
	e := newTestEngine(7)
	s := e.NewSession("")
	for i := 1; i < MaxAttempts; i++ {
		s = guess(e, s, "90")
	}
	s = guess(e, s, "7")
	if s.Status != StatusWon || s.Attempts != MaxAttempts {
		t.Fatalf("a match on the last attempt must win: %+v", s)
	}
}

func TestInvalidInput(t *testing.T) {
	cases := []string{"abc", "", "   ", "0", "101", "-5", "1000000000000000000000"}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			e := newTestEngine(50)
			s := e.NewSession("")
			s = guess(e, s, "10") // one valid attempt first
			next := guess(e, s, in)
			checkInvariants(t, next)
			if next.Attempts != s.Attempts || next.Status != s.Status || next.Secret != s.Secret {
				t.Fatalf("invalid input changed game: before %+v after %+v", s, next)
			}
			if next.Pending != "" {
				t.Fatalf("pending not cleared: %q", next.Pending)
			}
			if next.Message != "Please enter a valid number between 1 and 100." {
				t.Fatalf("unexpected message: %q", next.Message)
			}
		})
	}
}

func TestPrefixParsingIsLenientByDefault(t *testing.T) {
	e := newTestEngine(42)
	s := guess(e, e.NewSession(""), "42abc")
	if s.Status != StatusWon || s.Attempts != 1 {
		t.Fatalf("\"42abc\" should count as 42: %+v", s)
	}
}

func TestStrictParsing(t *testing.T) {
	e := newTestEngine(42, WithStrictParsing(true))
	s := guess(e, e.NewSession(""), "42abc")
	if s.Attempts != 0 || s.Status != StatusPlaying {
		t.Fatalf("strict mode must reject \"42abc\": %+v", s)
	}
	s = guess(e, s, " 42 ")
	if s.Status != StatusWon {
		t.Fatalf("strict mode should accept padded numbers: %+v", s)
	}
}

func TestSubmitAfterGameOverIsNoop(t *testing.T) {
	e := newTestEngine(50)
	won := guess(e, e.NewSession(""), "50")
	if won.Status != StatusWon {
		t.Fatalf("setup: %+v", won)
	}
	for _, in := range []string{"50", "10", "abc"} {
		next := guess(e, won, in)
		if next.Attempts != won.Attempts || next.Status != won.Status || next.Secret != won.Secret || next.Message != won.Message {
			t.Fatalf("submit after win changed state with %q: %+v", in, next)
		}
	}
}

func TestChangeInputIsIdempotent(t *testing.T) {
	e := newTestEngine(50)
	s := e.NewSession("")
	once := e.ChangeInput(s, "33")
	twice := e.ChangeInput(e.ChangeInput(s, "33"), "33")
	if once != twice {
		t.Fatalf("once %+v twice %+v", once, twice)
	}
	if once.Pending != "33" || once.Message != s.Message || once.Attempts != s.Attempts {
		t.Fatalf("change-input touched other fields: %+v", once)
	}
	if s.Pending != "" {
		t.Fatal("original session was mutated")
	}
}

func TestRestart(t *testing.T) {
	rng := &sequence{secrets: []int{50, 99}}
	e := NewEngine(WithGenerator(rng))
	s := guess(e, e.NewSession("sid"), "50")
	if s.Status != StatusWon {
		t.Fatalf("setup: %+v", s)
	}

	r := e.Restart(e.ChangeInput(s, "12"))
	checkInvariants(t, r)
	if r.Attempts != 0 || r.Status != StatusPlaying || r.Pending != "" {
		t.Fatalf("restart did not reset: %+v", r)
	}
	if r.Secret != 99 {
		t.Fatalf("restart should draw a new secret, got %d", r.Secret)
	}
	if r.ID != "sid" || r.Round != 2 {
		t.Fatalf("restart should keep id and bump round: %+v", r)
	}
	if r.Message != "Guess a number between 1 and 100." {
		t.Fatalf("unexpected prompt: %q", r.Message)
	}
}

func TestDefaultGeneratorStaysInRange(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 500; i++ {
		checkInvariants(t, e.NewSession("x"))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestCryptoGeneratorFallsBackWhenSourceFails(t *testing.T) {
	g := cryptoGenerator{src: failingReader{}}
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := g.Intn(MaxNumber)
		if v < 0 || v >= MaxNumber {
			t.Fatalf("draw out of range: %d", v)
		}
		seen[v] = true
	}
	if len(seen) < 10 {
		t.Fatalf("fallback draws are not spread out: %d distinct values", len(seen))
	}
}

func TestLocalizedMessages(t *testing.T) {
	e := newTestEngine(50).Localized(i18n.Printer(language.French))
	s := e.NewSession("")
	if s.Message != "Devinez un nombre entre 1 et 100." {
		t.Fatalf("unexpected french prompt: %q", s.Message)
	}
	s = guess(e, s, "10")
	if !strings.HasPrefix(s.Message, "Trop petit") {
		t.Fatalf("unexpected french feedback: %q", s.Message)
	}
}
