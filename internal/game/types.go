// internal/game/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - Status: lifecycle of a single round (playing → won/lost).
//   - Session: the full state of one game, handled as a value.
//   - Generator: the randomness capability used to draw secrets.

package game

const (
	// MinNumber and MaxNumber bound both the secret and accepted guesses.
	MinNumber = 1
	MaxNumber = 100

	// MaxAttempts is the number of valid guesses allowed per round.
	MaxAttempts = 10
)

// Status represents where a round is in its lifecycle.
// Possible values:
//   - "playing": guesses are accepted.
//   - "won":     a guess matched the secret.
//   - "lost":    MaxAttempts valid guesses were spent without a match.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Over reports whether the status is terminal.
func (s Status) Over() bool { return s == StatusWon || s == StatusLost }

// Session holds the state of a single guessing game.
//
// A Session is a value: engine operations never modify their argument and
// always return the next version. Copying a Session copies the whole game.
type Session struct {
	ID       string `json:"id"`       // Browser-session identifier (random string).
	Round    int    `json:"round"`    // 1 for the first game, +1 per restart.
	Secret   int    `json:"-"`        // Number to find, in [MinNumber, MaxNumber].
	Pending  string `json:"pending"`  // Text typed but not yet submitted.
	Message  string `json:"message"`  // Feedback for the player.
	Attempts int    `json:"attempts"` // Valid guesses so far.
	Status   Status `json:"status"`
}

// Generator is the source of randomness for secrets.
// Intn returns a uniformly distributed integer in [0, n).
// *math/rand.Rand satisfies it.
type Generator interface {
	Intn(n int) int
}
