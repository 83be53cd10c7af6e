// internal/game/types.go
//
// Core type definitions for the guessing game engine.
// Defines:
//   - Rules:   range of valid guesses and the starting score.
//   - Message: classification of a single guess (invalid/too high/too low/correct/lost).
//   - Outcome: message plus the score after the guess.
//   - State:   coarse round state (playing/won/lost).

package game

import "fmt"

// Defaults used by the browser page and the terminal client.
const (
	DefaultMaxInput = 20
	DefaultMaxScore = 20
)

// StartText is shown when a round begins.
const StartText = "Start guessing..."

// Rules configure a session.
type Rules struct {
	MaxInput int // Largest valid guess; the secret is drawn from [1, MaxInput].
	MaxScore int // Score at the start of every round.

	// LockFinished rejects guesses (as Invalid) once a round is won or lost.
	// When false, guesses keep being scored after the round has ended.
	LockFinished bool
}

// DefaultRules returns the classic 1–20 game with a score of 20.
func DefaultRules() Rules {
	return Rules{MaxInput: DefaultMaxInput, MaxScore: DefaultMaxScore}
}

// normalize replaces non-positive limits with the defaults.
func (r Rules) normalize() Rules {
	if r.MaxInput <= 0 {
		r.MaxInput = DefaultMaxInput
	}
	if r.MaxScore <= 0 {
		r.MaxScore = DefaultMaxScore
	}
	return r
}

// Message classifies the result of a guess.
type Message int

const (
	Invalid Message = iota
	TooHigh
	TooLow
	Correct
	Lost
)

var messageNames = [...]string{
	Invalid: "invalid",
	TooHigh: "too_high",
	TooLow:  "too_low",
	Correct: "correct",
	Lost:    "lost",
}

var messageTexts = [...]string{
	Invalid: "⛔️ Please enter a valid number",
	TooHigh: "📈 Too high!",
	TooLow:  "📉 Too low!",
	Correct: "🎉 Correct Number!",
	Lost:    "💥 You lost the game!",
}

// String returns the wire name, e.g. "too_high".
func (m Message) String() string {
	if m < 0 || int(m) >= len(messageNames) {
		return fmt.Sprintf("Message(%d)", int(m))
	}
	return messageNames[m]
}

// Text returns the text shown to the player.
func (m Message) Text() string {
	if m < 0 || int(m) >= len(messageTexts) {
		return ""
	}
	return messageTexts[m]
}

// MarshalText encodes the message by its wire name.
func (m Message) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Outcome is the result of one guess submission. It is not stored.
type Outcome struct {
	Message Message `json:"message"`
	Score   int     `json:"score"` // score after the guess
}

// State is the coarse state of the current round.
type State int

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

// String returns "playing", "won" or "lost".
func (s State) String() string {
	switch s {
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "playing"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Finished reports whether the round has ended.
func (s State) Finished() bool { return s != StatePlaying }

// View is a read-only snapshot of a session for presentation adapters.
type View struct {
	ID        string `json:"gameId"`
	Score     int    `json:"score"`
	HighScore int    `json:"highScore"`
	State     State  `json:"state"`
	MaxInput  int    `json:"maxInput"`
	MaxScore  int    `json:"maxScore"`
	Secret    int    `json:"secret,omitempty"` // only set once the round is won
}
