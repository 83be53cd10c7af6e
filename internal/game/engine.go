// internal/game/engine.go
//
// Core game engine for a single guessing-game session.
// Responsibilities:
//   - Create sessions with an injected secret.Source.
//   - Validate and classify guesses (invalid/too high/too low/correct/lost).
//   - Track score, high score and round state; restart rounds.
//
// Notes:
//   - A session outlives its rounds: Restart draws a new secret and resets the
//     score but keeps the high score.
//   - Invalid input never mutates state and is never an error.
//   - Methods are safe for concurrent use; each call runs to completion.
package game

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/guess-number/internal/secret"
)

// Session holds the state of one player's game across rounds.
type Session struct {
	ID string // Unique session identifier (UUID).

	mu        sync.Mutex
	rules     Rules
	src       secret.Source
	target    int
	score     int
	highScore int
	state     State
}

// NewSession constructs a session and starts its first round.
// Non-positive limits in rules fall back to the defaults; a nil src uses
// secret.Crypto().
func NewSession(rules Rules, src secret.Source) *Session {
	if src == nil {
		src = secret.Crypto()
	}
	s := &Session{
		ID:    uuid.NewString(),
		rules: rules.normalize(),
		src:   src,
	}
	s.reset()
	return s
}

// Restart begins a new round: new secret, full score, state Playing.
// The high score is left untouched.
func (s *Session) Restart() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return s.view()
}

func (s *Session) reset() {
	s.target = secret.Pick(s.src, s.rules.MaxInput)
	s.score = s.rules.MaxScore
	s.state = StatePlaying
}

// SubmitGuess classifies raw player input.
//
// Input that is not a base-10 integer, is empty, is zero or negative, or
// exceeds MaxInput yields Invalid with no state change.
func (s *Session) SubmitGuess(raw string) Outcome {
	n, ok := parseGuess(raw)
	if !ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		return Outcome{Message: Invalid, Score: s.score}
	}
	return s.Guess(n)
}

// Guess applies an already-parsed guess. Same contract as SubmitGuess.
//
// State transitions:
//   - guess == secret → Correct; high score raised if beaten; score unchanged.
//   - wrong guess with score > 1 → TooHigh/TooLow; score decremented.
//   - wrong guess with score <= 1 → Lost; score forced to 0.
//
// Once a round is won or lost its state sticks until Restart, even though
// late guesses are still scored (unless LockFinished is set).
func (s *Session) Guess(n int) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 || n > s.rules.MaxInput {
		return Outcome{Message: Invalid, Score: s.score}
	}
	if s.rules.LockFinished && s.state.Finished() {
		return Outcome{Message: Invalid, Score: s.score}
	}

	if n == s.target {
		if s.score > s.highScore {
			s.highScore = s.score
		}
		s.finish(StateWon)
		return Outcome{Message: Correct, Score: s.score}
	}

	msg := TooLow
	if n > s.target {
		msg = TooHigh
	}
	if s.score > 1 {
		s.score--
		return Outcome{Message: msg, Score: s.score}
	}
	s.score = 0
	s.finish(StateLost)
	return Outcome{Message: Lost, Score: 0}
}

// finish ends the round unless it has already ended.
func (s *Session) finish(st State) {
	if s.state == StatePlaying {
		s.state = st
	}
}

// Score returns the remaining score of the current round.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// HighScore returns the best winning score seen by this session.
func (s *Session) HighScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highScore
}

// State returns the current round state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rules returns the session's (normalized) rules.
func (s *Session) Rules() Rules { return s.rules }

// Reveal returns the secret once the round has been won.
func (s *Session) Reveal() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateWon {
		return 0, false
	}
	return s.target, true
}

// Snapshot returns a read-only view of the session.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	v := View{
		ID:        s.ID,
		Score:     s.score,
		HighScore: s.highScore,
		State:     s.state,
		MaxInput:  s.rules.MaxInput,
		MaxScore:  s.rules.MaxScore,
	}
	if s.state == StateWon {
		v.Secret = s.target
	}
	return v
}

// parseGuess trims and parses a base-10 integer. Zero and empty input are
// rejected along with malformed input; range checks happen in Guess.
func parseGuess(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
