// cmd/guess
//
// Terminal client: play the guessing game on stdin/stdout.
//
// Usage:
//   guess [-seed N] [-max-input 20] [-max-score 20] [-lock]
//
// Type a number and press Enter to guess. "again" starts a new round,
// "quit" (or EOF) exits.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-number/internal/game"
	"github.com/robalobadob/guess-number/internal/secret"
)

func main() {
	seed := flag.Uint64("seed", 0, "seed for the secret number (0 = random)")
	maxInput := flag.Int("max-input", game.DefaultMaxInput, "largest valid guess")
	maxScore := flag.Int("max-score", game.DefaultMaxScore, "starting score of each round")
	lock := flag.Bool("lock", false, "reject guesses after a round is won or lost")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	src := secret.Crypto()
	if *seed != 0 {
		src = secret.Seeded(*seed)
	}
	sess := game.NewSession(game.Rules{MaxInput: *maxInput, MaxScore: *maxScore, LockFinished: *lock}, src)

	if err := run(os.Stdin, os.Stdout, sess); err != nil {
		log.Fatal().Err(err).Msg("terminal session failed")
	}
}

// run reads one command per line from in and writes the results to out.
func run(in io.Reader, out io.Writer, sess *game.Session) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	rules := sess.Rules()
	printf := func(format string, args ...any) {
		fmt.Fprintf(w, format, args...)
	}

	printf("Guess My Number! (between 1 and %d)\n", rules.MaxInput)
	printf("%s\n", game.StartText)
	prompt := func() {
		printf("Guess (1-%d): ", rules.MaxInput)
		_ = w.Flush()
	}
	prompt()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			printf("Bye! Highscore: %d\n", sess.HighScore())
			return nil
		case "again", "a":
			v := sess.Restart()
			printf("%s\n", game.StartText)
			printf("Score: %d  Highscore: %d\n", v.Score, v.HighScore)
		default:
			o := sess.SubmitGuess(line)
			printf("%s\n", o.Message.Text())
			if o.Message == game.Correct {
				n, _ := sess.Reveal()
				printf("The number was %d.\n", n)
			}
			printf("Score: %d  Highscore: %d\n", o.Score, sess.HighScore())
			if sess.State().Finished() {
				printf("Type \"again\" to play another round.\n")
			}
		}
		prompt()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	printf("\n")
	return nil
}
