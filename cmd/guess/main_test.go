package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess-number/internal/game"
	"github.com/robalobadob/guess-number/internal/secret"
)

func TestRun_WinThenRestart(t *testing.T) {
	sess := game.NewSession(game.DefaultRules(), secret.Fixed(15))
	in := strings.NewReader("5\n10\n20\n15\nagain\nquit\n")
	var out bytes.Buffer

	require.NoError(t, run(in, &out, sess))

	got := out.String()
	assert.Contains(t, got, "📉 Too low!\nScore: 19  Highscore: 0")
	assert.Contains(t, got, "📉 Too low!\nScore: 18  Highscore: 0")
	assert.Contains(t, got, "📈 Too high!\nScore: 17  Highscore: 0")
	assert.Contains(t, got, "🎉 Correct Number!\nThe number was 15.\nScore: 17  Highscore: 17")
	assert.Contains(t, got, "Start guessing...\nScore: 20  Highscore: 17")
	assert.Contains(t, got, "Bye! Highscore: 17")
	assert.Equal(t, 20, sess.Score())
}

func TestRun_InvalidAndEOF(t *testing.T) {
	sess := game.NewSession(game.DefaultRules(), secret.Fixed(3))
	var out bytes.Buffer

	require.NoError(t, run(strings.NewReader("0\nabc\n"), &out, sess))

	assert.Equal(t, 2, strings.Count(out.String(), "⛔️ Please enter a valid number"))
	assert.Equal(t, game.DefaultMaxScore, sess.Score())
}

func TestRun_Lost(t *testing.T) {
	sess := game.NewSession(game.Rules{MaxInput: 20, MaxScore: 1}, secret.Fixed(3))
	var out bytes.Buffer

	require.NoError(t, run(strings.NewReader("7\n"), &out, sess))

	assert.Contains(t, out.String(), "💥 You lost the game!\nScore: 0  Highscore: 0\nType \"again\"")
}
