package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess-number/internal/game"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "guess_token", cfg.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, game.DefaultRules(), cfg.Rules())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GAME_MAX_INPUT", "50")
	t.Setenv("GAME_MAX_SCORE", "10")
	t.Setenv("GAME_LOCK_FINISHED", "true")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, game.Rules{MaxInput: 50, MaxScore: 10, LockFinished: true}, cfg.Rules())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name, key, val string
	}{
		{"non numeric", "GAME_MAX_INPUT", "lots"},
		{"zero max input", "GAME_MAX_INPUT", "0"},
		{"negative score", "GAME_MAX_SCORE", "-1"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"zero burst", "GUESS_BURST", "0"},
		{"zero sweep interval", "SWEEP_INTERVAL", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
