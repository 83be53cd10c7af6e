package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/guess-number/internal/secret"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-03-01", DateKey(ts))
}

func TestIndex(t *testing.T) {
	day := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	i := Index(day, "salt", 20)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 20)
	assert.Equal(t, i, Index(later, "salt", 20), "same date, same index")
	assert.Equal(t, 0, Index(day, "salt", 0))
}

func TestIndex_VariesAcrossDays(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for d := 0; d < 60; d++ {
		seen[Index(start.AddDate(0, 0, d), "salt", 20)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestSource_PinsSecret(t *testing.T) {
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	src := Source(day, "salt")
	want := Index(day, "salt", 20) + 1
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, secret.Pick(src, 20))
	}
}
