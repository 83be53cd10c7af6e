// internal/daily/daily.go
//
// Deterministic "daily" secret: every player who starts a daily round on the
// same UTC date chases the same number.
//
// Index derives a value from HMAC-SHA256(salt, YYYY-MM-DD) so the number can't
// be predicted without the server salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/guess-number/internal/secret"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index in [0, n) for the date using
// HMAC(salt, YYYY-MM-DD) % n.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// source always draws the day's index.
type source struct {
	date time.Time
	salt string
}

// Source returns a secret.Source pinned to date. Restarting a daily session
// draws the same number again.
func Source(date time.Time, salt string) secret.Source {
	return source{date: date, salt: salt}
}

func (s source) IntN(n int) int { return Index(s.date, s.salt, n) }
