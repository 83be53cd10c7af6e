// internal/secret/secret.go
//
// Sources of randomness for picking the secret number.
//
// Responsibilities:
//   - Define the Source interface the game engine draws from.
//   - Provide a crypto/rand backed source for real play.
//   - Provide seeded and fixed sources so rounds can be reproduced in tests
//     and from the terminal client (-seed).
//
// Pick maps a draw onto the playable range [1, max].

package secret

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source yields integers in [0, n). n is always > 0.
type Source interface {
	IntN(n int) int
}

// Pick draws a secret number in [1, max] from src.
// Out-of-range draws from a misbehaving Source are clamped.
func Pick(src Source, max int) int {
	if max <= 1 {
		return 1
	}
	n := src.IntN(max) + 1
	switch {
	case n < 1:
		return 1
	case n > max:
		return max
	}
	return n
}

// cryptoSource draws from crypto/rand.
type cryptoSource struct{}

// Crypto returns a cryptographically random Source.
func Crypto() Source { return cryptoSource{} }

func (cryptoSource) IntN(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy pool is unavailable.
		return mrand.IntN(n)
	}
	return int(nBig.Int64())
}

// seeded wraps a PCG generator. math/rand/v2 generators are not safe for
// concurrent use, hence the mutex.
type seeded struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// Seeded returns a deterministic Source: the same seed yields the same draws.
func Seeded(seed uint64) Source {
	return &seeded{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// fixed always yields the same secret.
type fixed int

// Fixed returns a Source whose Pick result is always target (when target is
// within the range being drawn).
func Fixed(target int) Source { return fixed(target) }

func (f fixed) IntN(n int) int {
	v := int(f) - 1
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
