// internal/httpserver/sweep.go
//
// Session housekeeping:
//   - limiters: one token bucket per session for guesses, so a busy client
//     only throttles itself.
//   - Sweep/RunSweeper: drop sessions (and their limiters) whose token expired.

package httpserver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// limiters hands out a rate.Limiter per session ID.
type limiters struct {
	limit rate.Limit
	burst int

	mu   sync.Mutex
	byID map[string]*rate.Limiter
}

func newLimiters(limit rate.Limit, burst int) *limiters {
	return &limiters{limit: limit, burst: burst, byID: make(map[string]*rate.Limiter)}
}

// allow reports whether session id may make another guess now.
func (l *limiters) allow(id string) bool {
	l.mu.Lock()
	lim, ok := l.byID[id]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.byID[id] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

func (l *limiters) forget(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.byID, id)
}

// Sweep deletes every session whose token has expired and returns how many
// were removed.
func (s *Server) Sweep(ctx context.Context) (int, error) {
	ids, err := s.store.Expired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("list expired sessions: %w", err)
	}
	n := 0
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			// Logged and skipped; the next sweep retries.
			log.Warn().Err(err).Str("gameId", id).Msg("delete expired session")
			continue
		}
		s.limiters.forget(id)
		n++
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("session sweep")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Int("remaining", s.store.Len()).Msg("session sweep")
			}
		}
	}
}
