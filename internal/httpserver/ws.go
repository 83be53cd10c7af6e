// internal/httpserver/ws.go
//
// WebSocket play endpoint (GET /game/ws).
//
// Client frames:  {"type":"guess","guess":"7"} | {"type":"restart"} | {"type":"state"}
// Server frames:  the same JSON bodies as the HTTP endpoints, or {"error":"..."}.
// Each frame is handled to completion before the next is read.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/guess-number/internal/game"
)

// wsReadLimit bounds a single client frame.
const wsReadLimit = 4096

type wsMsg struct {
	Type  string          `json:"type"`
	Guess json.RawMessage `json:"guess"`
}

type wsError struct {
	Error string `json:"error"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.wsOrigins(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer c.CloseNow()
	c.SetReadLimit(wsReadLimit)

	sess := sessionFrom(r)
	err = s.serveWS(r.Context(), c, sess, logger)
	if errors.Is(err, context.Canceled) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		logger.Debug().Err(err).Str("gameId", sess.ID).Msg("websocket closed")
	}
}

// serveWS reads frames until the connection ends.
func (s *Server) serveWS(ctx context.Context, c *websocket.Conn, sess *game.Session, logger *zerolog.Logger) error {
	for {
		var msg wsMsg
		if err := wsjson.Read(ctx, c, &msg); err != nil {
			return err
		}

		var reply any
		switch msg.Type {
		case "guess":
			if !s.limiters.allow(sess.ID) {
				reply = wsError{Error: "rate_limited"}
				break
			}
			res := s.guess(sess, guessReq{Guess: msg.Guess}.raw())
			logger.Debug().Str("gameId", sess.ID).Stringer("message", res.Message).Int("score", res.Score).Msg("ws guess")
			reply = res
		case "restart":
			reply = viewRes{View: sess.Restart(), Text: game.StartText}
		case "state":
			reply = viewRes{View: sess.Snapshot()}
		default:
			reply = wsError{Error: "unknown_type"}
		}

		wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := wsjson.Write(wctx, c, reply)
		cancel()
		if err != nil {
			return err
		}
	}
}

// wsOrigins allows the configured client origin in addition to same-origin.
func (s *Server) wsOrigins() []string {
	u, err := url.Parse(s.cfg.ClientOrigin)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}
