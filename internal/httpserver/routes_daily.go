// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily" mode.
// Exposes two endpoints under /daily:
//   - GET  /daily     → today's date key
//   - POST /daily/new → start a session whose secret is fixed for today
//
// The daily secret is derived from the date and DAILY_SALT (see package daily),
// so restarting a daily session replays the same number.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/guess-number/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.startDaily)
	})
}

// today returns the current daily date key.
func (s *Server) today() string { return daily.DateKey(s.now()) }

type dailyInfoRes struct {
	Date     string `json:"date"`
	MaxInput int    `json:"maxInput"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dailyInfoRes{Date: s.today(), MaxInput: s.cfg.Rules().MaxInput})
}

// startDaily creates a session pinned to today's secret.
func (s *Server) startDaily(w http.ResponseWriter, r *http.Request) {
	s.startSession(w, r, "daily", daily.Source(s.now(), s.cfg.DailySalt))
}
