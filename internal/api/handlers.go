package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/xtding233/arena-odds/internal/arena"
	"github.com/xtding233/arena-odds/internal/card"
)

const defaultCrossvalTrials = 1000

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	class, err := parseClass(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	seed, err := parseSeed(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	d, err := s.svc.Draft(class, seed)
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	success(w, d)
}

func (s *Server) handleOdds(w http.ResponseWriter, r *http.Request) {
	class, err := parseClass(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	n, ok, msg := parseInt(r, "n")
	if msg != "" {
		badRequest(w, errors.New(msg))
		return
	}
	if !ok {
		n = arena.DraftPicks
	}
	pred, err := card.ParsePredicate(r.URL.Query(), class)
	if err != nil {
		badRequest(w, err)
		return
	}
	odds, err := s.svc.Odds(class, pred, n)
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	success(w, odds)
}

func (s *Server) handleCrossval(w http.ResponseWriter, r *http.Request) {
	class, err := parseClass(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	trials, ok, msg := parseInt(r, "trials")
	if msg != "" {
		badRequest(w, errors.New(msg))
		return
	}
	if !ok {
		trials = min(defaultCrossvalTrials, s.opts.CrossvalMaxTrials)
	}
	if trials <= 0 || trials > s.opts.CrossvalMaxTrials {
		badRequest(w, fmt.Errorf("trials must be between 1 and %d", s.opts.CrossvalMaxTrials))
		return
	}
	seed, err := parseSeed(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	pred, err := card.ParsePredicate(r.URL.Query(), class)
	if err != nil {
		badRequest(w, err)
		return
	}
	cv, err := s.svc.CrossValidate(class, pred, trials, seed)
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	success(w, cv)
}

func (s *Server) mapError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, arena.ErrPrecondition):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, arena.ErrHorizon), errors.Is(err, arena.ErrNoHeroClass):
		badRequest(w, err)
	default:
		s.log.Error("internal error", "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func parseClass(r *http.Request) (card.Class, error) {
	raw := r.URL.Query().Get("class")
	if raw == "" {
		return "", errors.New("missing param class")
	}
	c, ok := card.ParseClass(raw)
	if !ok {
		return "", fmt.Errorf("invalid class %q", raw)
	}
	return c, nil
}

func parseSeed(r *http.Request) (*uint64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.New("invalid seed")
	}
	return &v, nil
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}
