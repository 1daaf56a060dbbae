package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-runner/internal/storage"
)

// RunResponse is the JSON form of a stored run.
type RunResponse struct {
	RunID     string    `json:"run_id"`
	Player    string    `json:"player,omitempty"`
	Score     int       `json:"score"`
	Distance  float64   `json:"distance"`
	Outcome   string    `json:"outcome"`
	Ticks     int       `json:"ticks"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// RunsResponse wraps a list of runs.
type RunsResponse struct {
	Runs  []RunResponse `json:"runs"`
	Count int           `json:"count"`
}

func toRunResponse(r storage.RunRecord) RunResponse {
	return RunResponse{
		RunID:     r.RunID,
		Player:    r.Player,
		Score:     r.Score,
		Distance:  r.Distance,
		Outcome:   r.Outcome,
		Ticks:     r.Ticks,
		Seed:      r.Seed,
		CreatedAt: r.CreatedAt,
	}
}

func toRunsResponse(runs []storage.RunRecord) RunsResponse {
	resp := RunsResponse{Runs: make([]RunResponse, 0, len(runs)), Count: len(runs)}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, toRunResponse(r))
	}
	return resp
}

// parseLimit reads the optional ?limit= parameter.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}
	return min(n, maxLimit), nil
}

func (s *Server) handleTopRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runs, err := s.store.TopRuns(limit)
	if err != nil {
		s.logger.Error("cannot load top runs", "err", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	s.writeJSON(w, http.StatusOK, toRunsResponse(runs))
}

func (s *Server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runs, err := s.store.RecentRuns(limit)
	if err != nil {
		s.logger.Error("cannot load recent runs", "err", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	s.writeJSON(w, http.StatusOK, toRunsResponse(runs))
}

func (s *Server) handleTopByOutcome(w http.ResponseWriter, r *http.Request) {
	outcome := chi.URLParam(r, "outcome")
	if outcome != storage.OutcomeVictory && outcome != storage.OutcomeDefeat {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown outcome %q", outcome))
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runs, err := s.store.TopRunsByOutcome(outcome, limit)
	if err != nil {
		s.logger.Error("cannot load runs by outcome", "outcome", outcome, "err", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	s.writeJSON(w, http.StatusOK, toRunsResponse(runs))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := s.store.RunByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger.Error("cannot load run", "run_id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load run")
		return
	}
	s.writeJSON(w, http.StatusOK, toRunResponse(run))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		s.logger.Error("cannot load stats", "err", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
