// Package server exposes the simulation engine over HTTP: JSON endpoints for
// one-shot simulation and analysis, plus a WebSocket stream for live analysis
// as cards are selected.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/pokersim/holdem/internal/analysis"
	"github.com/pokersim/holdem/internal/deck"
	"github.com/pokersim/holdem/internal/evaluator"
	"github.com/pokersim/holdem/internal/montecarlo"
	"github.com/pokersim/holdem/internal/sessionid"
	"github.com/pokersim/holdem/internal/statistics"
)

// Server serves the simulation API
type Server struct {
	cfg      *Config
	logger   *log.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader
}

// New creates a server with a real clock.
func New(cfg *Config, logger *log.Logger) *Server {
	return NewWithClock(cfg, logger, quartz.NewReal())
}

// NewWithClock creates a server with the given clock, letting tests drive
// the WebSocket ping interval with a mock.
func NewWithClock(cfg *Config, logger *log.Logger, clock quartz.Clock) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("api"),
		clock:  clock,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("POST /api/equity/streets", s.handleStreets)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("/ws/live", s.handleLive)
	return mux
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Server.Address, fmt.Sprintf("%d", s.cfg.Server.Port))
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// SimulateRequest is the body of /api/simulate and /api/equity/streets.
type SimulateRequest struct {
	HoleCards    []int  `json:"hole_cards"`
	Board        []int  `json:"board"`
	NumOpponents int    `json:"num_opponents"`
	NumTrials    int    `json:"num_trials"`
	Seed         *int64 `json:"seed,omitempty"`
}

// SimulateResponse reports one simulation run. The confidence bounds are the
// 95% Wilson interval on the win rate.
type SimulateResponse struct {
	montecarlo.SimResult
	WinRate         float64 `json:"win_pct"`
	TieRate         float64 `json:"tie_pct"`
	LossRate        float64 `json:"loss_pct"`
	WinRateLow      float64 `json:"win_pct_low"`
	WinRateHigh     float64 `json:"win_pct_high"`
	StrategyMessage string  `json:"strategy_message"`
	ElapsedMS       float64 `json:"elapsed_ms"`
}

// AnalyzeRequest is the body of /api/analyze.
type AnalyzeRequest struct {
	HoleCards []int `json:"hole_cards"`
	Board     []int `json:"board"`
}

// AnalyzeResponse describes hero's current hand and outs.
type AnalyzeResponse struct {
	HandName       string   `json:"hand_name"`
	HandsThatBeat  []string `json:"hands_that_beat"`
	PotentialDraws []string `json:"potential_draws"`
}

// LiveRequest is one message on the /ws/live socket.
type LiveRequest struct {
	Cards        []int  `json:"cards"`
	NumOpponents int    `json:"num_opponents"`
	NumTrials    int    `json:"num_trials"`
	Seed         *int64 `json:"seed,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	// Quick sanity check that the engine runs end to end.
	result, err := montecarlo.Run(r.Context(), montecarlo.Params{
		Hole:   []deck.Card{0, 1},
		Trials: 10,
	})
	if err != nil {
		s.httpError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, map[string]any{"ok": true, "win_pct": result.WinRate()})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeSimulateRequest(r)
	if err != nil {
		s.httpError(w, http.StatusBadRequest, err)
		return
	}

	params, err := s.simulateParams(req)
	if err != nil {
		s.httpError(w, http.StatusBadRequest, err)
		return
	}

	start := s.clock.Now()
	result, err := montecarlo.Run(r.Context(), params)
	if err != nil {
		s.httpError(w, statusFor(err), err)
		return
	}

	low, high := statistics.Proportion{Successes: result.Wins, Trials: result.Total}.Wilson95()
	s.writeJSON(w, SimulateResponse{
		SimResult:       result,
		WinRate:         result.WinRate(),
		TieRate:         result.TieRate(),
		LossRate:        result.LossRate(),
		WinRateLow:      low,
		WinRateHigh:     high,
		StrategyMessage: analysis.StrategyMessage(result.WinRate(), result.TieRate()),
		ElapsedMS:       float64(s.clock.Since(start)) / float64(time.Millisecond),
	})
}

func (s *Server) handleStreets(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeSimulateRequest(r)
	if err != nil {
		s.httpError(w, http.StatusBadRequest, err)
		return
	}

	hole, err := toCards(req.HoleCards)
	if err != nil {
		s.httpError(w, http.StatusBadRequest, err)
		return
	}
	board, err := toCards(req.Board)
	if err != nil {
		s.httpError(w, http.StatusBadRequest, err)
		return
	}

	start := s.clock.Now()
	streets, err := analysis.EquityByStreet(r.Context(), hole, board,
		req.NumOpponents, req.NumTrials, s.seedFor(req.Seed))
	if err != nil {
		s.httpError(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, map[string]any{
		"streets":    streets,
		"elapsed_ms": float64(s.clock.Since(start)) / float64(time.Millisecond),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.httpError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	hole, err := toCards(req.HoleCards)
	if err != nil {
		s.httpError(w, http.StatusBadRequest, err)
		return
	}
	board, err := toCards(req.Board)
	if err != nil {
		s.httpError(w, http.StatusBadRequest, err)
		return
	}

	all := append(append([]deck.Card{}, hole...), board...)
	desc, err := analysis.DescribeHand(all)
	if err != nil {
		s.httpError(w, statusFor(err), err)
		return
	}

	s.writeJSON(w, AnalyzeResponse{
		HandName:       desc.Name,
		HandsThatBeat:  analysis.HandsThatBeat(desc.Category),
		PotentialDraws: analysis.PotentialDraws(hole, board),
	})
}

// handleLive upgrades to a WebSocket and answers each card-selection message
// with a fresh live report. The connection is pinged on an interval from the
// injected clock.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("session", sessionid.Generate())
	logger.Info("live session started", "remote", conn.RemoteAddr())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go s.pingLoop(ctx, conn)

	for {
		var req LiveRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("live socket closed", "error", err)
			} else {
				logger.Info("live session ended")
			}
			return
		}

		report, err := s.liveReport(ctx, req)
		if err != nil {
			if writeErr := conn.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(report); err != nil {
			return
		}
	}
}

func (s *Server) liveReport(ctx context.Context, req LiveRequest) (analysis.LiveReport, error) {
	cards, err := toCards(req.Cards)
	if err != nil {
		return analysis.LiveReport{}, err
	}

	opponents := req.NumOpponents
	if opponents == 0 {
		opponents = s.cfg.Simulation.DefaultOpponents
	}
	trials := req.NumTrials
	if trials == 0 {
		trials = s.cfg.Simulation.DefaultTrials
	}
	if trials > s.cfg.Simulation.MaxTrials {
		return analysis.LiveReport{}, fmt.Errorf("%w: trials %d exceeds limit %d",
			deck.ErrInvalidInput, trials, s.cfg.Simulation.MaxTrials)
	}

	return analysis.Live(ctx, cards, opponents, trials, s.seedFor(req.Seed))
}

func (s *Server) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := s.clock.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}

func (s *Server) decodeSimulateRequest(r *http.Request) (SimulateRequest, error) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	if req.NumOpponents == 0 {
		req.NumOpponents = s.cfg.Simulation.DefaultOpponents
	}
	if req.NumTrials == 0 {
		req.NumTrials = s.cfg.Simulation.DefaultTrials
	}
	if req.NumTrials > s.cfg.Simulation.MaxTrials {
		return req, fmt.Errorf("%w: trials %d exceeds limit %d",
			deck.ErrInvalidInput, req.NumTrials, s.cfg.Simulation.MaxTrials)
	}
	return req, nil
}

func (s *Server) simulateParams(req SimulateRequest) (montecarlo.Params, error) {
	hole, err := toCards(req.HoleCards)
	if err != nil {
		return montecarlo.Params{}, err
	}
	board, err := toCards(req.Board)
	if err != nil {
		return montecarlo.Params{}, err
	}

	return montecarlo.Params{
		Hole:      hole,
		Board:     board,
		Opponents: req.NumOpponents,
		Trials:    req.NumTrials,
		Seed:      s.seedFor(req.Seed),
		Workers:   s.cfg.Simulation.Workers,
	}, nil
}

func (s *Server) seedFor(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return s.cfg.Simulation.Seed
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) httpError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(map[string]string{"detail": err.Error()}); encErr != nil {
		s.logger.Error("failed to encode error response", "error", encErr)
	}
}

// statusFor maps precondition violations to 400 and everything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, deck.ErrInvalidCard),
		errors.Is(err, deck.ErrInvalidInput),
		errors.Is(err, deck.ErrDeckExhausted),
		errors.Is(err, evaluator.ErrInvalidHandSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// toCards converts integer identifiers from the wire into cards, validating
// range before the narrowing conversion.
func toCards(ids []int) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= deck.NumCards {
			return nil, fmt.Errorf("%w: %d", deck.ErrInvalidCard, id)
		}
		cards = append(cards, deck.Card(id))
	}
	return cards, nil
}
