// Package api serves connecting-subgraph extraction over HTTP: a graph
// arrives inline as GFA, the slice between two positions goes back the
// same way along with the id translation.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/seqslice/seqslice/internal/gfa"
	"github.com/seqslice/seqslice/internal/handlegraph"
	"github.com/seqslice/seqslice/internal/subgraph"
)

// Position is a JSON position on an oriented node.
type Position struct {
	ID     int64 `json:"id"`
	Rev    bool  `json:"rev"`
	Offset int64 `json:"offset"`
}

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	GFA              string   `json:"gfa"`
	From             Position `json:"from"`
	To               Position `json:"to"`
	MaxLen           int64    `json:"max_len"`
	IncludeTerminals bool     `json:"include_terminals"`
	DetectCycles     bool     `json:"detect_cycles"`
	NoAdditionalTips bool     `json:"no_additional_tips"`
	OnlyPaths        bool     `json:"only_paths"`
	StrictMaxLen     bool     `json:"strict_max_len"`
}

// ExtractResponse is the sliced graph plus the id translation back to
// the input graph's ids.
type ExtractResponse struct {
	GFA         string          `json:"gfa"`
	Translation map[int64]int64 `json:"translation"`
}

// Server is the chi router and its logger.
type Server struct {
	router chi.Router
	logger *zap.Logger
}

// NewServer creates a Server with all routes configured.
func NewServer(logger *zap.Logger) *Server {
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Post("/extract", s.handleExtract)
	s.router = r

	return s
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Listen serves until the listener fails.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	s.logger.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.clientError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	source, err := gfa.Read(strings.NewReader(req.GFA))
	if err != nil {
		s.clientError(w, http.StatusBadRequest, fmt.Errorf("parse graph: %w", err))
		return
	}
	if err := validatePosition(source.HasNode, req.From); err != nil {
		s.clientError(w, http.StatusBadRequest, fmt.Errorf("from position: %w", err))
		return
	}
	if err := validatePosition(source.HasNode, req.To); err != nil {
		s.clientError(w, http.StatusBadRequest, fmt.Errorf("to position: %w", err))
		return
	}

	out := handlegraph.NewHashGraph()
	trans := subgraph.ExtractConnecting(source, out, req.MaxLen,
		subgraph.Pos{ID: req.From.ID, Rev: req.From.Rev, Off: req.From.Offset},
		subgraph.Pos{ID: req.To.ID, Rev: req.To.Rev, Off: req.To.Offset},
		subgraph.Options{
			IncludeTerminalPositions: req.IncludeTerminals,
			DetectTerminalCycles:     req.DetectCycles,
			NoAdditionalTips:         req.NoAdditionalTips,
			OnlyPaths:                req.OnlyPaths,
			StrictMaxLen:             req.StrictMaxLen,
		})

	if len(trans) == 0 {
		s.clientError(w, http.StatusUnprocessableEntity,
			fmt.Errorf("no path connects the positions within %d bases", req.MaxLen))
		return
	}

	var sb strings.Builder
	if err := gfa.Write(&sb, out); err != nil {
		s.logger.Error("encode slice", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("extracted",
		zap.Int64("from", req.From.ID),
		zap.Int64("to", req.To.ID),
		zap.Int("nodes", out.NodeCount()),
		zap.Duration("elapsed", time.Since(start)))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ExtractResponse{GFA: sb.String(), Translation: trans})
}

func (s *Server) clientError(w http.ResponseWriter, status int, err error) {
	s.logger.Info("rejected request", zap.Int("status", status), zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func validatePosition(hasNode func(int64) bool, p Position) error {
	if p.ID < 1 {
		return fmt.Errorf("node id %d must be positive", p.ID)
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset %d must be non-negative", p.Offset)
	}
	if !hasNode(p.ID) {
		return fmt.Errorf("node %d is not in the graph", p.ID)
	}
	return nil
}
