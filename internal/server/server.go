package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/analyze"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/api/upstox"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/chain"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/config"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

// Server exposes the assembled chain, per-strike analysis, and
// leaderboards as a read-only JSON API. Each request fetches and
// assembles a fresh table; no table is ever patched in place, so no
// request can observe a half-built one.
type Server struct {
	client    *upstox.Client
	assembler *chain.Assembler
	cfg       *config.Config
	logger    zerolog.Logger
}

// NewServer creates the API server.
func NewServer(client *upstox.Client, cfg *config.Config) *Server {
	return &Server{
		client:    client,
		assembler: chain.NewAssembler(),
		cfg:       cfg,
		logger:    log.With().Str("component", "api_server").Logger(),
	}
}

type apiRoute struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

func (s *Server) routes() []apiRoute {
	return []apiRoute{
		{
			Path:    "/chain",
			Method:  "GET",
			Handler: s.GetChain,
		},
		{
			Path:    "/chain/analysis",
			Method:  "GET",
			Handler: s.GetStrikeAnalysis,
		},
		{
			Path:    "/chain/leaderboard",
			Method:  "GET",
			Handler: s.GetLeaderboard,
		},
	}
}

// Router builds the mux router with all API routes registered under
// /api/v1.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	for _, r := range s.routes() {
		api.HandleFunc(r.Path, r.Handler).Methods(r.Method)
	}
	return router
}

// fetchTable runs one full fetch + assemble cycle for the configured
// asset and expiry, honoring per-request query overrides.
func (s *Server) fetchTable(r *http.Request) (*model.OptionChainTable, error) {
	q := r.URL.Query()
	assetKey := q.Get("asset_key")
	if assetKey == "" {
		assetKey = s.cfg.AssetKey
	}
	expiry := q.Get("expiry")
	if expiry == "" {
		expiry = s.cfg.ExpiryDate
	}

	raw, err := s.client.GetStrategyChain(r.Context(), assetKey, expiry)
	if err != nil {
		return nil, err
	}
	return s.assembler.Assemble(raw, expiry)
}

// GetChain serves the full assembled table.
func (s *Server) GetChain(w http.ResponseWriter, r *http.Request) {
	table, err := s.fetchTable(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, table)
}

// GetStrikeAnalysis serves the per-strike view for ?strike=N.
func (s *Server) GetStrikeAnalysis(w http.ResponseWriter, r *http.Request) {
	strikeStr := r.URL.Query().Get("strike")
	if strikeStr == "" {
		http.Error(w, "missing strike param", http.StatusBadRequest)
		return
	}
	strike, err := strconv.ParseFloat(strikeStr, 64)
	if err != nil {
		http.Error(w, "invalid strike", http.StatusBadRequest)
		return
	}

	table, err := s.fetchTable(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	analysis, err := analyze.AnalyzeStrike(table, strike)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, analysis)
}

// GetLeaderboard serves the four moneyness buckets, ?n= rows each.
func (s *Server) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	n := s.cfg.TopN
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		v, err := strconv.Atoi(nStr)
		if err != nil || v < 1 {
			http.Error(w, "invalid n", http.StatusBadRequest)
			return
		}
		n = v
	}

	table, err := s.fetchTable(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, analyze.BuildLeaderboard(table, n))
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps pipeline errors onto HTTP statuses: strike misses are
// 404 with a nearest-strike hint, upstream fetch failures are 502,
// everything else is 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var notFound *chain.StrikeNotFoundError
	if errors.As(err, &notFound) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		resp := map[string]any{"error": notFound.Error()}
		if notFound.HasNearest {
			resp["nearest_strike"] = notFound.Nearest
		}
		if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
			s.logger.Error().Err(encErr).Msg("Failed to encode error response")
		}
		return
	}

	var fetchErr *upstox.FetchError
	if errors.As(err, &fetchErr) {
		s.logger.Error().Err(err).Msg("Upstream fetch failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.logger.Error().Err(err).Msg("Chain assembly failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
