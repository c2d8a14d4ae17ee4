// Package handlers provides HTTP handlers for the strategy rule engine.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/internal/modules/screener"
	"github.com/vtbalaji/tradeidea-go/internal/modules/universe"
)

// Handler handles screener HTTP requests. It pulls the latest snapshots for a
// symbol and delegates evaluation to the rule engine.
type Handler struct {
	engine    *screener.Engine
	snapshots *universe.SnapshotRepository
	log       zerolog.Logger
}

// NewHandler creates a new screener handler
func NewHandler(engine *screener.Engine, snapshots *universe.SnapshotRepository, log zerolog.Logger) *Handler {
	return &Handler{
		engine:    engine,
		snapshots: snapshots,
		log:       log.With().Str("handler", "screener").Logger(),
	}
}

// HandleListStrategies handles GET /api/screener/strategies
func (h *Handler) HandleListStrategies(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, map[string]interface{}{
		"strategies": h.engine.StrategyNames(),
	})
}

// HandleRecommendation handles GET /api/screener/{symbol}/recommendation
func (h *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	tech, fund, ok := h.loadSnapshots(w, symbol)
	if !ok {
		return
	}

	h.writeData(w, http.StatusOK, h.engine.Recommendation(symbol, *tech, *fund))
}

// HandleStrategyEntry handles GET /api/screener/{symbol}/strategies/{name}
func (h *Handler) HandleStrategyEntry(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	name := chi.URLParam(r, "name")

	tech, fund, ok := h.loadSnapshots(w, symbol)
	if !ok {
		return
	}

	analysis, err := h.engine.EvaluateEntry(name, *tech, *fund)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeData(w, http.StatusOK, analysis)
}

// loadSnapshots fetches both snapshots for a symbol. A missing technical
// snapshot is a 404; a missing fundamental snapshot degrades to an empty
// record, since the rule tables treat absent ratios as unknown.
func (h *Handler) loadSnapshots(w http.ResponseWriter, symbol string) (*domain.TechnicalData, *domain.FundamentalData, bool) {
	tech, err := h.snapshots.GetTechnical(symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to load technical snapshot")
		h.writeError(w, http.StatusInternalServerError, "failed to load technical snapshot")
		return nil, nil, false
	}
	if tech == nil {
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("no technical snapshot for %s", symbol))
		return nil, nil, false
	}

	fund, err := h.snapshots.GetFundamental(symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to load fundamental snapshot")
		h.writeError(w, http.StatusInternalServerError, "failed to load fundamental snapshot")
		return nil, nil, false
	}
	if fund == nil {
		fund = &domain.FundamentalData{Symbol: symbol}
	}

	return tech, fund, true
}

func (h *Handler) writeData(w http.ResponseWriter, status int, data interface{}) {
	h.writeJSON(w, status, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
