// Package handlers provides HTTP handlers for portfolio risk analytics.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/config"
	"github.com/vtbalaji/tradeidea-go/internal/modules/exits"
	"github.com/vtbalaji/tradeidea-go/internal/modules/portfolio"
	"github.com/vtbalaji/tradeidea-go/internal/modules/risk"
	"github.com/vtbalaji/tradeidea-go/internal/modules/universe"
)

// Handler handles portfolio analytics HTTP requests.
type Handler struct {
	service  *portfolio.Service
	analyzer *risk.Analyzer
	metadata *universe.MetadataRepository
	cfg      config.RiskConfig
	log      zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(
	service *portfolio.Service,
	analyzer *risk.Analyzer,
	metadata *universe.MetadataRepository,
	cfg config.RiskConfig,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service:  service,
		analyzer: analyzer,
		metadata: metadata,
		cfg:      cfg,
		log:      log.With().Str("handler", "risk").Logger(),
	}
}

// HandleGetPositions handles GET /api/portfolio/positions
func (h *Handler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.Positions()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load positions")
		h.writeError(w, http.StatusInternalServerError, "failed to load positions")
		return
	}

	result := make([]map[string]interface{}, 0, len(positions))
	for _, pos := range positions {
		result = append(result, map[string]interface{}{
			"symbol":         pos.Symbol,
			"quantity":       pos.Quantity,
			"entry_price":    pos.EntryPrice,
			"current_price":  pos.CurrentPrice,
			"total_value":    pos.TotalValue(),
			"profit_percent": pos.ProfitPercent(),
			"stop_loss":      pos.StopLoss,
			"target":         pos.Target,
			"entry_date":     pos.EntryDate,
		})
	}

	h.writeData(w, http.StatusOK, result)
}

// HandleGetAnalysis handles GET /api/portfolio/analysis
func (h *Handler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.Positions()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load positions")
		h.writeError(w, http.StatusInternalServerError, "failed to load positions")
		return
	}

	meta, err := h.metadata.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load metadata")
		h.writeError(w, http.StatusInternalServerError, "failed to load symbol metadata")
		return
	}

	portfolioReturns, err := h.service.PortfolioReturns(positions)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to derive portfolio returns")
		h.writeError(w, http.StatusInternalServerError, "failed to derive portfolio returns")
		return
	}

	benchmarkReturns, err := h.service.BenchmarkReturns(h.cfg.BenchmarkSymbol)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load benchmark returns")
		h.writeError(w, http.StatusInternalServerError, "failed to load benchmark returns")
		return
	}

	analysis := h.analyzer.Analyze(positions, meta, portfolioReturns, benchmarkReturns)
	h.writeData(w, http.StatusOK, analysis)
}

// HandleGetExits handles GET /api/portfolio/exits
func (h *Handler) HandleGetExits(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.Positions()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load positions")
		h.writeError(w, http.StatusInternalServerError, "failed to load positions")
		return
	}

	result := make([]map[string]interface{}, 0, len(positions))
	for _, pos := range positions {
		entry := map[string]interface{}{
			"symbol":         pos.Symbol,
			"profit_percent": pos.ProfitPercent(),
		}

		if pos.Technical != nil {
			entry["alerts"] = exits.Evaluate(pos, *pos.Technical)
			entry["verdict"] = exits.OverallVerdict(*pos.Technical)
			if stop := exits.EffectiveStopLoss(pos, *pos.Technical); stop != nil {
				entry["effective_stop_loss"] = *stop
			}
		} else {
			entry["alerts"] = []exits.ExitAlert{}
			entry["verdict"] = exits.VerdictHold
			entry["note"] = "technical data not available"
		}

		result = append(result, entry)
	}

	h.writeData(w, http.StatusOK, result)
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
