package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all screener routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/screener", func(r chi.Router) {
		r.Get("/strategies", h.HandleListStrategies)
		r.Get("/{symbol}/recommendation", h.HandleRecommendation)
		r.Get("/{symbol}/strategies/{name}", h.HandleStrategyEntry)
	})
}
