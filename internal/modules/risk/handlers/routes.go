package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio analytics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/positions", h.HandleGetPositions)
		r.Get("/analysis", h.HandleGetAnalysis)
		r.Get("/exits", h.HandleGetExits)
	})
}
