package wire

import (
	"cinema-seat-ledger/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireScreen(r chi.Router, screenHandler *adaptor.ScreenHandler, admin chi.Middlewares) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/screens/{id}", screenHandler.GetScreen)
	r.Get("/api/theatres/{theatreID}/screens", screenHandler.GetTheatreScreens)

	// ==================== ADMIN ROUTES ====================
	r.With(admin...).Post("/api/admin/screens", screenHandler.CreateScreen)
}
