package wire

import (
	"net/http"

	"cinema-seat-ledger/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler, admin chi.Middlewares) {
	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Get("/api/user/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(admin...)

		r.Get("/", userHandler.GetUsers)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
