package wire

import (
	"net/http"

	"cinema-seat-ledger/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, auth func(http.Handler) http.Handler, admin chi.Middlewares) {
	r.Route("/api/bookings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// Seat map of a show, optionally narrowed to one date
		r.Get("/seats/{movieID}/{showTime}", bookingHandler.GetBookedSeats)
		r.Get("/seats/{movieID}/{showTime}/{showDate}", bookingHandler.GetBookedSeats)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", bookingHandler.CreateBooking)
			r.Get("/user/{userID}", bookingHandler.GetUserBookings)
			r.Delete("/{id}", bookingHandler.CancelBooking)
		})
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(admin...)

		r.Get("/", bookingHandler.GetAllBookings)
		r.Delete("/{id}", bookingHandler.CancelBooking)
	})
}
