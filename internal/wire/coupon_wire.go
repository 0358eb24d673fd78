package wire

import (
	"cinema-seat-ledger/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCoupon(r chi.Router, couponHandler *adaptor.CouponHandler, admin chi.Middlewares) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/coupons/validate", couponHandler.ValidateCoupon)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/coupons", func(r chi.Router) {
		r.Use(admin...)

		r.Get("/", couponHandler.GetCoupons)
		r.Post("/", couponHandler.CreateCoupon)
		r.Delete("/{id}", couponHandler.DeleteCoupon)
	})
}
