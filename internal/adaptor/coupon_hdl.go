package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/usecase"
	"cinema-seat-ledger/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CouponHandler struct {
	service usecase.CouponService
	log     *zap.Logger
}

func NewCouponHandler(service usecase.CouponService, log *zap.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		log:     log.With(zap.String("handler", "coupon")),
	}
}

// ValidateCoupon handles POST /api/coupons/validate
func (h *CouponHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Validate(r.Context(), req.Code)
	if err != nil {
		respondError(w, h.log, err, "validate coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon is valid", result)
}

// ==================== ADMIN METHODS ====================

// GetCoupons handles GET /api/admin/coupons
func (h *CouponHandler) GetCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.GetCoupons(r.Context())
	if err != nil {
		respondError(w, h.log, err, "get coupons")
		return
	}

	utils.ResponseSuccess(w, "success", coupons)
}

// CreateCoupon handles POST /api/admin/coupons
func (h *CouponHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	coupon, err := h.service.CreateCoupon(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create coupon")
		return
	}

	utils.ResponseCreated(w, "Coupon created", coupon)
}

// DeleteCoupon handles DELETE /api/admin/coupons/{id}
func (h *CouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCoupon(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, err, "delete coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon deleted", nil)
}
