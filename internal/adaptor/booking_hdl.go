package adaptor

import (
	"encoding/json"
	"net/http"
	"net/url"

	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/ledger"
	"cinema-seat-ledger/internal/usecase"
	"cinema-seat-ledger/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if req.MissingRequired() {
		respondError(w, h.log, ledger.ErrMissingFields, "create booking")
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		respondError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// GetBookedSeats handles GET /api/bookings/seats/{movieID}/{showTime}[/{showDate}]
// with optional theatre_id and screen_id query parameters. Without a date
// every date of the show time is included.
func (h *BookingHandler) GetBookedSeats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.BookedSeatsRequest{
		MovieID:   pathParam(r, "movieID"),
		ShowTime:  pathParam(r, "showTime"),
		ShowDate:  pathParam(r, "showDate"),
		TheatreID: query.Get("theatre_id"),
		ScreenID:  query.Get("screen_id"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	seats, err := h.service.GetBookedSeats(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "get booked seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// GetUserBookings handles GET /api/bookings/user/{userID} (self or admin)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	by, ok := requester(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), by, chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CancelBooking handles DELETE /api/bookings/{id} (owner or admin) and
// DELETE /api/admin/bookings/{id}.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	by, ok := requester(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id"), by)
	if err != nil {
		respondError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// ==================== ADMIN METHODS ====================

// GetAllBookings handles GET /api/admin/bookings
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetAllBookings(r.Context())
	if err != nil {
		respondError(w, h.log, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

func requester(r *http.Request) (ledger.Requester, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return ledger.Requester{}, false
	}
	return ledger.Requester{UserID: userID, Admin: utils.IsAdmin(r.Context())}, true
}

// pathParam returns the unescaped URL parameter, so "18%3A00" reads as "18:00".
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
