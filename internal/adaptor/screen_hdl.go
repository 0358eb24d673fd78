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

type ScreenHandler struct {
	service usecase.ScreenService
	log     *zap.Logger
}

func NewScreenHandler(service usecase.ScreenService, log *zap.Logger) *ScreenHandler {
	return &ScreenHandler{
		service: service,
		log:     log.With(zap.String("handler", "screen")),
	}
}

// GetScreen handles GET /api/screens/{id}
func (h *ScreenHandler) GetScreen(w http.ResponseWriter, r *http.Request) {
	screen, err := h.service.GetScreen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "get screen")
		return
	}

	utils.ResponseSuccess(w, "success", screen)
}

// GetTheatreScreens handles GET /api/theatres/{theatreID}/screens
func (h *ScreenHandler) GetTheatreScreens(w http.ResponseWriter, r *http.Request) {
	screens, err := h.service.GetScreensByTheatre(r.Context(), chi.URLParam(r, "theatreID"))
	if err != nil {
		respondError(w, h.log, err, "get theatre screens")
		return
	}

	utils.ResponseSuccess(w, "success", screens)
}

// CreateScreen handles POST /api/admin/screens
func (h *ScreenHandler) CreateScreen(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screen, err := h.service.CreateScreen(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create screen")
		return
	}

	utils.ResponseCreated(w, "Screen created", screen)
}
