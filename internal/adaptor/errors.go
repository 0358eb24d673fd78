package adaptor

import (
	"errors"
	"net/http"

	"cinema-seat-ledger/internal/ledger"
	"cinema-seat-ledger/internal/usecase"
	"cinema-seat-ledger/pkg/utils"

	"go.uber.org/zap"
)

const msgSeatsTaken = "Some seats are already booked"

// respondError maps a service error onto the response envelope.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		conflict  *ledger.ConflictError
		invalid   *utils.ValidationError
		missing   *usecase.NotFoundError
		duplicate *usecase.DuplicateError
	)

	switch {
	case errors.As(err, &conflict):
		log.Info(operation+" failed - seats taken", zap.Strings("seats", conflict.Seats))
		utils.ResponseBadRequest(w, msgSeatsTaken, map[string][]string{"seats": conflict.Seats})

	case errors.As(err, &invalid):
		log.Warn(operation+" validation failed", zap.Error(err))
		var fields map[string]string
		if invalid.Field != "" {
			fields = map[string]string{invalid.Field: invalid.Message}
		}
		utils.ResponseBadRequest(w, invalid.Message, fields)

	case errors.As(err, &missing):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, capitalize(missing.Error()))

	case errors.Is(err, ledger.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Booking not found")

	case errors.Is(err, ledger.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "You are not allowed to access this booking")

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.As(err, &duplicate):
		log.Warn(operation+" failed - duplicate", zap.Error(err))
		utils.ResponseConflict(w, capitalize(duplicate.Message), map[string]string{duplicate.Field: duplicate.Message})

	case errors.Is(err, utils.ErrUnavailable):
		log.Error(operation+" failed - storage unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Service temporarily unavailable, please retry")

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
