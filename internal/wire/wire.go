package wire

import (
	"context"
	"net/http"
	"time"

	"cinema-seat-ledger/internal/adaptor"
	"cinema-seat-ledger/internal/usecase"
	"cinema-seat-ledger/pkg/middleware"
	"cinema-seat-ledger/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// HealthCheck reports whether a dependency answers.
type HealthCheck func(ctx context.Context) error

// Wiring builds services, handlers and routes over deps.
func Wiring(deps usecase.Deps, health HealthCheck, logger *zap.Logger) *App {
	service := usecase.NewService(deps, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, middleware.AuthSession(deps.Repo.Session, logger), health, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	auth func(http.Handler) http.Handler,
	health HealthCheck,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	admin := chi.Chain(auth, middleware.Admin(logger))

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth, admin)
	wireMovie(r, handler.Movie, admin)
	wireScreen(r, handler.Screen, admin)
	wireCoupon(r, handler.Coupon, admin)
	wireBooking(r, handler.Booking, auth, admin)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				logger.Warn("Health check failed", zap.Error(err))
				utils.ResponseServiceUnavailable(w, "database unreachable")
				return
			}
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
