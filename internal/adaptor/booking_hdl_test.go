package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/dto/response"
	"cinema-seat-ledger/internal/ledger"
	"cinema-seat-ledger/internal/usecase"
	"cinema-seat-ledger/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) GetBookedSeats(ctx context.Context, req *request.BookedSeatsRequest) (*response.BookedSeatsResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.BookedSeatsResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) GetUserBookings(ctx context.Context, by ledger.Requester, userID string) ([]response.BookingResponse, error) {
	args := m.Called(ctx, by, userID)
	resp, _ := args.Get(0).([]response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, bookingID string, by ledger.Requester) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, by)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]response.BookingResponse)
	return resp, args.Error(1)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	user := uuid.New()
	movie := uuid.New().String()
	validBody := fmt.Sprintf(`{"movie_id":%q,"show_date":"2025-06-01","show_time":"18:00","seats":["C1","C2"]}`, movie)

	tests := []struct {
		name        string
		body        string
		anonymous   bool
		serviceErr  error
		wantCode    int
		wantMessage string
		wantErrors  map[string]any
	}{
		{
			name:        "created",
			body:        validBody,
			wantCode:    http.StatusCreated,
			wantMessage: "Booking created",
		},
		{
			name:        "not logged in",
			body:        validBody,
			anonymous:   true,
			wantCode:    http.StatusUnauthorized,
			wantMessage: "Authentication required",
		},
		{
			name:        "malformed body",
			body:        `{"movie_id":`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name:        "no seats",
			body:        fmt.Sprintf(`{"movie_id":%q,"show_date":"2025-06-01","show_time":"18:00","seats":[]}`, movie),
			wantCode:    http.StatusBadRequest,
			wantMessage: "missing required fields",
		},
		{
			name:        "seats omitted",
			body:        fmt.Sprintf(`{"movie_id":%q,"show_date":"2025-06-01","show_time":"18:00"}`, movie),
			wantCode:    http.StatusBadRequest,
			wantMessage: "missing required fields",
		},
		{
			name:        "no show time",
			body:        fmt.Sprintf(`{"movie_id":%q,"show_date":"2025-06-01","seats":["C1"]}`, movie),
			wantCode:    http.StatusBadRequest,
			wantMessage: "missing required fields",
		},
		{
			name:        "bad show date",
			body:        fmt.Sprintf(`{"movie_id":%q,"show_date":"01/06/2025","show_time":"18:00","seats":["C1"]}`, movie),
			wantCode:    http.StatusBadRequest,
			wantMessage: "Validation failed",
		},
		{
			name:        "seats taken",
			body:        validBody,
			serviceErr:  fmt.Errorf("create: %w", &ledger.ConflictError{Seats: []string{"C2"}}),
			wantCode:    http.StatusBadRequest,
			wantMessage: "Some seats are already booked",
			wantErrors:  map[string]any{"seats": []any{"C2"}},
		},
		{
			name:        "bad coupon",
			body:        validBody,
			serviceErr:  ledger.ErrCouponExpired,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Coupon has expired",
			wantErrors:  map[string]any{"coupon_code": "Coupon has expired"},
		},
		{
			name:        "movie missing",
			body:        validBody,
			serviceErr:  &usecase.NotFoundError{Resource: "movie"},
			wantCode:    http.StatusNotFound,
			wantMessage: "Movie not found",
		},
		{
			name:        "storage down",
			body:        validBody,
			serviceErr:  fmt.Errorf("get booked seats: %w", ledger.ErrUnavailable),
			wantCode:    http.StatusServiceUnavailable,
			wantMessage: "Service temporarily unavailable, please retry",
		},
		{
			name:        "unexpected",
			body:        validBody,
			serviceErr:  errors.New("boom"),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockBookingService)
			created := &response.BookingResponse{ID: uuid.NewString(), TotalPrice: decimal.NewFromInt(500)}
			if tt.serviceErr != nil {
				created = nil
			}
			svc.On("CreateBooking", mock.Anything, user, mock.Anything).Return(created, tt.serviceErr).Maybe()

			h := NewBookingHandler(svc, zap.NewNop())
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(tt.body))
			if !tt.anonymous {
				req = req.WithContext(utils.SetUserContext(req.Context(), user, "customer"))
			}
			rec := httptest.NewRecorder()

			h.CreateBooking(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantCode < 300, body.Status)
			if tt.wantErrors != nil {
				assert.Equal(t, tt.wantErrors, body.Errors)
			}
		})
	}
}

func TestBookingHandler_GetBookedSeats(t *testing.T) {
	movie := uuid.New().String()
	svc := new(mockBookingService)
	svc.On("GetBookedSeats", mock.Anything, &request.BookedSeatsRequest{
		MovieID:  movie,
		ShowTime: "18:00",
	}).Return(&response.BookedSeatsResponse{BookedSeats: []string{"A1", "C2"}}, nil)

	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/bookings/seats/{movieID}/{showTime}", h.GetBookedSeats)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/seats/"+movie+"/18%3A00", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, map[string]any{"bookedSeats": []any{"A1", "C2"}}, body.Data)
	svc.AssertExpectations(t)
}

func TestBookingHandler_CancelBooking(t *testing.T) {
	owner := uuid.New()
	id := uuid.NewString()

	tests := []struct {
		name     string
		role     string
		err      error
		wantCode int
	}{
		{name: "owner", role: "customer", wantCode: http.StatusOK},
		{name: "someone else", role: "customer", err: ledger.ErrForbidden, wantCode: http.StatusForbidden},
		{name: "already cancelled", role: "admin", err: fmt.Errorf("find: %w", ledger.ErrNotFound), wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			by := ledger.Requester{UserID: owner, Admin: tt.role == "admin"}
			var resp *response.BookingResponse
			if tt.err == nil {
				resp = &response.BookingResponse{ID: id}
			}
			svc := new(mockBookingService)
			svc.On("CancelBooking", mock.Anything, id, by).Return(resp, tt.err)

			h := NewBookingHandler(svc, zap.NewNop())
			r := chi.NewRouter()
			r.Delete("/api/bookings/{id}", h.CancelBooking)

			req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+id, nil)
			req = req.WithContext(utils.SetUserContext(req.Context(), owner, tt.role))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Movie not found", capitalize("movie not found"))
	assert.Equal(t, "Email already registered", capitalize("Email already registered"))
	assert.Equal(t, "", capitalize(""))
}
