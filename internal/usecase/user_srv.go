package usecase

import (
	"context"
	"errors"
	"fmt"

	"cinema-seat-ledger/internal/data/repository"
	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/dto/response"
	"cinema-seat-ledger/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteUser(ctx context.Context, userID string) error
}

// BookingCounter counts the live bookings of a user.
type BookingCounter interface {
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type userService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	bookings BookingCounter
	log      *zap.Logger
}

func NewUserService(users repository.UserRepository, sessions repository.SessionRepository, bookings BookingCounter, log *zap.Logger) UserService {
	return &userService{
		users:    users,
		sessions: sessions,
		bookings: bookings,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user")
	}

	resp := response.UserToResponse(user)

	count, err := s.bookings.CountByUserID(ctx, userID)
	switch {
	case errors.Is(err, utils.ErrUnavailable):
		s.log.Warn("Booking count unavailable, profile served without it", zap.Error(err))
	case err != nil:
		s.log.Error("Failed to count user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("count bookings: %w", err)
	default:
		resp.BookingCount = &count
	}

	return &resp, nil
}

func (s *userService) GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.users.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get users", zap.Error(err))
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := s.users.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	data := make([]response.UserResponse, len(users))
	for i, u := range users {
		data[i] = response.UserToResponse(u)
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := parseID("user_id", userID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return notFound("user")
		}
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.sessions.RevokeAllUserSessions(ctx, id); err != nil {
		s.log.Warn("Failed to revoke sessions of deleted user", zap.Error(err), zap.String("user_id", userID))
	}

	s.log.Info("User deleted", zap.String("user_id", userID))
	return nil
}
