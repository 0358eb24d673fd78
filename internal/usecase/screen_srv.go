package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-seat-ledger/internal/data/entity"
	"cinema-seat-ledger/internal/data/repository"
	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/dto/response"
	"cinema-seat-ledger/pkg/utils"

	"go.uber.org/zap"
)

type ScreenService interface {
	GetScreen(ctx context.Context, screenID string) (*response.ScreenResponse, error)
	GetScreensByTheatre(ctx context.Context, theatreID string) ([]response.ScreenResponse, error)
	CreateScreen(ctx context.Context, req *request.CreateScreenRequest) (*response.ScreenResponse, error)
}

type screenService struct {
	repo repository.ScreenRepository
	log  *zap.Logger
}

func NewScreenService(repo repository.ScreenRepository, log *zap.Logger) ScreenService {
	return &screenService{
		repo: repo,
		log:  log.With(zap.String("service", "screen")),
	}
}

func (s *screenService) GetScreen(ctx context.Context, screenID string) (*response.ScreenResponse, error) {
	id, err := parseID("screen_id", screenID)
	if err != nil {
		return nil, err
	}

	screen, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get screen", zap.Error(err), zap.String("screen_id", screenID))
		return nil, fmt.Errorf("get screen: %w", err)
	}
	if screen == nil {
		return nil, notFound("screen")
	}

	resp := response.ScreenToResponse(screen)
	return &resp, nil
}

func (s *screenService) GetScreensByTheatre(ctx context.Context, theatreID string) ([]response.ScreenResponse, error) {
	id, err := parseID("theatre_id", theatreID)
	if err != nil {
		return nil, err
	}

	screens, err := s.repo.FindByTheatre(ctx, id)
	if err != nil {
		s.log.Error("Failed to get screens", zap.Error(err), zap.String("theatre_id", theatreID))
		return nil, fmt.Errorf("get screens: %w", err)
	}

	out := make([]response.ScreenResponse, len(screens))
	for i, sc := range screens {
		out[i] = response.ScreenToResponse(sc)
	}
	return out, nil
}

func (s *screenService) CreateScreen(ctx context.Context, req *request.CreateScreenRequest) (*response.ScreenResponse, error) {
	theatreID, err := parseID("theatre_id", req.TheatreID)
	if err != nil {
		return nil, err
	}

	rows := upperAll(req.Rows)
	declared := make(map[string]bool, len(rows))
	for _, r := range rows {
		if declared[r] {
			return nil, &utils.ValidationError{Field: "rows", Message: fmt.Sprintf("row %s declared more than once", r)}
		}
		declared[r] = true
	}

	premium, standard, economy := upperAll(req.PremiumRows), upperAll(req.StandardRows), upperAll(req.EconomyRows)
	tierOf := map[string]string{}
	for tier, set := range map[string][]string{"premium": premium, "standard": standard, "economy": economy} {
		for _, r := range set {
			if !declared[r] {
				return nil, &utils.ValidationError{Field: tier + "_rows", Message: fmt.Sprintf("row %s is not part of the screen", r)}
			}
			if other, ok := tierOf[r]; ok {
				return nil, &utils.ValidationError{Field: tier + "_rows", Message: fmt.Sprintf("row %s is already %s", r, other)}
			}
			tierOf[r] = tier
		}
	}

	now := time.Now()
	screen := &entity.Screen{
		BaseNoDelete: entity.NewBaseNoDelete(now),
		TheatreID:    theatreID,
		Name:         strings.TrimSpace(req.Name),
		Type:         entity.ScreenType(req.Type),
		Rows:         rows,
		SeatsPerRow:  req.SeatsPerRow,
		PremiumRows:  premium,
		StandardRows: standard,
		EconomyRows:  economy,
	}

	if err := s.repo.Create(ctx, screen); err != nil {
		s.log.Error("Failed to create screen", zap.Error(err), zap.String("theatre_id", req.TheatreID))
		return nil, fmt.Errorf("create screen: %w", err)
	}

	s.log.Info("Screen created",
		zap.String("screen_id", screen.ID.String()),
		zap.String("theatre_id", theatreID.String()),
		zap.String("type", req.Type),
	)

	resp := response.ScreenToResponse(screen)
	return &resp, nil
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToUpper(strings.TrimSpace(s)))
	}
	return out
}
