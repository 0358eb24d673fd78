package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-seat-ledger/internal/data/entity"
	"cinema-seat-ledger/internal/data/repository"
	"cinema-seat-ledger/internal/dto/request"
	"cinema-seat-ledger/internal/dto/response"
	"cinema-seat-ledger/pkg/cache"
	"cinema-seat-ledger/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest, genre *string) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo  repository.MovieRepository
	cache cache.Cache
	log   *zap.Logger
}

func NewMovieService(repo repository.MovieRepository, c cache.Cache, log *zap.Logger) MovieService {
	return &movieService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "movie")),
	}
}

func movieListCacheKey(page, perPage int, genre *string) string {
	g := ""
	if genre != nil {
		g = *genre
	}
	return fmt.Sprintf("movies:%d:%d:%s", page, perPage, g)
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, genre *string) (*response.PaginatedResponse[response.MovieResponse], error) {
	key := movieListCacheKey(req.Page, req.PerPage, genre)

	movies, total, err := s.findMovies(ctx, req, genre)
	if err != nil {
		if !errors.Is(err, utils.ErrUnavailable) {
			s.log.Error("Failed to get movies",
				zap.Error(err),
				zap.Int("page", req.Page),
				zap.Int("per_page", req.PerPage),
				zap.Stringp("genre", genre),
			)
			return nil, err
		}

		// Serve the last known page, or nothing, while storage is down.
		var cached response.PaginatedResponse[response.MovieResponse]
		if hit, cerr := s.cache.GetJSON(ctx, key, &cached); cerr == nil && hit {
			s.log.Warn("Storage unavailable, serving cached movies", zap.Error(err))
			return &cached, nil
		}
		s.log.Warn("Storage unavailable, serving empty movie list", zap.Error(err))
		return response.NewPaginatedResponse([]response.MovieResponse{}, req.Page, req.PerPage, 0), nil
	}

	data := make([]response.MovieResponse, len(movies))
	for i, m := range movies {
		data[i] = response.MovieToResponse(m)
	}
	resp := response.NewPaginatedResponse(data, req.Page, req.PerPage, total)

	if err := s.cache.SetJSON(ctx, key, resp); err != nil {
		s.log.Warn("Failed to cache movie list", zap.Error(err))
	}

	s.log.Info("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return resp, nil
}

func (s *movieService) findMovies(ctx context.Context, req *request.PaginatedRequest, genre *string) ([]*entity.Movie, int64, error) {
	movies, err := s.repo.FindAll(ctx, req.Limit(), req.Offset(), genre)
	if err != nil {
		return nil, 0, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.CountAll(ctx, genre)
	if err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	return movies, total, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := parseID("movie_id", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie")
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if req.Price.IsNegative() {
		return nil, &utils.ValidationError{Field: "price", Message: "price must not be negative"}
	}

	now := time.Now()
	movie := &entity.Movie{
		Base:              entity.NewBase(now),
		Title:             req.Title,
		Description:       req.Description,
		Genre:             req.Genre,
		PosterURL:         req.PosterURL,
		Rating:            req.Rating,
		DurationInMinutes: req.DurationInMinutes,
		Price:             req.Price,
		ShowTimings:       req.ShowTimings,
	}
	if movie.ShowTimings == nil {
		movie.ShowTimings = []string{}
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	id, err := parseID("movie_id", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie for update", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie")
	}

	// Partial update
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.DurationInMinutes != nil {
		movie.DurationInMinutes = *req.DurationInMinutes
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, &utils.ValidationError{Field: "price", Message: "price must not be negative"}
		}
		movie.Price = *req.Price
	}
	if req.ShowTimings != nil {
		movie.ShowTimings = req.ShowTimings
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, notFound("movie")
		}
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := parseID("movie_id", movieID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return notFound("movie")
		}
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}
